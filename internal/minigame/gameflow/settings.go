package gameflow

import (
	"time"
)

const (
	// 按鈕滑出畫面外的 X 座標
	offscreenX = 2000
	// 被選走的可選球淡化後的透明度
	dimmedAlpha = 0.5
	// 結果訊息淡入時間
	messageFadeDuration = 500 * time.Millisecond
)

// Settings 一局遊戲的參數，建構後不可變
type Settings struct {
	PoolSize            int           `json:"poolSize"`            // 可選球總數 N
	Capacity            int           `json:"capacity"`            // 選號數量 C
	AutoPickInterval    time.Duration `json:"autoPickInterval"`    // 自動選號間隔
	FlickerCount        int           `json:"flickerCount"`        // 每顆球確定前的閃動次數
	FlickerInterval     time.Duration `json:"flickerInterval"`     // 閃動間隔
	PanelFadeDuration   time.Duration `json:"panelFadeDuration"`   // 面板淡入淡出時間
	ButtonSlideDuration time.Duration `json:"buttonSlideDuration"` // 按鈕滑出時間
}

// DefaultSettings 預設參數：59 選 6，每秒自動選一顆，閃動 20 次每次 0.1 秒
func DefaultSettings() Settings {
	return Settings{
		PoolSize:            59,
		Capacity:            6,
		AutoPickInterval:    time.Second,
		FlickerCount:        20,
		FlickerInterval:     100 * time.Millisecond,
		PanelFadeDuration:   time.Second,
		ButtonSlideDuration: 750 * time.Millisecond,
	}
}

// Validate 檢查參數
func (s Settings) Validate() error {
	if s.PoolSize <= 0 {
		return NewGameFlowErrorWithFormat(ErrInvalidParameter.Code, "可選球總數必須大於0: %d", s.PoolSize)
	}
	if s.Capacity <= 0 {
		return NewGameFlowErrorWithFormat(ErrInvalidParameter.Code, "選號數量必須大於0: %d", s.Capacity)
	}
	if s.Capacity > s.PoolSize {
		return NewGameFlowErrorWithFormat(ErrCapacityExceedsPool.Code,
			"選號數量 %d 不能超過可選球總數 %d", s.Capacity, s.PoolSize)
	}
	if s.FlickerCount < 0 {
		return NewGameFlowErrorWithFormat(ErrInvalidParameter.Code, "閃動次數不能為負數: %d", s.FlickerCount)
	}
	if s.AutoPickInterval < 0 || s.FlickerInterval < 0 || s.PanelFadeDuration < 0 || s.ButtonSlideDuration < 0 {
		return NewGameFlowError(ErrInvalidParameter.Code, "時間間隔不能為負數")
	}
	return nil
}
