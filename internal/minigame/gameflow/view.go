package gameflow

import (
	"fmt"
	"time"
)

// EntityID 表現層的元件識別碼
type EntityID string

const (
	EntityChooseButton   EntityID = "button/choose"
	EntityLuckyDipButton EntityID = "button/lucky_dip"
	EntityDrawButton     EntityID = "button/draw"
	EntityRestartButton  EntityID = "button/restart"
	EntityPickablePanel  EntityID = "panel/pickable"
	EntityChosenPanel    EntityID = "panel/chosen"
	EntityWinningPanel   EntityID = "panel/winning"
	EntityDrawnPanel     EntityID = "panel/drawn"
	EntityWinMessage     EntityID = "panel/win_message"
	EntityPaytable       EntityID = "paytable"
)

// BallEntity 面板中某顆球的識別碼
func BallEntity(panel EntityID, number int) EntityID {
	return EntityID(fmt.Sprintf("%s/ball/%d", panel, number))
}

// PaytableRowEntity 獎金表中某一列的識別碼
func PaytableRowEntity(matches int) EntityID {
	return EntityID(fmt.Sprintf("%s/row/%d", EntityPaytable, matches))
}

// Property 可動畫化的視覺屬性
type Property string

const (
	PropertyAlpha Property = "alpha"
	PropertyX     Property = "x"
)

// Transition 一次屬性動畫請求
type Transition struct {
	Entity   EntityID      `json:"entity"`
	Property Property      `json:"property"`
	Target   float64       `json:"target"`
	Duration time.Duration `json:"duration"`
}

// Outcome 結算結果
type Outcome struct {
	Win           bool   `json:"win"`
	MatchingBalls int    `json:"matchingBalls"`
	Prize         string `json:"prize,omitempty"`
	Message       string `json:"message"`
	Tint          Color  `json:"tint"`
}

// View 表現層接口，控制器只發出請求，不查詢表現層狀態
// 實作不得在呼叫中同步回呼控制器
type View interface {
	// PhaseChanged 階段變更通知，from 為空字串代表新會話
	PhaseChanged(sessionID string, from, to Phase)
	// RequestHighlight 持續播放「命中」提示
	RequestHighlight(entity EntityID)
	// RequestTransition 動畫請求，返回的通道在動畫完成時關閉
	RequestTransition(t Transition) <-chan struct{}
	// RequestEnable 開啟互動
	RequestEnable(entity EntityID)
	// RequestDisable 關閉互動
	RequestDisable(entity EntityID)
	// RenderBall 在面板的槽位顯示一顆球，final 為 false 時是閃動預覽
	RenderBall(panel EntityID, slot int, ball Ball, final bool)
	// ShowOutcome 顯示結算結果
	ShowOutcome(outcome Outcome)
}

// NopView 不做任何事的表現層，動畫立即完成
type NopView struct{}

var closedSignal = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func (NopView) PhaseChanged(string, Phase, Phase) {}
func (NopView) RequestHighlight(EntityID) {}
func (NopView) RequestTransition(Transition) <-chan struct{} {
	return closedSignal
}
func (NopView) RequestEnable(EntityID) {}
func (NopView) RequestDisable(EntityID) {}
func (NopView) RenderBall(EntityID, int, Ball, bool) {}
func (NopView) ShowOutcome(Outcome) {}
