package gameflow

import (
	"fmt"
)

// Color 球的背景色，十六進位 RGB 字串
type Color string

const (
	ColorWhite  Color = "#FFFFFF"
	ColorBlue   Color = "#00FFFF"
	ColorPink   Color = "#FFC0CB"
	ColorGreen  Color = "#008000"
	ColorYellow Color = "#FFFF00"
	ColorPurple Color = "#800080"
	ColorRed    Color = "#FF0000"
)

// Ball 代表一顆球
type Ball struct {
	Number   int   `json:"number"`   // 球號
	Tint     Color `json:"tint"`     // 背景色
	Pickable bool  `json:"pickable"` // 是否接受玩家點選
}

// ColorThreshold 球號小於 Below 時使用 Color
type ColorThreshold struct {
	Below int   `json:"below" yaml:"below"`
	Color Color `json:"color" yaml:"color"`
}

// BallColorTable 依球號決定背景色，門檻嚴格遞增
type BallColorTable struct {
	thresholds []ColorThreshold
	fallback   Color
}

// DefaultColorThresholds 預設球色門檻
func DefaultColorThresholds() []ColorThreshold {
	return []ColorThreshold{
		{Below: 10, Color: ColorWhite},
		{Below: 20, Color: ColorBlue},
		{Below: 30, Color: ColorPink},
		{Below: 40, Color: ColorGreen},
		{Below: 50, Color: ColorYellow},
		{Below: 60, Color: ColorPurple},
	}
}

// NewBallColorTable 創建球色表，門檻未嚴格遞增時返回錯誤
func NewBallColorTable(thresholds []ColorThreshold) (*BallColorTable, error) {
	for i, t := range thresholds {
		if t.Color == "" {
			return nil, NewGameFlowErrorWithFormat(ErrInvalidColorTable.Code, "第 %d 個門檻缺少顏色", i)
		}
		if i > 0 && t.Below <= thresholds[i-1].Below {
			return nil, NewGameFlowErrorWithFormat(ErrInvalidColorTable.Code,
				"門檻 %d 未大於前一個門檻 %d", t.Below, thresholds[i-1].Below)
		}
	}

	copied := make([]ColorThreshold, len(thresholds))
	copy(copied, thresholds)
	return &BallColorTable{thresholds: copied, fallback: ColorWhite}, nil
}

// DefaultBallColorTable 返回預設球色表
func DefaultBallColorTable() *BallColorTable {
	table, err := NewBallColorTable(DefaultColorThresholds())
	if err != nil {
		panic(fmt.Sprintf("gameflow: default color table invalid: %v", err))
	}
	return table
}

// TintFor 返回第一個大於球號的門檻顏色，皆不符合時為白色
func (t *BallColorTable) TintFor(number int) Color {
	for _, threshold := range t.thresholds {
		if number < threshold.Below {
			return threshold.Color
		}
	}
	return t.fallback
}

// NewBall 依球色表建立一顆球
func (t *BallColorTable) NewBall(number int, pickable bool) Ball {
	return Ball{Number: number, Tint: t.TintFor(number), Pickable: pickable}
}
