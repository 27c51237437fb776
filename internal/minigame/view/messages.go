package view

import (
	"g38_lotto_minigame/internal/minigame/gameflow"
)

// 伺服器送往客戶端的消息類型
const (
	MessagePhase      = "phase"
	MessageHighlight  = "highlight"
	MessageTransition = "transition"
	MessageEnable     = "enable"
	MessageDisable    = "disable"
	MessageRenderBall = "render_ball"
	MessageOutcome    = "outcome"
	MessageWelcome    = "welcome"
	MessageAck        = "ack"
	MessageError      = "error"
)

// 客戶端送往伺服器的指令類型
const (
	CommandStart    = "start"
	CommandFinalize = "finalize"
	CommandDraw     = "draw"
	CommandRestart  = "restart"
	CommandSnapshot = "snapshot"
)

// Envelope 伺服器消息外層
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// PhasePayload 階段變更
type PhasePayload struct {
	SessionID string         `json:"sessionId"`
	From      gameflow.Phase `json:"from,omitempty"`
	To        gameflow.Phase `json:"to"`
}

// EntityPayload 針對單一元件的請求
type EntityPayload struct {
	Entity gameflow.EntityID `json:"entity"`
}

// TransitionPayload 動畫請求
type TransitionPayload struct {
	Entity     gameflow.EntityID `json:"entity"`
	Property   gameflow.Property `json:"property"`
	Target     float64           `json:"target"`
	DurationMs int64             `json:"durationMs"`
}

// RenderBallPayload 顯示一顆球
type RenderBallPayload struct {
	Panel gameflow.EntityID `json:"panel"`
	Slot  int               `json:"slot"`
	Ball  gameflow.Ball     `json:"ball"`
	Final bool              `json:"final"`
}

// AckPayload 指令處理結果
type AckPayload struct {
	Command  string            `json:"command"`
	Accepted bool              `json:"accepted"`
	Snapshot gameflow.Snapshot `json:"snapshot"`
}

// ErrorPayload 指令錯誤
type ErrorPayload struct {
	Command string `json:"command,omitempty"`
	Message string `json:"message"`
}

// Command 客戶端指令
type Command struct {
	Type     string `json:"type" validate:"required,oneof=start finalize draw restart snapshot"`
	AutoPick bool   `json:"autoPick"`
	Number   int    `json:"number"`
}
