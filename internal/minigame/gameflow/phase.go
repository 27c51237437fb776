package gameflow

// Phase 代表遊戲階段
type Phase string

const (
	PhaseIdle         Phase = "IDLE"
	PhaseSelecting    Phase = "SELECTING"
	PhaseAwaitingDraw Phase = "AWAITING_DRAW"
	PhaseDrawing      Phase = "DRAWING"
	PhaseSettled      Phase = "SETTLED"
)

// 自然階段轉換映射表，SETTLED 為終點，重新開始由 Manager 建立新的控制器
var naturalPhaseTransition = map[Phase]Phase{
	PhaseIdle:         PhaseSelecting,
	PhaseSelecting:    PhaseAwaitingDraw,
	PhaseAwaitingDraw: PhaseDrawing,
	PhaseDrawing:      PhaseSettled,
}

// NextPhase 返回自然的下一個階段，終點階段返回 false
func NextPhase(current Phase) (Phase, bool) {
	next, ok := naturalPhaseTransition[current]
	return next, ok
}

// IsValidTransition 檢查階段轉換是否合法
func IsValidTransition(from, to Phase) bool {
	next, ok := NextPhase(from)
	return ok && next == to
}
