package view

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"g38_lotto_minigame/internal/minigame/gameflow"
	"g38_lotto_minigame/pkg/utils"
	"g38_lotto_minigame/pkg/websocket"

	"go.uber.org/zap"
)

// CommandHandler 接收客戶端指令的會話管理器
type CommandHandler interface {
	Start(autoPick bool) (bool, gameflow.Snapshot, error)
	Finalize(number int) (bool, gameflow.Snapshot, error)
	Draw() (bool, gameflow.Snapshot, error)
	Restart() (gameflow.Snapshot, error)
	Snapshot() (gameflow.Snapshot, error)
}

// Hub 以 WebSocket 廣播表現請求，實現 gameflow.View
// 動畫完成時間以伺服器為準，請求的時長過後即視為完成
type Hub struct {
	ws     *websocket.Manager
	logger *zap.Logger

	mu      sync.RWMutex
	handler CommandHandler
}

// NewHub 創建表現層廣播中心
func NewHub(ws *websocket.Manager, logger *zap.Logger) *Hub {
	h := &Hub{
		ws:     ws,
		logger: logger.With(zap.String("component", "view_hub")),
	}
	ws.OnConnect(h.handleConnect)
	ws.OnMessage(h.handleMessage)
	return h
}

// Bind 綁定指令處理者
func (h *Hub) Bind(handler CommandHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handler = handler
}

func (h *Hub) commandHandler() CommandHandler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.handler
}

// PhaseChanged 實現 gameflow.View
func (h *Hub) PhaseChanged(sessionID string, from, to gameflow.Phase) {
	h.broadcast(MessagePhase, PhasePayload{SessionID: sessionID, From: from, To: to})
}

// RequestHighlight 實現 gameflow.View
func (h *Hub) RequestHighlight(entity gameflow.EntityID) {
	h.broadcast(MessageHighlight, EntityPayload{Entity: entity})
}

// RequestTransition 實現 gameflow.View，時長過後關閉返回的通道
func (h *Hub) RequestTransition(t gameflow.Transition) <-chan struct{} {
	h.broadcast(MessageTransition, TransitionPayload{
		Entity:     t.Entity,
		Property:   t.Property,
		Target:     t.Target,
		DurationMs: t.Duration.Milliseconds(),
	})

	done := make(chan struct{})
	if t.Duration <= 0 {
		close(done)
		return done
	}
	time.AfterFunc(t.Duration, func() { close(done) })
	return done
}

// RequestEnable 實現 gameflow.View
func (h *Hub) RequestEnable(entity gameflow.EntityID) {
	h.broadcast(MessageEnable, EntityPayload{Entity: entity})
}

// RequestDisable 實現 gameflow.View
func (h *Hub) RequestDisable(entity gameflow.EntityID) {
	h.broadcast(MessageDisable, EntityPayload{Entity: entity})
}

// RenderBall 實現 gameflow.View
func (h *Hub) RenderBall(panel gameflow.EntityID, slot int, ball gameflow.Ball, final bool) {
	h.broadcast(MessageRenderBall, RenderBallPayload{Panel: panel, Slot: slot, Ball: ball, Final: final})
}

// ShowOutcome 實現 gameflow.View
func (h *Hub) ShowOutcome(outcome gameflow.Outcome) {
	h.broadcast(MessageOutcome, outcome)
}

func (h *Hub) broadcast(msgType string, data interface{}) {
	payload, err := json.Marshal(Envelope{Type: msgType, Data: data})
	if err != nil {
		h.logger.Error("序列化消息失敗", zap.String("type", msgType), zap.Error(err))
		return
	}
	h.ws.Broadcast(payload)
}

func (h *Hub) reply(client *websocket.Client, msgType string, data interface{}) {
	payload, err := json.Marshal(Envelope{Type: msgType, Data: data})
	if err != nil {
		h.logger.Error("序列化消息失敗", zap.String("type", msgType), zap.Error(err))
		return
	}
	if !client.Send(payload) {
		h.logger.Warn("回覆客戶端失敗", zap.String("clientID", client.ID), zap.String("type", msgType))
	}
}

// handleConnect 新連線送出當前快照
func (h *Hub) handleConnect(client *websocket.Client) {
	handler := h.commandHandler()
	if handler == nil {
		return
	}
	snapshot, err := handler.Snapshot()
	if err != nil {
		h.reply(client, MessageError, ErrorPayload{Message: err.Error()})
		return
	}
	h.reply(client, MessageWelcome, snapshot)
}

// handleMessage 解析客戶端指令並交給會話管理器
func (h *Hub) handleMessage(client *websocket.Client, message []byte) {
	var cmd Command
	if err := json.Unmarshal(message, &cmd); err != nil {
		h.logger.Debug("無效的指令格式", zap.String("clientID", client.ID), zap.Error(err))
		h.reply(client, MessageError, ErrorPayload{Message: "無效的指令格式"})
		return
	}
	if err := utils.GetValidator().Validate(cmd); err != nil {
		h.reply(client, MessageError, ErrorPayload{Command: cmd.Type, Message: err.Error()})
		return
	}

	handler := h.commandHandler()
	if handler == nil {
		h.reply(client, MessageError, ErrorPayload{Command: cmd.Type, Message: gameflow.ErrSessionNotFound.Message})
		return
	}

	accepted, snapshot, err := h.dispatch(handler, cmd)
	if err != nil {
		h.logger.Warn("處理指令失敗", zap.String("command", cmd.Type), zap.Error(err))
		h.reply(client, MessageError, ErrorPayload{Command: cmd.Type, Message: err.Error()})
		return
	}

	h.logger.Debug("處理指令",
		zap.String("clientID", client.ID),
		zap.String("command", cmd.Type),
		zap.Bool("accepted", accepted))
	h.reply(client, MessageAck, AckPayload{Command: cmd.Type, Accepted: accepted, Snapshot: snapshot})
}

func (h *Hub) dispatch(handler CommandHandler, cmd Command) (bool, gameflow.Snapshot, error) {
	switch cmd.Type {
	case CommandStart:
		return handler.Start(cmd.AutoPick)
	case CommandFinalize:
		return handler.Finalize(cmd.Number)
	case CommandDraw:
		return handler.Draw()
	case CommandRestart:
		snapshot, err := handler.Restart()
		return err == nil, snapshot, err
	case CommandSnapshot:
		snapshot, err := handler.Snapshot()
		return err == nil, snapshot, err
	default:
		return false, gameflow.Snapshot{}, fmt.Errorf("未知的指令: %s", cmd.Type)
	}
}

// ServeWs 處理 WebSocket 升級請求
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	h.ws.ServeWs(w, r)
}
