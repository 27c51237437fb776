package api

import (
	"errors"
	"net/http"

	"g38_lotto_minigame/internal/minigame/gameflow"
	"g38_lotto_minigame/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GameService 遊戲會話操作，gameflow.Manager 即實現此接口
type GameService interface {
	Start(autoPick bool) (bool, gameflow.Snapshot, error)
	Finalize(number int) (bool, gameflow.Snapshot, error)
	Draw() (bool, gameflow.Snapshot, error)
	Restart() (gameflow.Snapshot, error)
	Snapshot() (gameflow.Snapshot, error)
}

// StartRequest 開始遊戲請求
type StartRequest struct {
	AutoPick bool `json:"autoPick"`
}

// FinalizeRequest 玩家選號請求
type FinalizeRequest struct {
	Number int `json:"number"`
}

// CommandResult 指令處理結果，未被接受的指令不是錯誤
type CommandResult struct {
	Accepted bool              `json:"accepted"`
	Snapshot gameflow.Snapshot `json:"snapshot"`
}

// GameHandler 遊戲 HTTP 處理器
type GameHandler struct {
	service GameService
	logger  *zap.Logger
}

// NewGameHandler 創建遊戲處理器
func NewGameHandler(service GameService, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		service: service,
		logger:  logger.With(zap.String("component", "game_handler")),
	}
}

// GetGame 獲取當前會話快照
func (h *GameHandler) GetGame(c *gin.Context) {
	snapshot, err := h.service.Snapshot()
	if err != nil {
		h.handleError(c, err)
		return
	}
	utils.Success(c, snapshot)
}

// GetPaytable 獲取獎金表
func (h *GameHandler) GetPaytable(c *gin.Context) {
	snapshot, err := h.service.Snapshot()
	if err != nil {
		h.handleError(c, err)
		return
	}
	utils.Success(c, snapshot.Paytable)
}

// Start 開始選號，body 可省略，預設為手動選號
func (h *GameHandler) Start(c *gin.Context) {
	var req StartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ValidationFailed(c, err)
			return
		}
	}

	accepted, snapshot, err := h.service.Start(req.AutoPick)
	h.respond(c, "start", accepted, snapshot, err)
}

// Finalize 玩家選號，範圍外或重複的號碼由控制器忽略
func (h *GameHandler) Finalize(c *gin.Context) {
	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(c, err)
		return
	}

	accepted, snapshot, err := h.service.Finalize(req.Number)
	h.respond(c, "finalize", accepted, snapshot, err)
}

// Draw 開獎
func (h *GameHandler) Draw(c *gin.Context) {
	accepted, snapshot, err := h.service.Draw()
	h.respond(c, "draw", accepted, snapshot, err)
}

// Restart 重新開始，任何階段都接受
func (h *GameHandler) Restart(c *gin.Context) {
	snapshot, err := h.service.Restart()
	h.respond(c, "restart", err == nil, snapshot, err)
}

func (h *GameHandler) respond(c *gin.Context, command string, accepted bool, snapshot gameflow.Snapshot, err error) {
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.logger.Debug("處理指令",
		zap.String("command", command),
		zap.Bool("accepted", accepted),
		zap.String("phase", string(snapshot.Phase)))
	utils.Success(c, CommandResult{Accepted: accepted, Snapshot: snapshot})
}

func (h *GameHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, gameflow.ErrSessionNotFound) {
		utils.Error(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	h.logger.Error("處理請求失敗", zap.Error(err))
	utils.ServerError(c, err)
}
