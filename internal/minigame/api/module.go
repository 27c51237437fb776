package api

import (
	"g38_lotto_minigame/internal/minigame/config"
	"g38_lotto_minigame/internal/minigame/gameflow"
	"g38_lotto_minigame/internal/minigame/view"
	"g38_lotto_minigame/pkg/healthcheck"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RouterParams 路由依賴
type RouterParams struct {
	fx.In

	Config      *config.AppConfig
	GameHandler *GameHandler
	Hub         *view.Hub
	Health      *healthcheck.Manager
	Logger      *zap.Logger
}

// ProvideGameService 以會話管理器作為遊戲服務
func ProvideGameService(manager *gameflow.Manager) GameService {
	return manager
}

// ProvideRouter 依運行模式設置 gin 並創建路由
func ProvideRouter(p RouterParams) *gin.Engine {
	if p.Config.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := NewRouter(p.GameHandler, p.Hub, p.Health, p.Logger)
	RegisterVersionEndpoint(router, config.GetVersion(p.Config))
	return router
}

// RegisterSessionCheck 將會話狀態加入就緒檢查
func RegisterSessionCheck(health *healthcheck.Manager, manager *gameflow.Manager) {
	health.AddReadinessCheck(healthcheck.FuncChecker("session", manager.Ready))
}

// Module 提供 FX 模塊
var Module = fx.Options(
	fx.Provide(
		ProvideGameService,
		NewGameHandler,
		ProvideRouter,
		NewHTTPServer,
	),
	fx.Invoke(RegisterSessionCheck),
	fx.Invoke(StartServer),
)
