package api

import (
	"g38_lotto_minigame/internal/minigame/view"
	"g38_lotto_minigame/pkg/healthcheck"
	"g38_lotto_minigame/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter 創建 HTTP 路由
func NewRouter(gameHandler *GameHandler, hub *view.Hub, health *healthcheck.Manager, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logger(logger), middleware.Cors())

	r.GET("/health/live", gin.WrapF(health.Handler(healthcheck.LivenessCheck)))
	r.GET("/health/ready", gin.WrapF(health.Handler(healthcheck.ReadinessCheck)))

	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request)
	})

	api := r.Group("/api/v1")
	{
		configureGameRoutes(api, gameHandler)
	}

	return r
}

func configureGameRoutes(api *gin.RouterGroup, gameHandler *GameHandler) {
	game := api.Group("/game")
	game.GET("", gameHandler.GetGame)
	game.GET("/paytable", gameHandler.GetPaytable)
	game.POST("/start", gameHandler.Start)
	game.POST("/finalize", gameHandler.Finalize)
	game.POST("/draw", gameHandler.Draw)
	game.POST("/restart", gameHandler.Restart)
}
