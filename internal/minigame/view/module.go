package view

import (
	"context"

	"g38_lotto_minigame/internal/minigame/gameflow"
	"g38_lotto_minigame/pkg/websocket"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ProvideWebsocketManager 提供 WebSocket 連線管理器
func ProvideWebsocketManager(logger *zap.Logger) *websocket.Manager {
	return websocket.NewManager(logger)
}

// ProvideView 以 Hub 作為遊戲流程的表現層
func ProvideView(hub *Hub) gameflow.View {
	return hub
}

// StartHub 綁定會話管理器並啟動連線管理器
func StartHub(lc fx.Lifecycle, ws *websocket.Manager, hub *Hub, manager *gameflow.Manager, logger *zap.Logger) {
	hub.Bind(manager)

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("啟動表現層廣播")
			go ws.Start(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			logger.Info("關閉表現層廣播")
			cancel()
			ws.Shutdown()
			return nil
		},
	})
}

// Module 提供 FX 模塊
var Module = fx.Options(
	fx.Provide(
		ProvideWebsocketManager,
		NewHub,
		ProvideView,
	),
	fx.Invoke(StartHub),
)
