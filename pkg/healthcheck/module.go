package healthcheck

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ProvideManager 提供健康檢查管理器
func ProvideManager(logger *zap.Logger) *Manager {
	return New(Config{
		Logger: logger,
	})
}

// RegisterLifecycle 啟動完成後標記就緒，停止時先標記未就緒
func RegisterLifecycle(lc fx.Lifecycle, health *Manager) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			health.SetReady(true)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			health.SetReady(false)
			return nil
		},
	})
}

// Module 提供健康檢查管理器
var Module = fx.Options(
	fx.Provide(ProvideManager),
	fx.Invoke(RegisterLifecycle),
)
