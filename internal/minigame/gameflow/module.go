package gameflow

import (
	"context"

	"g38_lotto_minigame/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// FactoryParams 控制器工廠的依賴
type FactoryParams struct {
	fx.In

	Settings Settings
	Prizes   *PrizeTable
	Colors   *BallColorTable
	View     View
	Random   *utils.RandomGenerator
	Logger   *zap.Logger
	Pacer    Pacer `optional:"true"`
}

// ProvideControllerFactory 提供控制器工廠，自動選號與開獎各用一個取樣器，共用同一個隨機數來源
func ProvideControllerFactory(p FactoryParams) ControllerFactory {
	return func(ctx context.Context, sessionID string) (*Controller, error) {
		return NewController(ctx, sessionID, p.Settings, Dependencies{
			Prizes:        p.Prizes,
			Colors:        p.Colors,
			View:          p.View,
			Pacer:         p.Pacer,
			PlayerSampler: NewRejectionSampler(p.Random),
			DrawSampler:   NewRejectionSampler(p.Random),
			Logger:        p.Logger,
		})
	}
}

// ProvideManager 提供會話管理器
func ProvideManager(factory ControllerFactory, logger *zap.Logger) *Manager {
	return NewManager(factory, logger)
}

// StartManager 啟動時建立第一個會話，停止時關閉
func StartManager(lc fx.Lifecycle, manager *Manager, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("初始化遊戲會話")
			_, err := manager.Restart()
			return err
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("關閉遊戲會話")
			manager.Close()
			return nil
		},
	})
}

// Module 提供 FX 模塊
var Module = fx.Options(
	fx.Provide(ProvideControllerFactory),
	fx.Provide(ProvideManager),
	fx.Invoke(StartManager),
)
