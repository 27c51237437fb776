package config

import (
	"g38_lotto_minigame/internal/minigame/gameflow"
	"g38_lotto_minigame/pkg/logger"
	"g38_lotto_minigame/pkg/utils"

	"go.uber.org/fx"
)

// ProvideAppConfig 解析命令行參數並加載配置
func ProvideAppConfig() (*AppConfig, error) {
	InitFlags()
	return LoadConfig()
}

// ProvideLoggerConfig 提供日誌設定
func ProvideLoggerConfig(cfg *AppConfig) logger.Config {
	return logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	}
}

// ProvideGameSettings 提供遊戲參數
func ProvideGameSettings(cfg *AppConfig) gameflow.Settings {
	return cfg.GameSettings()
}

// ProvidePrizeTable 提供獎金表
func ProvidePrizeTable(cfg *AppConfig) (*gameflow.PrizeTable, error) {
	return gameflow.NewPrizeTable(cfg.Game.Prizes)
}

// ProvideBallColorTable 提供球色表
func ProvideBallColorTable(cfg *AppConfig) (*gameflow.BallColorTable, error) {
	return gameflow.NewBallColorTable(cfg.Game.BallColors)
}

// ProvideRandomGenerator 提供隨機數生成器，種子為 0 時以時間為種子
func ProvideRandomGenerator(cfg *AppConfig) *utils.RandomGenerator {
	return utils.NewRandomGenerator(cfg.Game.RandomSeed)
}

// Module 提供 FX 模塊
var Module = fx.Options(
	fx.Provide(
		ProvideAppConfig,
		ProvideLoggerConfig,
		ProvideGameSettings,
		ProvidePrizeTable,
		ProvideBallColorTable,
		ProvideRandomGenerator,
	),
)
