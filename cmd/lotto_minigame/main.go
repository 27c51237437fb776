package main

import (
	"context"
	"os"
	"time"

	"g38_lotto_minigame/internal/minigame/api"
	"g38_lotto_minigame/internal/minigame/config"
	"g38_lotto_minigame/internal/minigame/gameflow"
	"g38_lotto_minigame/internal/minigame/view"
	"g38_lotto_minigame/pkg/healthcheck"
	"g38_lotto_minigame/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

const stopTimeout = 15 * time.Second

func main() {
	// 初始化 flag 參數
	config.InitFlags()

	var log *zap.Logger
	app := fx.New(
		config.Module,
		logger.Module,
		healthcheck.Module,
		gameflow.Module,
		view.Module,
		api.Module,
		fx.Populate(&log),
	)

	if err := app.Start(context.Background()); err != nil {
		if log != nil {
			log.Error("應用啟動失敗", zap.Error(err))
		}
		os.Exit(1)
	}

	log.Info("樂透小遊戲服務初始化成功",
		zap.String("service", config.Args.ServiceName),
		zap.String("BuildTime", config.BuildTime),
		zap.String("GitHash", config.GitHash))

	// 等待停止信號
	sig := <-app.Done()
	log.Info("收到停止信號", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		log.Error("應用關閉失敗", zap.Error(err))
	}
	log.Info("應用已完全關閉")
}
