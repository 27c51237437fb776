package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"g38_lotto_minigame/internal/minigame/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// NewHTTPServer 創建 HTTP 服務
func NewHTTPServer(cfg *config.AppConfig, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, fmt.Sprintf("%d", cfg.Server.Port)),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// StartServer 註冊 HTTP 服務生命週期
func StartServer(lc fx.Lifecycle, server *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return fmt.Errorf("監聽 %s 失敗: %w", server.Addr, err)
			}

			logger.Info("啟動 HTTP 服務", zap.String("addr", server.Addr))
			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP 服務異常退出", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("關閉 HTTP 服務")
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
