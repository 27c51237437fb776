package gameflow

import (
	"context"
	"time"
)

// Pacer 控制自動選號與閃動之間的固定間隔
type Pacer interface {
	Wait(ctx context.Context, d time.Duration) error
}

// TimerPacer 以計時器等待
type TimerPacer struct{}

// Wait 等待 d 或直到 ctx 取消
func (TimerPacer) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ctx.Err()
	}
}

// InstantPacer 不等待，只檢查取消
type InstantPacer struct{}

// Wait 立即返回
func (InstantPacer) Wait(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
