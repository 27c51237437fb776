package gameflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ControllerFactory 為新會話建立控制器
type ControllerFactory func(ctx context.Context, sessionID string) (*Controller, error)

// Manager 會話管理器，持有當前的控制器
// 重新開始會關閉舊控制器並換上新的 IDLE 控制器
type Manager struct {
	factory ControllerFactory
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	current *Controller
}

// NewManager 創建會話管理器，第一個會話由 Restart 建立
func NewManager(factory ControllerFactory, logger *zap.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		factory: factory,
		logger:  logger.With(zap.String("component", "session_manager")),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Current 當前控制器
func (m *Manager) Current() (*Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil, ErrSessionNotFound
	}
	return m.current, nil
}

// Snapshot 當前會話快照
func (m *Manager) Snapshot() (Snapshot, error) {
	ctrl, err := m.Current()
	if err != nil {
		return Snapshot{}, err
	}
	return ctrl.Snapshot(), nil
}

// Start 開始選號，長流程在控制器自己的 goroutine 中執行
func (m *Manager) Start(autoPick bool) (bool, Snapshot, error) {
	ctrl, err := m.Current()
	if err != nil {
		return false, Snapshot{}, err
	}
	accepted, _ := ctrl.StartAsync(autoPick)
	return accepted, ctrl.Snapshot(), nil
}

// Finalize 玩家選號
func (m *Manager) Finalize(number int) (bool, Snapshot, error) {
	ctrl, err := m.Current()
	if err != nil {
		return false, Snapshot{}, err
	}
	accepted := ctrl.Finalize(number)
	return accepted, ctrl.Snapshot(), nil
}

// Draw 開獎
func (m *Manager) Draw() (bool, Snapshot, error) {
	ctrl, err := m.Current()
	if err != nil {
		return false, Snapshot{}, err
	}
	accepted, _ := ctrl.DrawAsync()
	return accepted, ctrl.Snapshot(), nil
}

// Restart 丟棄當前會話並建立新的會話，任何階段都接受
func (m *Manager) Restart() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx.Err() != nil {
		return Snapshot{}, m.ctx.Err()
	}

	sessionID := fmt.Sprintf("session_%s", uuid.New().String())
	next, err := m.factory(m.ctx, sessionID)
	if err != nil {
		m.logger.Error("建立新會話失敗", zap.Error(err))
		return Snapshot{}, fmt.Errorf("建立新會話失敗: %w", err)
	}

	if m.current != nil {
		m.logger.Info("關閉舊會話",
			zap.String("sessionID", m.current.ID()),
			zap.String("phase", string(m.current.Phase())))
		m.current.Close()
	}

	m.current = next
	m.logger.Info("建立新會話", zap.String("sessionID", sessionID))
	next.Announce()

	return next.Snapshot(), nil
}

// Ready 是否已有可用的會話
func (m *Manager) Ready() error {
	_, err := m.Current()
	return err
}

// Close 關閉管理器及當前會話
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.current.Close()
	}
	m.cancel()
}
