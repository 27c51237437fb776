package healthcheck

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Checker 定義健康檢查的接口
type Checker interface {
	// Name 返回檢查器的名稱
	Name() string

	// Check 執行健康檢查，如果健康返回 nil，否則返回錯誤
	Check(r *http.Request) error
}

// CheckType 表示檢查類型：活性檢查或就緒檢查
type CheckType int

const (
	// LivenessCheck 表示活性檢查，確認服務是否運行
	LivenessCheck CheckType = iota

	// ReadinessCheck 表示就緒檢查，確認服務是否可以處理請求
	ReadinessCheck
)

// String 檢查類型名稱
func (t CheckType) String() string {
	if t == ReadinessCheck {
		return "readiness"
	}
	return "liveness"
}

// Result 健康檢查結果
type Result struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Manager 健康檢查管理器，管理各種健康檢查
type Manager struct {
	readyState atomic.Bool
	checkers   map[CheckType][]Checker
	logger     *zap.Logger
	mu         sync.RWMutex
}

// Config 健康檢查管理器配置
type Config struct {
	// Logger 是用於日誌記錄的 zap logger
	Logger *zap.Logger
}

// New 創建一個新的健康檢查管理器
func New(config Config) *Manager {
	logger := config.Logger
	if logger == nil {
		// 如果沒有提供 logger，使用 noop logger
		logger = zap.NewNop()
	}

	m := &Manager{
		checkers: make(map[CheckType][]Checker),
		logger:   logger.With(zap.String("component", "health_manager")),
	}

	// 設置初始狀態為未就緒
	m.readyState.Store(false)

	m.AddLivenessCheck(&PingChecker{})
	m.AddReadinessCheck(&ReadinessStateChecker{manager: m})

	return m
}

// Run 執行指定類型的所有檢查
func (m *Manager) Run(checkType CheckType, r *http.Request) (Result, bool) {
	m.mu.RLock()
	checkers := append([]Checker{}, m.checkers[checkType]...)
	m.mu.RUnlock()

	result := Result{Status: "ok", Checks: make(map[string]string, len(checkers))}
	healthy := true

	for _, checker := range checkers {
		if err := checker.Check(r); err != nil {
			m.logger.Warn("健康檢查失敗",
				zap.String("type", checkType.String()),
				zap.String("checker", checker.Name()),
				zap.Error(err))
			result.Checks[checker.Name()] = err.Error()
			healthy = false
			continue
		}
		result.Checks[checker.Name()] = "ok"
	}

	if !healthy {
		result.Status = "unavailable"
	}
	return result, healthy
}

// Handler 返回指定類型的健康檢查處理程序
func (m *Manager) Handler(checkType CheckType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, healthy := m.Run(checkType, r)

		w.Header().Set("Content-Type", "application/json")
		if healthy {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(result)
	}
}

// AddChecker 添加一個特定類型的健康檢查器
func (m *Manager) AddChecker(checkType CheckType, checker Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug("添加健康檢查",
		zap.String("checker", checker.Name()),
		zap.String("type", checkType.String()))

	m.checkers[checkType] = append(m.checkers[checkType], checker)
}

// AddLivenessCheck 添加一個活性檢查
func (m *Manager) AddLivenessCheck(checker Checker) {
	m.AddChecker(LivenessCheck, checker)
}

// AddReadinessCheck 添加一個就緒檢查
func (m *Manager) AddReadinessCheck(checker Checker) {
	m.AddChecker(ReadinessCheck, checker)
}

// SetReady 設置服務的就緒狀態
func (m *Manager) SetReady(ready bool) {
	oldState := m.readyState.Swap(ready)

	if oldState != ready {
		if ready {
			m.logger.Info("服務已標記為就緒")
		} else {
			m.logger.Info("服務已標記為未就緒")
		}
	}
}

// IsReady 返回服務的就緒狀態
func (m *Manager) IsReady() bool {
	return m.readyState.Load()
}
