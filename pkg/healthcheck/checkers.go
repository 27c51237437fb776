package healthcheck

import (
	"errors"
	"net/http"
)

// ReadinessStateChecker 檢查服務的就緒狀態
type ReadinessStateChecker struct {
	manager *Manager
}

// Name 返回檢查器的名稱
func (r *ReadinessStateChecker) Name() string {
	return "readiness-state"
}

// Check 檢查服務是否就緒
func (r *ReadinessStateChecker) Check(req *http.Request) error {
	if !r.manager.IsReady() {
		return errors.New("服務未就緒")
	}
	return nil
}

// PingChecker 是一個簡單的 ping 檢查器
type PingChecker struct{}

// Name 返回檢查器的名稱
func (p *PingChecker) Name() string {
	return "ping"
}

// Check 總是返回成功
func (p *PingChecker) Check(req *http.Request) error {
	return nil
}

// CustomChecker 自定義健康檢查器，使用提供的函數執行檢查
type CustomChecker struct {
	Name_     string
	CheckFunc func(r *http.Request) error
}

// Name 返回檢查器的名稱
func (c *CustomChecker) Name() string {
	if c.Name_ != "" {
		return c.Name_
	}
	return "custom-checker"
}

// Check 使用自定義函數執行健康檢查
func (c *CustomChecker) Check(r *http.Request) error {
	if c.CheckFunc == nil {
		return errors.New("檢查函數未配置")
	}
	return c.CheckFunc(r)
}

// FuncChecker 以不需要請求的函數建立檢查器
func FuncChecker(name string, check func() error) *CustomChecker {
	return &CustomChecker{
		Name_: name,
		CheckFunc: func(*http.Request) error {
			return check()
		},
	}
}
