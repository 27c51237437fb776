package gameflow

import (
	"fmt"
)

// GameFlowError 代表遊戲流程錯誤
type GameFlowError struct {
	Code    string
	Message string
}

// Error 實現error接口
func (e *GameFlowError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is 實現errors.Is接口，用於錯誤比較
func (e *GameFlowError) Is(target error) bool {
	t, ok := target.(*GameFlowError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// 預定義錯誤
var (
	// 球錯誤
	ErrInvalidBall = &GameFlowError{
		Code:    "INVALID_BALL",
		Message: "無效的球號",
	}

	ErrDuplicateBall = &GameFlowError{
		Code:    "DUPLICATE_BALL",
		Message: "重複的球號",
	}

	// 配置錯誤
	ErrInvalidPrizeTable = &GameFlowError{
		Code:    "INVALID_PRIZE_TABLE",
		Message: "獎金表門檻必須嚴格遞增且大於0",
	}

	ErrInvalidColorTable = &GameFlowError{
		Code:    "INVALID_COLOR_TABLE",
		Message: "球色表門檻必須嚴格遞增",
	}

	ErrCapacityExceedsPool = &GameFlowError{
		Code:    "CAPACITY_EXCEEDS_POOL",
		Message: "選號數量不能超過可選球總數",
	}

	// 參數錯誤
	ErrInvalidParameter = &GameFlowError{
		Code:    "INVALID_PARAMETER",
		Message: "無效的參數",
	}

	// 會話錯誤
	ErrSessionNotFound = &GameFlowError{
		Code:    "SESSION_NOT_FOUND",
		Message: "找不到遊戲會話",
	}
)

// NewGameFlowError 創建新的遊戲流程錯誤
func NewGameFlowError(code, message string) *GameFlowError {
	return &GameFlowError{
		Code:    code,
		Message: message,
	}
}

// NewGameFlowErrorWithFormat 使用格式化字串創建新的遊戲流程錯誤
func NewGameFlowErrorWithFormat(code string, format string, args ...interface{}) *GameFlowError {
	return &GameFlowError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
