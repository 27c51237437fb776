package utils

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError 表示單一欄位的驗證錯誤
type ValidationError struct {
	Field   string      `json:"field"`
	Tag     string      `json:"tag"`
	Value   interface{} `json:"value"`
	Message string      `json:"message"`
}

// ValidationErrors 多個欄位驗證錯誤
type ValidationErrors []ValidationError

// Error 實現 error 接口
func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Message)
	}
	return strings.Join(msgs, "; ")
}

// CustomValidator 是一個基於 go-playground/validator 的客製化驗證器
type CustomValidator struct {
	validator *validator.Validate
}

var (
	validatorInstance *CustomValidator
	validatorOnce     sync.Once
)

// GetValidator 返回全局驗證器實例
func GetValidator() *CustomValidator {
	validatorOnce.Do(func() {
		v := validator.New()

		// 使用 JSON 標籤作為欄位名稱
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		validatorInstance = &CustomValidator{validator: v}
	})
	return validatorInstance
}

// Validate 驗證給定的結構體，無錯誤時返回 nil
func (v *CustomValidator) Validate(obj interface{}) error {
	if err := v.validator.Struct(obj); err != nil {
		return v.translateErrors(err)
	}
	return nil
}

// translateErrors 將驗證錯誤轉換為客製化格式
func (v *CustomValidator) translateErrors(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	result := make(ValidationErrors, 0, len(validationErrors))
	for _, e := range validationErrors {
		result = append(result, ValidationError{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Value:   e.Value(),
			Message: getDefaultErrorMessage(e.Field(), e.Tag(), e.Param()),
		})
	}
	return result
}

// getDefaultErrorMessage 獲取默認錯誤訊息
func getDefaultErrorMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return field + "為必填欄位"
	case "gt":
		return fmt.Sprintf("%s必須大於%s", field, param)
	case "gte", "min":
		return fmt.Sprintf("%s不能小於%s", field, param)
	case "lte", "max":
		return fmt.Sprintf("%s不能大於%s", field, param)
	case "ltefield":
		return fmt.Sprintf("%s不能大於%s", field, param)
	case "oneof":
		return fmt.Sprintf("%s必須是以下之一: %s", field, param)
	default:
		return field + "格式不正確"
	}
}
