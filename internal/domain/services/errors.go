package services

import "errors"

// 业务层哨兵错误，控制器据此映射HTTP状态
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUnsupportedImage = errors.New("unsupported image format")
)

// ValidationError 表示调用方可修复的请求校验错误，消息直接返回给调用方
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError 创建一个校验错误
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
