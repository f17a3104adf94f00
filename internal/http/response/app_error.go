package response

import "fmt"

// AppError 业务错误，携带响应码与面向用户的消息。
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap 暴露底层错误供 errors.Is/As 使用。
func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 把底层错误包装为业务错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
