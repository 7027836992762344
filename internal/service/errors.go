package service

import "errors"

// 业务错误：handler 层统一映射为 code/msg 信封
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongOldPassword   = errors.New("incorrect old password")
	ErrNotFound           = errors.New("not found")
)

// ValidationError 字段级校验失败，msg 直接展示给用户
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
