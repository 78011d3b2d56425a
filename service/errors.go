package service

import "errors"

// 错误分类。handler 据此把 error 映射到业务码：
// - ValidationError -> 参数错误（本地校验失败，不产生存储调用）
// - OwnershipError  -> 权限不足（记录不存在或不属于当前用户）
// - 其余            -> 内部错误（存储失败原样透出，不重试）

// ValidationError 本地校验失败
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationError(msg string) error { return &ValidationError{Msg: msg} }

func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// OwnershipError 所有权不匹配（删除命中 0 行等）
type OwnershipError struct {
	Msg string
}

func (e *OwnershipError) Error() string { return e.Msg }

func ownershipError(msg string) error { return &OwnershipError{Msg: msg} }

func IsOwnershipError(err error) bool {
	var o *OwnershipError
	return errors.As(err, &o)
}
