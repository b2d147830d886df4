package util

import (
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	// ErrOracleUnavailable AI 服务不可达/超时/响应异常；判分时仅在单题内部消化，解析与出题直接返回 502
	ErrOracleUnavailable = errors.New("descriptive grading oracle unavailable")
)

// ValidationError 请求参数或标识格式错误 -> 400
type ValidationError struct {
	Title   string
	Message string
}

func NewValidationError(title, message string) error {
	return &ValidationError{Title: title, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError 资源不存在 -> 404；AvailableIDs 只在非 release 模式下填充
type NotFoundError struct {
	Title        string
	Message      string
	AvailableIDs []string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ConflictError 重复提交 -> 400
type ConflictError struct {
	Title   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StorageError 存储读写失败 -> 500，调用方可重试
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
