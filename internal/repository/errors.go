package repository

import "errors"

var (
	// ErrNotFound 记录不存在，与查询失败区分
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 违反唯一约束
	ErrDuplicate = errors.New("duplicate record")
)
