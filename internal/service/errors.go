package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/d60-Lab/yatube/internal/repository"
)

var (
	// ErrNotFound 未知的 slug / 用户名 / 帖子 id
	ErrNotFound = repository.ErrNotFound
	// ErrForbidden 非作者编辑或删除帖子
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated 需要登录
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrValidation 表单校验失败，具体字段见 *ValidationError
	ErrValidation = errors.New("validation failed")
)

// ValidationError 字段 -> 错误信息
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

// OrNil 没有字段错误时返回 nil，便于 return v.OrNil()
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// FieldErrors 取出校验错误；不是校验错误时返回 nil
func FieldErrors(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
