/**
 * 模型:错误定义
 * @date: 2026.03.02
 * @description: 系统错误常量和错误类型定义，handler 层据此映射 HTTP 状态码
 * @func:
 *	1.错误种类哨兵(NotFound/Conflict/Validation/Unauthorized/Forbidden/QueryFailed)
 *	2.NotFoundError、ValidationError、ConflictError 结构体
 */
package system

import (
	"errors"
	"fmt"
)

// 错误种类，业务错误通过 errors.Is 归类
var (
	ErrNotFound     = errors.New("记录不存在")
	ErrConflict     = errors.New("数据已存在")
	ErrValidation   = errors.New("参数校验失败")
	ErrUnauthorized = errors.New("未授权访问")
	ErrForbidden    = errors.New("权限不足")
	ErrQueryFailed  = errors.New("数据查询失败")
)

// 认证相关错误
var (
	ErrInvalidCredentials = fmt.Errorf("用户名或密码错误: %w", ErrUnauthorized)
	ErrUserDisabled       = fmt.Errorf("用户已被禁用: %w", ErrForbidden)
	ErrTokenInvalid       = fmt.Errorf("令牌无效: %w", ErrUnauthorized)
	ErrTokenRevoked       = fmt.Errorf("令牌已注销: %w", ErrUnauthorized)
	ErrPermissionDenied   = fmt.Errorf("缺少操作权限: %w", ErrForbidden)
)

// NotFoundError 指定实体不存在
type NotFoundError struct {
	Entity string
	ID     interface{}
}

// NewNotFoundError 创建不存在错误
func NewNotFoundError(entity string, id interface{}) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s不存在: %v", e.Entity, e.ID)
}

// Is 使 errors.Is(err, ErrNotFound) 成立
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError 唯一约束冲突
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

// NewConflictError 创建冲突错误
func NewConflictError(entity, field, value string) *ConflictError {
	return &ConflictError{Entity: entity, Field: field, Value: value}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s的%s已存在: %s", e.Entity, e.Field, e.Value)
}

// Is 使 errors.Is(err, ErrConflict) 成立
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ValidationError 验证错误结构体
type ValidationError struct {
	Field   string `json:"field"`   // 字段名
	Message string `json:"message"` // 错误消息
}

// NewValidationError 创建验证错误
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is 使 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsValidationError 检查是否为验证错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrValidation)
}
