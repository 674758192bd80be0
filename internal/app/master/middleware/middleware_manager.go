package middleware

import (
	"context"

	"backoffice/internal/config"
	"backoffice/internal/model/audit"
	"backoffice/internal/model/system"
)

// Authenticator 令牌校验，返回仍然有效的会话
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*system.SessionData, error)
}

// AuditRecorder 写入操作日志
type AuditRecorder interface {
	Record(ctx context.Context, entry *audit.AuditLog) error
}

// ErrorRecorder 写入错误日志
type ErrorRecorder interface {
	Record(ctx context.Context, entry *audit.ErrorLog) error
}

// MiddlewareManager 中间件管理器
// 负责管理所有Gin框架的中间件，提供统一的中间件接口
type MiddlewareManager struct {
	auth           Authenticator
	auditLogs      AuditRecorder
	errorLogs      ErrorRecorder
	securityConfig *config.SecurityConfig
	rateLimiter    *KeyedLimiter
}

// NewMiddlewareManager 创建中间件管理器
// 参数:
//   - auth: 会话校验服务
//   - auditLogs / errorLogs: 日志写入，可为空
//   - securityConfig: 安全配置实例
func NewMiddlewareManager(auth Authenticator, auditLogs AuditRecorder, errorLogs ErrorRecorder, securityConfig *config.SecurityConfig) *MiddlewareManager {
	m := &MiddlewareManager{
		auth:           auth,
		auditLogs:      auditLogs,
		errorLogs:      errorLogs,
		securityConfig: securityConfig,
	}
	if securityConfig.RateLimit.Enabled {
		m.rateLimiter = NewKeyedLimiter(securityConfig.RateLimit.RequestsPerSecond, securityConfig.RateLimit.BurstSize, defaultLimiterIdle)
	}
	return m
}

// Close 释放限流器的清理协程
func (m *MiddlewareManager) Close() {
	if m.rateLimiter != nil {
		m.rateLimiter.Stop()
	}
}
