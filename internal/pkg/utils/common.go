/*
 * @date: 2026.03.02
 * @description: 通用的上下文工具
 * @func:
 *	1.标准上下文键定义
 *	2.从标准上下文读取请求身份(用户/租户/IP/请求ID)
 *	3.将 gin 上下文中的身份信息写入标准上下文
 */

package utils

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ContextKey 类型用于标准上下文键的定义，避免使用裸字符串造成键冲突
type ContextKey string

const (
	ContextKeyClientIP  ContextKey = "client_ip"
	ContextKeyUserID    ContextKey = "user_id"
	ContextKeyUsername  ContextKey = "username"
	ContextKeyTenantID  ContextKey = "tenant_id"
	ContextKeyRequestID ContextKey = "request_id"
)

// gin 上下文中使用的键，由中间件写入
const (
	GinKeyUserID     = "user_id"
	GinKeyUsername   = "username"
	GinKeyTenantID   = "tenant_id"
	GinKeyRequestID  = "request_id"
	GinKeySession    = "session"
	GinKeyClientIP   = "client_ip"
	GinKeyPermission = "permission"
)

// GetCurrentUserID 从 Gin 上下文中提取当前用户ID，不存在返回0
// 来源：JWT中间件 GinJWTAuthMiddleware() 写入
func GetCurrentUserID(c *gin.Context) uint64 {
	if v, ok := c.Get(GinKeyUserID); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}

// GetCurrentUsername 从 Gin 上下文中提取当前用户名
func GetCurrentUsername(c *gin.Context) string {
	return c.GetString(GinKeyUsername)
}

// GetRequestID 从 Gin 上下文中提取请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(GinKeyRequestID)
}

// GetClientIPFromContext 从标准上下文读取客户端IP（统一键）
// 适用范围：service 层以下获取当前 clientIP 使用
// 来源：logging中间件写入标准上下文 GinLoggingMiddleware() 中
func GetClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

// GetUserIDFromContext 从标准上下文读取当前用户ID，不存在返回0
func GetUserIDFromContext(ctx context.Context) uint64 {
	if id, ok := ctx.Value(ContextKeyUserID).(uint64); ok {
		return id
	}
	return 0
}

// GetUsernameFromContext 从标准上下文读取当前用户名
func GetUsernameFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(ContextKeyUsername).(string); ok {
		return name
	}
	return ""
}

// GetTenantIDFromContext 从标准上下文读取当前租户ID，0 表示不做租户隔离
func GetTenantIDFromContext(ctx context.Context) uint64 {
	if id, ok := ctx.Value(ContextKeyTenantID).(uint64); ok {
		return id
	}
	return 0
}

// GetRequestIDFromContext 从标准上下文读取请求ID
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// WithIdentity 将用户身份写入标准上下文，供 service/repo 层读取
// 仓储层的 gorm 钩子依赖这里写入的用户和租户填充审计字段
func WithIdentity(ctx context.Context, userID uint64, username string, tenantID uint64) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, ContextKeyUsername, username)
	return context.WithValue(ctx, ContextKeyTenantID, tenantID)
}

// WithRequestMeta 将请求ID与客户端IP写入标准上下文
func WithRequestMeta(ctx context.Context, requestID, clientIP string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyRequestID, requestID)
	return context.WithValue(ctx, ContextKeyClientIP, clientIP)
}
