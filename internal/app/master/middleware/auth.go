/**
 * 中间件:认证相关中间件
 * @date: 2026.03.18
 * @description: 定义认证与权限中间件
 * @func:
 *   - GinJWTAuthMiddleware: 校验访问令牌与会话，写入用户身份
 *   - GinRequirePermission: 校验权限码，超级管理员直接放行
 *   - GinAdminRoleMiddleware: 仅超级管理员可访问
 */
package middleware

import (
	"errors"
	"strings"

	"backoffice/internal/handler"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/logger"
	"backoffice/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GinJWTAuthMiddleware Gin JWT认证中间件
// 验证请求头中的JWT令牌，并将用户信息存储到Gin上下文和标准上下文
// 使用方式: router.Use(middlewareManager.GinJWTAuthMiddleware())
func (m *MiddlewareManager) GinJWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, err := extractTokenFromGinHeader(c)
		if err != nil {
			handler.Fail(c, err)
			c.Abort()
			return
		}

		session, err := m.auth.Authenticate(c.Request.Context(), accessToken)
		if err != nil {
			if errors.Is(err, system.ErrUnauthorized) {
				logger.LogBusinessOperation("token_validation", 0, "", utils.NormalizeIP(c.ClientIP()), utils.GetRequestID(c), "failed", err.Error(), map[string]interface{}{
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				})
			}
			handler.Fail(c, err)
			c.Abort()
			return
		}

		c.Set(utils.GinKeyUserID, session.UserID)
		c.Set(utils.GinKeyUsername, session.Username)
		c.Set(utils.GinKeyTenantID, session.TenantID)
		c.Set(utils.GinKeySession, session)
		c.Request = c.Request.WithContext(utils.WithIdentity(c.Request.Context(), session.UserID, session.Username, session.TenantID))

		c.Next()
	}
}

// GinRequirePermission 权限码校验中间件，需在 GinJWTAuthMiddleware 之后使用
// 使用方式: group.GET("", m.GinRequirePermission("system:user:list"), h.List)
func (m *MiddlewareManager) GinRequirePermission(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.GinKeyPermission, code)
		session, ok := sessionOf(c)
		if !ok {
			handler.Fail(c, system.ErrUnauthorized)
			c.Abort()
			return
		}
		if !session.HasPermission(code) {
			logger.LogBusinessOperation("permission_denied", session.UserID, session.Username, utils.NormalizeIP(c.ClientIP()), utils.GetRequestID(c), "failed", "缺少权限: "+code, map[string]interface{}{
				"permission": code,
				"path":       c.Request.URL.Path,
			})
			handler.Fail(c, system.ErrPermissionDenied)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GinAdminRoleMiddleware Gin管理员角色中间件
func (m *MiddlewareManager) GinAdminRoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionOf(c)
		if !ok {
			handler.Fail(c, system.ErrUnauthorized)
			c.Abort()
			return
		}
		if !session.HasRole(system.SuperAdminRole) {
			handler.Fail(c, system.ErrPermissionDenied)
			c.Abort()
			return
		}
		c.Next()
	}
}

func sessionOf(c *gin.Context) (*system.SessionData, bool) {
	v, ok := c.Get(utils.GinKeySession)
	if !ok {
		return nil, false
	}
	session, ok := v.(*system.SessionData)
	return session, ok && session != nil
}

// extractTokenFromGinHeader 从Gin请求头中提取访问令牌
func extractTokenFromGinHeader(c *gin.Context) (string, error) {
	authorization := c.GetHeader("Authorization")
	if authorization == "" {
		return "", system.ErrUnauthorized
	}
	if !strings.HasPrefix(authorization, "Bearer ") {
		return "", system.ErrTokenInvalid
	}
	token := strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
	if token == "" {
		return "", system.ErrTokenInvalid
	}
	return token, nil
}
