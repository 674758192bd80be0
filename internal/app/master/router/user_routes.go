/**
 * 路由:用户路由
 * @date: 2026.03.20
 * @description: 当前登录用户相关路由，只需登录不校验权限码
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupUserRoutes 设置用户认证路由
func (r *Router) setupUserRoutes(authed *gin.RouterGroup) {
	h := r.modules.Auth.AuthHandler
	auth := authed.Group("/auth")
	{
		// 注销当前令牌
		auth.POST("/logout", h.Logout)
		// 注销当前用户的全部会话
		auth.POST("/logout-all", h.LogoutAll)
		// 当前用户信息(角色、权限)
		auth.GET("/profile", h.Profile)
	}
}
