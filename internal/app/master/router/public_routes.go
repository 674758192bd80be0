/**
 * 路由:公共路由
 * @date: 2026.03.20
 * @description: 公共路由，不需要认证
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupPublicRoutes 设置公共路由
func (r *Router) setupPublicRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		// 用户登录
		auth.POST("/login", r.modules.Auth.AuthHandler.Login)
	}
}
