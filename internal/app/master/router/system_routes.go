/**
 * 路由:系统管理路由
 * @date: 2026.03.20
 * @description: 租户、部门、菜单、角色、用户
 * @func:
 */
package router

import (
	"backoffice/internal/model/system"

	"github.com/gin-gonic/gin"
)

const moduleSystem = "system"

// setupSystemRoutes 设置系统管理路由
func (r *Router) setupSystemRoutes(authed *gin.RouterGroup) {
	m := r.modules.System
	sys := authed.Group("/" + moduleSystem)

	r.registerCRUD(sys, moduleSystem, "tenant", m.TenantHandler)

	dept := r.registerCRUD(sys, moduleSystem, "dept", m.DeptHandler)
	dept.GET("/tree", r.perm(moduleSystem, "dept", system.ActionList), m.DeptHandler.Tree)

	menu := r.registerCRUD(sys, moduleSystem, "menu", m.MenuHandler)
	menu.GET("/tree", r.perm(moduleSystem, "menu", system.ActionList), m.MenuHandler.Tree)

	role := r.registerCRUD(sys, moduleSystem, "role", m.RoleHandler)
	role.GET("/:id/menus", r.perm(moduleSystem, "role", system.ActionQuery), m.RoleHandler.MenuIDs)
	role.PUT("/:id/menus", r.perm(moduleSystem, "role", system.ActionEdit), m.RoleHandler.AssignMenus)

	user := r.registerCRUD(sys, moduleSystem, "user", m.UserHandler)
	user.PUT("/:id/roles", r.perm(moduleSystem, "user", system.ActionEdit), m.UserHandler.AssignRoles)
	user.PUT("/:id/password", r.perm(moduleSystem, "user", system.ActionEdit), m.UserHandler.ResetPassword)
}
