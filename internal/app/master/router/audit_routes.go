/**
 * 路由:审计路由
 * @date: 2026.03.20
 * @description: 操作日志、错误日志、登录日志，只读加删除、清理、导出
 * @func:
 */
package router

import (
	"backoffice/internal/model/system"

	"github.com/gin-gonic/gin"
)

const moduleAudit = "audit"

// logRoutes 日志接口
type logRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Delete(c *gin.Context)
	Clean(c *gin.Context)
	Export(c *gin.Context)
}

// setupAuditRoutes 设置审计路由
func (r *Router) setupAuditRoutes(authed *gin.RouterGroup) {
	m := r.modules.Audit
	audit := authed.Group("/" + moduleAudit)
	r.registerLog(audit, "auditlog", m.AuditLogHandler)
	r.registerLog(audit, "errorlog", m.ErrorLogHandler)
	r.registerLog(audit, "loginlog", m.LoginLogHandler)
}

func (r *Router) registerLog(parent *gin.RouterGroup, entity string, h logRoutes) {
	g := parent.Group("/" + entity)
	g.GET("/list", r.perm(moduleAudit, entity, system.ActionList), h.List)
	g.GET("/export", r.perm(moduleAudit, entity, system.ActionExport), h.Export)
	g.POST("/clean", r.perm(moduleAudit, entity, system.ActionRemove), h.Clean)
	g.GET("/:id", r.perm(moduleAudit, entity, system.ActionQuery), h.Get)
	g.DELETE("/:id", r.perm(moduleAudit, entity, system.ActionRemove), h.Delete)
}
