/**
 * 路由:路由管理器
 * @date: 2026.03.20
 * @description: 路由管理器，包含Router结构体、NewRouter函数和SetupRoutes主函数
 * @func:
 * 1.全局中间件注册
 * 2.各模块路由注册，实体接口统一为 /api/{module}/{entity}
 */
package router

import (
	"context"

	"backoffice/internal/app/master/middleware"
	"backoffice/internal/app/master/setup"
	"backoffice/internal/config"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ReadinessCheck 就绪检查项，返回错误表示依赖不可用
type ReadinessCheck func(ctx context.Context) error

// Router 路由管理器
type Router struct {
	config            *config.Config
	engine            *gin.Engine
	middlewareManager *middleware.MiddlewareManager
	modules           *setup.Modules
	readiness         map[string]ReadinessCheck
}

// NewRouter 创建路由管理器实例
// readiness 为就绪检查项(数据库、Redis)，键为依赖名
func NewRouter(cfg *config.Config, modules *setup.Modules, middlewareManager *middleware.MiddlewareManager, readiness map[string]ReadinessCheck) *Router {
	switch cfg.Server.Mode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
	return &Router{
		config:            cfg,
		engine:            gin.New(),
		middlewareManager: middlewareManager,
		modules:           modules,
		readiness:         readiness,
	}
}

// SetupRoutes 设置全局中间件和路由
func (r *Router) SetupRoutes() {
	// 1) 先注册全局中间件；2) 再注册各模块路由
	r.registerGlobalMiddleware()
	r.registerRoutes()
}

// GetEngine 获取Gin引擎实例
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// registerGlobalMiddleware 注册全局中间件
// 顺序：请求ID → 访问日志 → panic恢复 → CORS → 安全响应头 → 禁止索引 → 限流
// 恢复中间件位于日志之后，panic 产生的 500 仍会写访问日志
func (r *Router) registerGlobalMiddleware() {
	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerGlobalMiddleware",
		"operation": "register_global_middleware",
		"option":    "middlewareManager.attach",
		"func_name": "router.registerGlobalMiddleware",
	}).Info("开始注册全局中间件")

	mm := r.middlewareManager
	r.engine.Use(
		mm.GinRequestIDMiddleware(),
		mm.GinLoggingMiddleware(),
		mm.GinRecoveryMiddleware(),
		mm.GinCORSMiddleware(),
		mm.GinSecurityHeadersMiddleware(),
		mm.GinNoIndexMiddleware(),
		mm.GinRateLimitMiddleware(),
	)

	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerGlobalMiddleware",
		"operation": "register_global_middleware",
		"option":    "middlewareManager.attach.done",
		"func_name": "router.registerGlobalMiddleware",
	}).Info("全局中间件注册完成")
}

// registerRoutes 注册路由
func (r *Router) registerRoutes() {
	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerRoutes",
		"operation": "register_routes",
		"option":    "routes.attach.begin",
		"func_name": "router.registerRoutes",
	}).Info("开始注册路由")

	api := r.engine.Group("/api")

	// 公共路由（不需要认证）
	r.setupPublicRoutes(api)
	r.setupHealthRoutes(api)

	// 需要认证的路由：先校验令牌，再记录操作审计
	authed := api.Group("")
	authed.Use(r.middlewareManager.GinJWTAuthMiddleware())
	authed.Use(r.middlewareManager.GinAuditMiddleware())

	r.setupUserRoutes(authed)
	r.setupCoreRoutes(authed)
	r.setupSystemRoutes(authed)
	r.setupHRRoutes(authed)
	r.setupLogisticsRoutes(authed)
	r.setupAuditRoutes(authed)

	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerRoutes",
		"operation": "register_routes",
		"option":    "routes.attach.done",
		"func_name": "router.registerRoutes",
		"routes":    len(r.engine.Routes()),
	}).Info("路由注册完成")
}

// crudRoutes 实体通用接口，handler.CRUDHandler 及其扩展均满足
type crudRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	ChangeStatus(c *gin.Context)
	Export(c *gin.Context)
	Import(c *gin.Context)
	Template(c *gin.Context)
}

// perm 权限校验中间件，权限码 {module}:{entity}:{action}
func (r *Router) perm(module, entity, action string) gin.HandlerFunc {
	return r.middlewareManager.GinRequirePermission(system.PermissionCode(module, entity, action))
}

// registerCRUD 注册实体通用接口，返回实体路由组供注册扩展接口
func (r *Router) registerCRUD(parent *gin.RouterGroup, module, entity string, h crudRoutes) *gin.RouterGroup {
	g := parent.Group("/" + entity)
	g.GET("/list", r.perm(module, entity, system.ActionList), h.List)
	g.GET("/export", r.perm(module, entity, system.ActionExport), h.Export)
	g.GET("/template", r.perm(module, entity, system.ActionImport), h.Template)
	g.POST("/import", r.perm(module, entity, system.ActionImport), h.Import)
	g.GET("/:id", r.perm(module, entity, system.ActionQuery), h.Get)
	g.POST("", r.perm(module, entity, system.ActionAdd), h.Create)
	g.PUT("/:id", r.perm(module, entity, system.ActionEdit), h.Update)
	g.DELETE("/:id", r.perm(module, entity, system.ActionRemove), h.Delete)
	g.PUT("/:id/status", r.perm(module, entity, system.ActionEdit), h.ChangeStatus)
	return g
}
