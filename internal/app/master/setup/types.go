/**
 * 初始化
 * @date: 2026.03.20
 * @description: master 程序各业务模块的聚合输出
 * @func: Handler 本身包含 Service，Service 仍单独暴露一遍，供中间件与其他模块复用
 */
package setup

import (
	auditHandler "backoffice/internal/handler/audit"
	authHandler "backoffice/internal/handler/auth"
	coreHandler "backoffice/internal/handler/core"
	hrHandler "backoffice/internal/handler/hr"
	logisticsHandler "backoffice/internal/handler/logistics"
	systemHandler "backoffice/internal/handler/system"
	"backoffice/internal/pkg/auth"
	auditService "backoffice/internal/service/audit"
	authService "backoffice/internal/service/auth"
	coreService "backoffice/internal/service/core"
	systemService "backoffice/internal/service/system"
)

// AuditModule 审计模块聚合输出
// AuditLogService / ErrorLogService 同时作为中间件的日志写入方
type AuditModule struct {
	// Handlers
	AuditLogHandler *auditHandler.AuditLogHandler
	ErrorLogHandler *auditHandler.ErrorLogHandler
	LoginLogHandler *auditHandler.LoginLogHandler

	// Services
	AuditLogService *auditService.AuditLogService
	ErrorLogService *auditService.ErrorLogService
	LoginLogService *auditService.LoginLogService
}

// AuthModule 认证模块聚合输出
//
// 字段说明：
// - AuthHandler：登录、注销、个人信息
// - SessionService：令牌校验(中间件)与踢下线(用户管理)
// - PasswordManager：用户管理创建账号、重置密码时复用
type AuthModule struct {
	AuthHandler *authHandler.AuthHandler

	SessionService  *authService.SessionService
	PasswordManager *auth.PasswordManager
	SessionStore    authService.SessionStore

	// closeStore 内存会话存储需要停止清理协程，Redis 实现为空
	closeStore func() error
}

// Close 释放会话存储
func (m *AuthModule) Close() error {
	if m == nil || m.closeStore == nil {
		return nil
	}
	return m.closeStore()
}

// CoreModule 基础数据模块聚合输出
type CoreModule struct {
	// Handlers
	ConfigHandler    *coreHandler.ConfigHandler
	DictTypeHandler  *coreHandler.DictTypeHandler
	DictDataHandler  *coreHandler.DictDataHandler
	LanguageHandler  *coreHandler.LanguageHandler
	TranslateHandler *coreHandler.TranslateHandler

	// Services
	ConfigService   *coreService.ConfigService
	LanguageService *coreService.LanguageService
}

// SystemModule 系统管理模块聚合输出
type SystemModule struct {
	TenantHandler *systemHandler.TenantHandler
	DeptHandler   *systemHandler.DeptHandler
	MenuHandler   *systemHandler.MenuHandler
	RoleHandler   *systemHandler.RoleHandler
	UserHandler   *systemHandler.UserHandler

	UserService *systemService.UserService
}

// HRModule 人事模块聚合输出
type HRModule struct {
	PositionHandler *hrHandler.PositionHandler
	EmployeeHandler *hrHandler.EmployeeHandler
}

// LogisticsModule 物流模块聚合输出
type LogisticsModule struct {
	WarehouseHandler *logisticsHandler.WarehouseHandler
	MaterialHandler  *logisticsHandler.MaterialHandler
}

// Modules 全部模块，路由层据此注册
type Modules struct {
	Audit     *AuditModule
	Auth      *AuthModule
	Core      *CoreModule
	System    *SystemModule
	HR        *HRModule
	Logistics *LogisticsModule
}

// Close 释放模块持有的资源
func (m *Modules) Close() error {
	if m == nil {
		return nil
	}
	return m.Auth.Close()
}
