package setup

import (
	"backoffice/internal/config"
	auditHandler "backoffice/internal/handler/audit"
	"backoffice/internal/pkg/logger"
	auditRepo "backoffice/internal/repo/mysql/audit"
	auditService "backoffice/internal/service/audit"

	"gorm.io/gorm"
)

// BuildAuditModule 构建审计模块（操作日志、异常日志、登录日志）
// 需先于认证模块构建，登录日志服务由会话服务写入
func BuildAuditModule(db *gorm.DB, cfg *config.Config) *AuditModule {
	logger.WithFields(stepLog("audit.BuildAuditModule", "setup.audit.begin", nil)).Info("开始构建审计模块")

	limit := cfg.App.ExportLimit
	auditLogs := auditService.NewAuditLogService(auditRepo.NewAuditLogRepository(db), limit)
	errorLogs := auditService.NewErrorLogService(auditRepo.NewErrorLogRepository(db), limit)
	loginLogs := auditService.NewLoginLogService(auditRepo.NewLoginLogRepository(db), limit)

	module := &AuditModule{
		AuditLogHandler: auditHandler.NewAuditLogHandler(auditLogs),
		ErrorLogHandler: auditHandler.NewErrorLogHandler(errorLogs),
		LoginLogHandler: auditHandler.NewLoginLogHandler(loginLogs),
		AuditLogService: auditLogs,
		ErrorLogService: errorLogs,
		LoginLogService: loginLogs,
	}

	logger.WithFields(stepLog("audit.BuildAuditModule", "setup.audit.done", nil)).Info("审计模块构建完成")
	return module
}
