/**
 * 仓库层:审计日志
 * @date: 2026.03.12
 * @description: 操作日志、错误日志、登录日志仓库，默认按记录时间倒序
 */
package audit

import (
	"backoffice/internal/model/audit"
	"backoffice/internal/pkg/query"
	"backoffice/internal/repo/mysql"

	"gorm.io/gorm"
)

func logSortSpec(extra map[string]string) query.SortSpec {
	allowed := map[string]string{
		"id":         "id",
		"created_at": "created_at",
	}
	for k, v := range extra {
		allowed[k] = v
	}
	return query.NewSortSpec("id", allowed)
}

// NewAuditLogRepository 操作日志仓库
func NewAuditLogRepository(db *gorm.DB) *mysql.Repository[audit.AuditLog] {
	return mysql.NewRepository[audit.AuditLog](db, logSortSpec(map[string]string{
		"username":    "username",
		"module":      "module",
		"duration_ms": "duration_ms",
	}))
}

// NewErrorLogRepository 错误日志仓库
func NewErrorLogRepository(db *gorm.DB) *mysql.Repository[audit.ErrorLog] {
	return mysql.NewRepository[audit.ErrorLog](db, logSortSpec(map[string]string{
		"path": "path",
	}))
}

// NewLoginLogRepository 登录日志仓库
func NewLoginLogRepository(db *gorm.DB) *mysql.Repository[audit.LoginLog] {
	return mysql.NewRepository[audit.LoginLog](db, logSortSpec(map[string]string{
		"username": "username",
		"login_at": "login_at",
	}))
}
