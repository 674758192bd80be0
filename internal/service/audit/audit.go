/**
 * 服务层:审计日志
 * @date: 2026.03.12
 * @description: 操作日志、错误日志、登录日志的查询、导出、删除与按时间清理
 * @func:
 *	1.Record 由中间件和登录流程写入，失败只记录到日志文件
 *	2.List / Get / Export / Delete
 *	3.Clean 物理删除某时间之前的记录
 */
package audit

import (
	"context"
	"time"

	"backoffice/internal/model/audit"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/logger"
	"backoffice/internal/pkg/query"
	"backoffice/internal/pkg/utils"
	"backoffice/internal/repo/mysql"
	"backoffice/internal/service/crud"

	"github.com/sirupsen/logrus"
)

// LogService 日志类实体通用服务，日志只追加，不支持修改
type LogService[E, Q any] struct {
	entity      string
	operation   string
	timeColumn  string
	repo        *mysql.Repository[E]
	predicate   func(q *Q) *query.Predicate
	exportLimit int
}

func newLogService[E, Q any](repo *mysql.Repository[E], entity, operation, timeColumn string, predicate func(q *Q) *query.Predicate, exportLimit int) *LogService[E, Q] {
	if exportLimit <= 0 {
		exportLimit = crud.DefaultExportLimit
	}
	return &LogService[E, Q]{
		entity:      entity,
		operation:   operation,
		timeColumn:  timeColumn,
		repo:        repo,
		predicate:   predicate,
		exportLimit: exportLimit,
	}
}

// Entity 实体显示名
func (s *LogService[E, Q]) Entity() string {
	return s.entity
}

func (s *LogService[E, Q]) pred(q *Q) *query.Predicate {
	if q == nil {
		return query.Where()
	}
	return s.predicate(q)
}

// Record 写入一条日志
func (s *LogService[E, Q]) Record(ctx context.Context, entry *E) error {
	if err := s.repo.Create(ctx, entry); err != nil {
		logger.LogSystemEvent("audit", s.operation+"_record_failed", err.Error(), logrus.WarnLevel, nil)
		return err
	}
	return nil
}

// List 分页列表
func (s *LogService[E, Q]) List(ctx context.Context, q *Q, page query.PageRequest) (*query.PageResult[E], error) {
	return s.repo.List(ctx, s.pred(q), page)
}

// Get 按ID获取
func (s *LogService[E, Q]) Get(ctx context.Context, id uint64) (*E, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, system.NewNotFoundError(s.entity, id)
	}
	return entry, nil
}

// Export 导出全部匹配记录，受导出上限约束
func (s *LogService[E, Q]) Export(ctx context.Context, q *Q, page query.PageRequest) ([]E, error) {
	return s.repo.ListAll(ctx, s.pred(q), page, s.exportLimit)
}

// Delete 删除单条
func (s *LogService[E, Q]) Delete(ctx context.Context, id uint64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logOperation(ctx, "delete", map[string]interface{}{"id": id})
	return nil
}

// Clean 删除 before 之前的记录，返回删除条数
func (s *LogService[E, Q]) Clean(ctx context.Context, before time.Time) (int64, error) {
	if before.IsZero() {
		return 0, system.NewValidationError("before", "清理时间不能为空")
	}
	if before.After(time.Now()) {
		return 0, system.NewValidationError("before", "清理时间不能晚于当前时间")
	}
	n, err := s.repo.DeleteWhere(ctx, query.Where().Lte(s.timeColumn, before))
	if err != nil {
		return 0, err
	}
	s.logOperation(ctx, "clean", map[string]interface{}{"before": before, "deleted": n})
	return n, nil
}

func (s *LogService[E, Q]) logOperation(ctx context.Context, action string, extra map[string]interface{}) {
	logger.LogAuditOperation(
		utils.GetUserIDFromContext(ctx),
		utils.GetUsernameFromContext(ctx),
		s.operation+"_"+action,
		s.entity,
		"success",
		utils.GetClientIPFromContext(ctx),
		"",
		utils.GetRequestIDFromContext(ctx),
		extra)
}

// AuditLogService 操作日志服务
type AuditLogService = LogService[audit.AuditLog, audit.AuditLogQuery]

// ErrorLogService 错误日志服务
type ErrorLogService = LogService[audit.ErrorLog, audit.ErrorLogQuery]

// LoginLogService 登录日志服务
type LoginLogService = LogService[audit.LoginLog, audit.LoginLogQuery]

// NewAuditLogService 创建操作日志服务
func NewAuditLogService(repo *mysql.Repository[audit.AuditLog], exportLimit int) *AuditLogService {
	return newLogService(repo, "操作日志", "audit_operation_log", "created_at", func(q *audit.AuditLogQuery) *query.Predicate {
		return query.Where().
			Contains("username", q.Username).
			Eq("module", q.Module).
			Contains("operation", q.Operation).
			Eq("method", q.Method).
			Eq("success", q.Success).
			Between("created_at", q.StartTime, query.DayEnd(q.EndTime))
	}, exportLimit)
}

// NewErrorLogService 创建错误日志服务
func NewErrorLogService(repo *mysql.Repository[audit.ErrorLog], exportLimit int) *ErrorLogService {
	return newLogService(repo, "错误日志", "audit_error_log", "created_at", func(q *audit.ErrorLogQuery) *query.Predicate {
		return query.Where().
			Eq("request_id", q.RequestID).
			Contains("path", q.Path).
			Contains("message", q.Message).
			Between("created_at", q.StartTime, query.DayEnd(q.EndTime))
	}, exportLimit)
}

// NewLoginLogService 创建登录日志服务
func NewLoginLogService(repo *mysql.Repository[audit.LoginLog], exportLimit int) *LoginLogService {
	return newLogService(repo, "登录日志", "audit_login_log", "login_at", func(q *audit.LoginLogQuery) *query.Predicate {
		return query.Where().
			Contains("username", q.Username).
			Contains("client_ip", q.ClientIP).
			Eq("success", q.Success).
			Between("login_at", q.StartTime, query.DayEnd(q.EndTime))
	}, exportLimit)
}
