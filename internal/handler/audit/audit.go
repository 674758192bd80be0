/**
 * 处理器:日志审计
 * @date: 2026.03.17
 * @description: 操作日志、错误日志、登录日志的查询、导出、删除与清理，日志不提供新增和修改接口
 */
package audit

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"backoffice/internal/handler"
	"backoffice/internal/model/audit"
	"backoffice/internal/pkg/excel"
	"backoffice/internal/pkg/query"
	auditsvc "backoffice/internal/service/audit"

	"github.com/gin-gonic/gin"
)

// LogService 日志服务需要提供的能力
type LogService[E, Q any] interface {
	Entity() string
	List(ctx context.Context, q *Q, page query.PageRequest) (*query.PageResult[E], error)
	Get(ctx context.Context, id uint64) (*E, error)
	Export(ctx context.Context, q *Q, page query.PageRequest) ([]E, error)
	Delete(ctx context.Context, id uint64) error
	Clean(ctx context.Context, before time.Time) (int64, error)
}

// LogHandler 日志通用处理器
type LogHandler[E, Q any] struct {
	service LogService[E, Q]
	sheet   excel.Sheet[E]
}

// List 分页列表
func (h *LogHandler[E, Q]) List(c *gin.Context) {
	var q Q
	var page query.PageRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		handler.BindError(c, err)
		return
	}
	result, err := h.service.List(c.Request.Context(), &q, page)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "查询成功", result)
}

// Get 详情
func (h *LogHandler[E, Q]) Get(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	entry, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "查询成功", entry)
}

// Delete 删除单条
func (h *LogHandler[E, Q]) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, h.service.Entity()+"删除成功", nil)
}

// Clean 清理指定时间之前的日志
func (h *LogHandler[E, Q]) Clean(c *gin.Context) {
	var req audit.CleanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	n, err := h.service.Clean(c.Request.Context(), req.Before)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, fmt.Sprintf("已清理%d条%s", n, h.service.Entity()), gin.H{"deleted": n})
}

// Export 导出 xlsx
func (h *LogHandler[E, Q]) Export(c *gin.Context) {
	var q Q
	var page query.PageRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		handler.BindError(c, err)
		return
	}
	items, err := h.service.Export(c.Request.Context(), &q, page)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := h.sheet.Write(&buf, items); err != nil {
		handler.Fail(c, fmt.Errorf("write excel: %w", err))
		return
	}
	handler.SendExcel(c, h.sheet.Name+"_"+time.Now().Format("20060102150405")+".xlsx", buf.Bytes())
}

func result(ok bool) string {
	if ok {
		return "成功"
	}
	return "失败"
}

var auditLogSheet = excel.Sheet[audit.AuditLog]{
	Name: "操作日志",
	Columns: []excel.Column[audit.AuditLog]{
		{Header: "ID", Value: func(e *audit.AuditLog) interface{} { return e.ID }},
		{Header: "用户名", Width: 14, Value: func(e *audit.AuditLog) interface{} { return e.Username }},
		{Header: "模块", Value: func(e *audit.AuditLog) interface{} { return e.Module }},
		{Header: "操作", Width: 20, Value: func(e *audit.AuditLog) interface{} { return e.Operation }},
		{Header: "请求方法", Value: func(e *audit.AuditLog) interface{} { return e.Method }},
		{Header: "请求路径", Width: 36, Value: func(e *audit.AuditLog) interface{} { return e.Path }},
		{Header: "客户端IP", Width: 16, Value: func(e *audit.AuditLog) interface{} { return e.ClientIP }},
		{Header: "状态码", Value: func(e *audit.AuditLog) interface{} { return e.StatusCode }},
		{Header: "耗时(ms)", Value: func(e *audit.AuditLog) interface{} { return e.DurationMs }},
		{Header: "结果", Value: func(e *audit.AuditLog) interface{} { return result(e.Success) }},
		{Header: "请求ID", Width: 36, Value: func(e *audit.AuditLog) interface{} { return e.RequestID }},
		{Header: "记录时间", Width: 20, Value: func(e *audit.AuditLog) interface{} { return excel.FormatTime(e.CreatedAt) }},
	},
}

var errorLogSheet = excel.Sheet[audit.ErrorLog]{
	Name: "错误日志",
	Columns: []excel.Column[audit.ErrorLog]{
		{Header: "ID", Value: func(e *audit.ErrorLog) interface{} { return e.ID }},
		{Header: "请求ID", Width: 36, Value: func(e *audit.ErrorLog) interface{} { return e.RequestID }},
		{Header: "用户名", Width: 14, Value: func(e *audit.ErrorLog) interface{} { return e.Username }},
		{Header: "请求方法", Value: func(e *audit.ErrorLog) interface{} { return e.Method }},
		{Header: "请求路径", Width: 36, Value: func(e *audit.ErrorLog) interface{} { return e.Path }},
		{Header: "客户端IP", Width: 16, Value: func(e *audit.ErrorLog) interface{} { return e.ClientIP }},
		{Header: "错误信息", Width: 50, Value: func(e *audit.ErrorLog) interface{} { return e.Message }},
		{Header: "记录时间", Width: 20, Value: func(e *audit.ErrorLog) interface{} { return excel.FormatTime(e.CreatedAt) }},
	},
}

var loginLogSheet = excel.Sheet[audit.LoginLog]{
	Name: "登录日志",
	Columns: []excel.Column[audit.LoginLog]{
		{Header: "ID", Value: func(e *audit.LoginLog) interface{} { return e.ID }},
		{Header: "用户名", Width: 14, Value: func(e *audit.LoginLog) interface{} { return e.Username }},
		{Header: "客户端IP", Width: 16, Value: func(e *audit.LoginLog) interface{} { return e.ClientIP }},
		{Header: "客户端标识", Width: 40, Value: func(e *audit.LoginLog) interface{} { return e.UserAgent }},
		{Header: "结果", Value: func(e *audit.LoginLog) interface{} { return result(e.Success) }},
		{Header: "提示信息", Width: 24, Value: func(e *audit.LoginLog) interface{} { return e.Message }},
		{Header: "登录时间", Width: 20, Value: func(e *audit.LoginLog) interface{} { return excel.FormatTime(e.LoginAt) }},
	},
}

// AuditLogHandler 操作日志处理器
type AuditLogHandler = LogHandler[audit.AuditLog, audit.AuditLogQuery]

// ErrorLogHandler 错误日志处理器
type ErrorLogHandler = LogHandler[audit.ErrorLog, audit.ErrorLogQuery]

// LoginLogHandler 登录日志处理器
type LoginLogHandler = LogHandler[audit.LoginLog, audit.LoginLogQuery]

// NewAuditLogHandler 创建操作日志处理器
func NewAuditLogHandler(service *auditsvc.AuditLogService) *AuditLogHandler {
	return &AuditLogHandler{service: service, sheet: auditLogSheet}
}

// NewErrorLogHandler 创建错误日志处理器
func NewErrorLogHandler(service *auditsvc.ErrorLogService) *ErrorLogHandler {
	return &ErrorLogHandler{service: service, sheet: errorLogSheet}
}

// NewLoginLogHandler 创建登录日志处理器
func NewLoginLogHandler(service *auditsvc.LoginLogService) *LoginLogHandler {
	return &LoginLogHandler{service: service, sheet: loginLogSheet}
}
