/**
 * 模型:审计日志
 * @date: 2026.03.06
 * @description: 操作日志、错误日志、登录日志，只追加，按条件物理清理
 */
package audit

import (
	"time"

	"backoffice/internal/model/basemodel"
)

// AuditLog 操作审计日志，由审计中间件记录写操作
type AuditLog struct {
	basemodel.LogModel
	UserID     uint64 `json:"user_id" gorm:"index;comment:操作用户ID"`
	Username   string `json:"username" gorm:"size:64;index;comment:操作用户名"`
	Module     string `json:"module" gorm:"size:50;index;comment:模块"`
	Operation  string `json:"operation" gorm:"size:100;comment:操作"`
	Method     string `json:"method" gorm:"size:10;comment:请求方法"`
	Path       string `json:"path" gorm:"size:255;comment:请求路径"`
	ClientIP   string `json:"client_ip" gorm:"size:64;comment:客户端IP"`
	UserAgent  string `json:"user_agent" gorm:"size:500;comment:客户端标识"`
	RequestID  string `json:"request_id" gorm:"size:64;index;comment:请求ID"`
	Params     string `json:"params" gorm:"type:text;comment:请求参数(截断)"`
	StatusCode int    `json:"status_code" gorm:"comment:响应状态码"`
	DurationMs int64  `json:"duration_ms" gorm:"comment:耗时(毫秒)"`
	Success    bool   `json:"success" gorm:"index;comment:是否成功"`
}

// TableName 表名
func (AuditLog) TableName() string {
	return "sys_audit_log"
}

// ErrorLog 错误日志，由恢复中间件和 5xx 响应记录
type ErrorLog struct {
	basemodel.LogModel
	RequestID string `json:"request_id" gorm:"size:64;index;comment:请求ID"`
	UserID    uint64 `json:"user_id" gorm:"index;comment:用户ID"`
	Username  string `json:"username" gorm:"size:64;comment:用户名"`
	Method    string `json:"method" gorm:"size:10;comment:请求方法"`
	Path      string `json:"path" gorm:"size:255;comment:请求路径"`
	ClientIP  string `json:"client_ip" gorm:"size:64;comment:客户端IP"`
	Message   string `json:"message" gorm:"size:1000;comment:错误信息"`
	Stack     string `json:"stack" gorm:"type:text;comment:堆栈"`
}

// TableName 表名
func (ErrorLog) TableName() string {
	return "sys_error_log"
}

// LoginLog 登录日志
type LoginLog struct {
	basemodel.LogModel
	Username  string    `json:"username" gorm:"size:64;index;comment:登录用户名"`
	ClientIP  string    `json:"client_ip" gorm:"size:64;comment:客户端IP"`
	UserAgent string    `json:"user_agent" gorm:"size:500;comment:客户端标识"`
	Success   bool      `json:"success" gorm:"index;comment:是否成功"`
	Message   string    `json:"message" gorm:"size:255;comment:提示信息"`
	LoginAt   time.Time `json:"login_at" gorm:"index;comment:登录时间"`
}

// TableName 表名
func (LoginLog) TableName() string {
	return "sys_login_log"
}

// AuditLogQuery 操作日志查询条件
type AuditLogQuery struct {
	Username  string    `form:"username"`
	Module    string    `form:"module"`
	Operation string    `form:"operation"`
	Method    string    `form:"method"`
	Success   *bool     `form:"success"`
	StartTime time.Time `form:"start_time" time_format:"2006-01-02"`
	EndTime   time.Time `form:"end_time" time_format:"2006-01-02"`
}

// ErrorLogQuery 错误日志查询条件
type ErrorLogQuery struct {
	RequestID string    `form:"request_id"`
	Path      string    `form:"path"`
	Message   string    `form:"message"`
	StartTime time.Time `form:"start_time" time_format:"2006-01-02"`
	EndTime   time.Time `form:"end_time" time_format:"2006-01-02"`
}

// LoginLogQuery 登录日志查询条件
type LoginLogQuery struct {
	Username  string    `form:"username"`
	ClientIP  string    `form:"client_ip"`
	Success   *bool     `form:"success"`
	StartTime time.Time `form:"start_time" time_format:"2006-01-02"`
	EndTime   time.Time `form:"end_time" time_format:"2006-01-02"`
}

// CleanRequest 清理日志请求，删除 Before 之前的记录
type CleanRequest struct {
	Before time.Time `json:"before" binding:"required"`
}
