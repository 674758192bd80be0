/**
 * 模型:响应模型
 * @date: 2026.03.02
 * @description: API统一响应信封与通用响应结构
 * @func: APIResponse、ImportResult、IDResponse
 */
package model

import (
	"fmt"

	"backoffice/internal/model/system"
)

// APIResponse 通用API响应结构
// success 与 status 同时给出，前端按任一字段判断即可
type APIResponse struct {
	Code    int                      `json:"code,omitempty"`   // 响应状态码
	Success bool                     `json:"success"`          // 是否成功
	Status  string                   `json:"status"`           // 响应状态："success" 或 "error"
	Message string                   `json:"message"`          // 响应消息
	Data    interface{}              `json:"data,omitempty"`   // 响应数据，可选
	Error   string                   `json:"error,omitempty"`  // 错误信息，可选
	Errors  []system.ValidationError `json:"errors,omitempty"` // 验证错误列表，可选
}

// IDResponse 创建成功后返回新记录ID
type IDResponse struct {
	ID uint64 `json:"id"`
}

// ImportResult 批量导入结果
// 不变式：Success + Fail <= Total，Errors 与失败行一一对应且保持处理顺序
type ImportResult struct {
	Total   int      `json:"total"`   // 总行数
	Success int      `json:"success"` // 成功行数
	Fail    int      `json:"fail"`    // 失败行数
	Errors  []string `json:"errors"`  // 失败原因，形如 "第2行: xxx"
}

// NewImportResult 创建导入结果
func NewImportResult(total int) *ImportResult {
	return &ImportResult{Total: total, Errors: make([]string, 0)}
}

// AddSuccess 记录一行成功
func (r *ImportResult) AddSuccess() {
	r.Success++
}

// AddFailure 记录一行失败，row 为 1 起始的数据行号
func (r *ImportResult) AddFailure(row int, err error) {
	r.Fail++
	r.Errors = append(r.Errors, fmt.Sprintf("第%d行: %v", row, err))
}
