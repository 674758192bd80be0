/**
 * 处理器:系统管理
 * @date: 2026.03.16
 * @description: 租户、部门、菜单、角色、用户的接口处理
 * @func:
 *	1.各实体通用增删改查、导入导出
 *	2.部门/菜单树，角色授权菜单，用户分配角色与重置密码
 */
package system

import (
	"backoffice/internal/handler"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/excel"
	systemsvc "backoffice/internal/service/system"
)

var tenantSheet = excel.Sheet[system.Tenant]{
	Name: "租户",
	Columns: []excel.Column[system.Tenant]{
		{Header: "ID", Value: func(e *system.Tenant) interface{} { return e.ID }},
		{Header: "租户名称", Width: 20, Value: func(e *system.Tenant) interface{} { return e.TenantName }},
		{Header: "租户编码", Width: 16, Value: func(e *system.Tenant) interface{} { return e.TenantCode }},
		{Header: "联系人", Value: func(e *system.Tenant) interface{} { return e.Contact }},
		{Header: "联系电话", Width: 14, Value: func(e *system.Tenant) interface{} { return e.Phone }},
		{Header: "到期时间", Width: 12, Value: func(e *system.Tenant) interface{} { return excel.FormatDate(e.ExpireAt) }},
		{Header: "状态", Value: func(e *system.Tenant) interface{} { return excel.FormatStatus(e.IsEnabled) }},
		{Header: "备注", Width: 30, Value: func(e *system.Tenant) interface{} { return e.Remark }},
	},
}

var tenantImportSheet = excel.Sheet[system.TenantCreateRequest]{
	Name: "租户",
	Columns: []excel.Column[system.TenantCreateRequest]{
		{Header: "租户名称", Width: 20, Parse: func(r *system.TenantCreateRequest, s string) error { r.TenantName = s; return nil }},
		{Header: "租户编码", Width: 16, Parse: func(r *system.TenantCreateRequest, s string) error { r.TenantCode = s; return nil }},
		{Header: "联系人", Parse: func(r *system.TenantCreateRequest, s string) error { r.Contact = s; return nil }},
		{Header: "联系电话", Width: 14, Parse: func(r *system.TenantCreateRequest, s string) error { r.Phone = s; return nil }},
		{Header: "到期时间", Width: 12, Parse: func(r *system.TenantCreateRequest, s string) (err error) { r.ExpireAt, err = excel.ParseDate(s); return }},
		{Header: "备注", Width: 30, Parse: func(r *system.TenantCreateRequest, s string) error { r.Remark = s; return nil }},
	},
}

// TenantHandler 租户处理器
type TenantHandler struct {
	*handler.CRUDHandler[system.Tenant, system.TenantQuery, system.TenantCreateRequest, system.TenantUpdateRequest]
}

// NewTenantHandler 创建租户处理器
func NewTenantHandler(service *systemsvc.TenantService, maxUploadSize int64) *TenantHandler {
	return &TenantHandler{
		CRUDHandler: handler.NewCRUDHandler[system.Tenant, system.TenantQuery, system.TenantCreateRequest, system.TenantUpdateRequest](
			service, tenantSheet, tenantImportSheet, maxUploadSize),
	}
}
