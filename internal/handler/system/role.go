package system

import (
	"net/http"

	"backoffice/internal/handler"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/excel"
	systemsvc "backoffice/internal/service/system"

	"github.com/gin-gonic/gin"
)

var roleSheet = excel.Sheet[system.Role]{
	Name: "角色",
	Columns: []excel.Column[system.Role]{
		{Header: "ID", Value: func(e *system.Role) interface{} { return e.ID }},
		{Header: "角色名称", Width: 20, Value: func(e *system.Role) interface{} { return e.RoleName }},
		{Header: "角色编码", Width: 16, Value: func(e *system.Role) interface{} { return e.RoleCode }},
		{Header: "排序", Value: func(e *system.Role) interface{} { return e.Sort }},
		{Header: "状态", Value: func(e *system.Role) interface{} { return excel.FormatStatus(e.IsEnabled) }},
		{Header: "备注", Width: 30, Value: func(e *system.Role) interface{} { return e.Remark }},
	},
}

var roleImportSheet = excel.Sheet[system.RoleCreateRequest]{
	Name: "角色",
	Columns: []excel.Column[system.RoleCreateRequest]{
		{Header: "角色名称", Width: 20, Parse: func(r *system.RoleCreateRequest, s string) error { r.RoleName = s; return nil }},
		{Header: "角色编码", Width: 16, Parse: func(r *system.RoleCreateRequest, s string) error { r.RoleCode = s; return nil }},
		{Header: "排序", Parse: func(r *system.RoleCreateRequest, s string) (err error) { r.Sort, err = excel.ParseInt(s); return }},
		{Header: "备注", Width: 30, Parse: func(r *system.RoleCreateRequest, s string) error { r.Remark = s; return nil }},
	},
}

// RoleHandler 角色处理器
type RoleHandler struct {
	*handler.CRUDHandler[system.Role, system.RoleQuery, system.RoleCreateRequest, system.RoleUpdateRequest]
	service *systemsvc.RoleService
}

// NewRoleHandler 创建角色处理器
func NewRoleHandler(service *systemsvc.RoleService, maxUploadSize int64) *RoleHandler {
	return &RoleHandler{
		CRUDHandler: handler.NewCRUDHandler[system.Role, system.RoleQuery, system.RoleCreateRequest, system.RoleUpdateRequest](
			service, roleSheet, roleImportSheet, maxUploadSize),
		service: service,
	}
}

// MenuIDs 角色已授权的菜单ID
func (h *RoleHandler) MenuIDs(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	ids, err := h.service.MenuIDs(c.Request.Context(), id)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "查询成功", gin.H{"menu_ids": ids})
}

// AssignMenus 覆盖式授权菜单，空列表表示清空
// 已登录用户的权限在下次登录时生效
func (h *RoleHandler) AssignMenus(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	var req system.AssignMenusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	if err := h.service.AssignMenus(c.Request.Context(), id, req.MenuIDs); err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "菜单授权成功", nil)
}
