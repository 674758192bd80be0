package system

import (
	"net/http"

	"backoffice/internal/handler"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/excel"
	systemsvc "backoffice/internal/service/system"

	"github.com/gin-gonic/gin"
)

var menuSheet = excel.Sheet[system.Menu]{
	Name: "菜单",
	Columns: []excel.Column[system.Menu]{
		{Header: "ID", Value: func(e *system.Menu) interface{} { return e.ID }},
		{Header: "上级菜单ID", Value: func(e *system.Menu) interface{} { return e.ParentID }},
		{Header: "菜单名称", Width: 20, Value: func(e *system.Menu) interface{} { return e.MenuName }},
		{Header: "菜单类型", Value: func(e *system.Menu) interface{} { return string(e.MenuType) }},
		{Header: "路由地址", Width: 24, Value: func(e *system.Menu) interface{} { return e.Path }},
		{Header: "前端组件", Width: 24, Value: func(e *system.Menu) interface{} { return e.Component }},
		{Header: "图标", Value: func(e *system.Menu) interface{} { return e.Icon }},
		{Header: "权限编码", Width: 24, Value: func(e *system.Menu) interface{} { return e.Permission }},
		{Header: "排序", Value: func(e *system.Menu) interface{} { return e.Sort }},
		{Header: "状态", Value: func(e *system.Menu) interface{} { return excel.FormatStatus(e.IsEnabled) }},
	},
}

var menuImportSheet = excel.Sheet[system.MenuCreateRequest]{
	Name: "菜单",
	Columns: []excel.Column[system.MenuCreateRequest]{
		{Header: "上级菜单ID", Parse: func(r *system.MenuCreateRequest, s string) (err error) { r.ParentID, err = excel.ParseUint(s); return }},
		{Header: "菜单名称", Width: 20, Parse: func(r *system.MenuCreateRequest, s string) error { r.MenuName = s; return nil }},
		{Header: "菜单类型", Parse: func(r *system.MenuCreateRequest, s string) error { r.MenuType = system.MenuType(s); return nil }},
		{Header: "路由地址", Width: 24, Parse: func(r *system.MenuCreateRequest, s string) error { r.Path = s; return nil }},
		{Header: "前端组件", Width: 24, Parse: func(r *system.MenuCreateRequest, s string) error { r.Component = s; return nil }},
		{Header: "图标", Parse: func(r *system.MenuCreateRequest, s string) error { r.Icon = s; return nil }},
		{Header: "权限编码", Width: 24, Parse: func(r *system.MenuCreateRequest, s string) error { r.Permission = s; return nil }},
		{Header: "排序", Parse: func(r *system.MenuCreateRequest, s string) (err error) { r.Sort, err = excel.ParseInt(s); return }},
	},
}

// MenuHandler 菜单处理器
type MenuHandler struct {
	*handler.CRUDHandler[system.Menu, system.MenuQuery, system.MenuCreateRequest, system.MenuUpdateRequest]
	service *systemsvc.MenuService
}

// NewMenuHandler 创建菜单处理器
func NewMenuHandler(service *systemsvc.MenuService, maxUploadSize int64) *MenuHandler {
	return &MenuHandler{
		CRUDHandler: handler.NewCRUDHandler[system.Menu, system.MenuQuery, system.MenuCreateRequest, system.MenuUpdateRequest](
			service, menuSheet, menuImportSheet, maxUploadSize),
		service: service,
	}
}

// Tree 菜单树
func (h *MenuHandler) Tree(c *gin.Context) {
	var q system.MenuQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	nodes, err := h.service.Tree(c.Request.Context(), &q)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "查询成功", nodes)
}
