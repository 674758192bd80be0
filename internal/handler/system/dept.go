package system

import (
	"net/http"

	"backoffice/internal/handler"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/excel"
	systemsvc "backoffice/internal/service/system"

	"github.com/gin-gonic/gin"
)

var deptSheet = excel.Sheet[system.Dept]{
	Name: "部门",
	Columns: []excel.Column[system.Dept]{
		{Header: "ID", Value: func(e *system.Dept) interface{} { return e.ID }},
		{Header: "上级部门ID", Value: func(e *system.Dept) interface{} { return e.ParentID }},
		{Header: "部门名称", Width: 20, Value: func(e *system.Dept) interface{} { return e.DeptName }},
		{Header: "部门编码", Width: 16, Value: func(e *system.Dept) interface{} { return e.DeptCode }},
		{Header: "负责人", Value: func(e *system.Dept) interface{} { return e.Leader }},
		{Header: "联系电话", Width: 14, Value: func(e *system.Dept) interface{} { return e.Phone }},
		{Header: "排序", Value: func(e *system.Dept) interface{} { return e.Sort }},
		{Header: "状态", Value: func(e *system.Dept) interface{} { return excel.FormatStatus(e.IsEnabled) }},
	},
}

var deptImportSheet = excel.Sheet[system.DeptCreateRequest]{
	Name: "部门",
	Columns: []excel.Column[system.DeptCreateRequest]{
		{Header: "上级部门ID", Parse: func(r *system.DeptCreateRequest, s string) (err error) { r.ParentID, err = excel.ParseUint(s); return }},
		{Header: "部门名称", Width: 20, Parse: func(r *system.DeptCreateRequest, s string) error { r.DeptName = s; return nil }},
		{Header: "部门编码", Width: 16, Parse: func(r *system.DeptCreateRequest, s string) error { r.DeptCode = s; return nil }},
		{Header: "负责人", Parse: func(r *system.DeptCreateRequest, s string) error { r.Leader = s; return nil }},
		{Header: "联系电话", Width: 14, Parse: func(r *system.DeptCreateRequest, s string) error { r.Phone = s; return nil }},
		{Header: "排序", Parse: func(r *system.DeptCreateRequest, s string) (err error) { r.Sort, err = excel.ParseInt(s); return }},
	},
}

// DeptHandler 部门处理器
type DeptHandler struct {
	*handler.CRUDHandler[system.Dept, system.DeptQuery, system.DeptCreateRequest, system.DeptUpdateRequest]
	service *systemsvc.DeptService
}

// NewDeptHandler 创建部门处理器
func NewDeptHandler(service *systemsvc.DeptService, maxUploadSize int64) *DeptHandler {
	return &DeptHandler{
		CRUDHandler: handler.NewCRUDHandler[system.Dept, system.DeptQuery, system.DeptCreateRequest, system.DeptUpdateRequest](
			service, deptSheet, deptImportSheet, maxUploadSize),
		service: service,
	}
}

// Tree 部门树
func (h *DeptHandler) Tree(c *gin.Context) {
	var q system.DeptQuery
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
