package core

import (
	"net/http"

	"backoffice/internal/handler"
	"backoffice/internal/model/core"
	"backoffice/internal/pkg/excel"
	coresvc "backoffice/internal/service/core"

	"github.com/gin-gonic/gin"
)

var dictTypeSheet = excel.Sheet[core.DictType]{
	Name: "字典类型",
	Columns: []excel.Column[core.DictType]{
		{Header: "ID", Value: func(e *core.DictType) interface{} { return e.ID }},
		{Header: "字典名称", Width: 20, Value: func(e *core.DictType) interface{} { return e.DictName }},
		{Header: "字典编码", Width: 24, Value: func(e *core.DictType) interface{} { return e.DictCode }},
		{Header: "状态", Value: func(e *core.DictType) interface{} { return excel.FormatStatus(e.IsEnabled) }},
		{Header: "备注", Width: 30, Value: func(e *core.DictType) interface{} { return e.Remark }},
		{Header: "创建时间", Width: 20, Value: func(e *core.DictType) interface{} { return excel.FormatTime(e.CreatedAt) }},
	},
}

var dictTypeImportSheet = excel.Sheet[core.DictTypeCreateRequest]{
	Name: "字典类型",
	Columns: []excel.Column[core.DictTypeCreateRequest]{
		{Header: "字典名称", Width: 20, Parse: func(r *core.DictTypeCreateRequest, s string) error { r.DictName = s; return nil }},
		{Header: "字典编码", Width: 24, Parse: func(r *core.DictTypeCreateRequest, s string) error { r.DictCode = s; return nil }},
		{Header: "备注", Width: 30, Parse: func(r *core.DictTypeCreateRequest, s string) error { r.Remark = s; return nil }},
	},
}

var dictDataSheet = excel.Sheet[core.DictData]{
	Name: "字典数据",
	Columns: []excel.Column[core.DictData]{
		{Header: "ID", Value: func(e *core.DictData) interface{} { return e.ID }},
		{Header: "字典编码", Width: 20, Value: func(e *core.DictData) interface{} { return e.DictCode }},
		{Header: "字典标签", Width: 20, Value: func(e *core.DictData) interface{} { return e.DictLabel }},
		{Header: "字典键值", Width: 16, Value: func(e *core.DictData) interface{} { return e.DictValue }},
		{Header: "语言编码", Value: func(e *core.DictData) interface{} { return e.LanguageCode }},
		{Header: "排序", Value: func(e *core.DictData) interface{} { return e.Sort }},
		{Header: "样式属性", Value: func(e *core.DictData) interface{} { return e.CssClass }},
		{Header: "默认值", Value: func(e *core.DictData) interface{} { return excel.FormatBool(e.IsDefault) }},
		{Header: "状态", Value: func(e *core.DictData) interface{} { return excel.FormatStatus(e.IsEnabled) }},
		{Header: "备注", Width: 30, Value: func(e *core.DictData) interface{} { return e.Remark }},
	},
}

var dictDataImportSheet = excel.Sheet[core.DictDataCreateRequest]{
	Name: "字典数据",
	Columns: []excel.Column[core.DictDataCreateRequest]{
		{Header: "字典编码", Width: 20, Parse: func(r *core.DictDataCreateRequest, s string) error { r.DictCode = s; return nil }},
		{Header: "字典标签", Width: 20, Parse: func(r *core.DictDataCreateRequest, s string) error { r.DictLabel = s; return nil }},
		{Header: "字典键值", Width: 16, Parse: func(r *core.DictDataCreateRequest, s string) error { r.DictValue = s; return nil }},
		{Header: "语言编码", Parse: func(r *core.DictDataCreateRequest, s string) error { r.LanguageCode = s; return nil }},
		{Header: "排序", Parse: func(r *core.DictDataCreateRequest, s string) (err error) { r.Sort, err = excel.ParseInt(s); return }},
		{Header: "样式属性", Parse: func(r *core.DictDataCreateRequest, s string) error { r.CssClass = s; return nil }},
		{Header: "默认值", Parse: func(r *core.DictDataCreateRequest, s string) (err error) { r.IsDefault, err = excel.ParseBool(s); return }},
		{Header: "备注", Width: 30, Parse: func(r *core.DictDataCreateRequest, s string) error { r.Remark = s; return nil }},
	},
}

// DictTypeHandler 字典类型处理器
type DictTypeHandler struct {
	*handler.CRUDHandler[core.DictType, core.DictTypeQuery, core.DictTypeCreateRequest, core.DictTypeUpdateRequest]
}

// NewDictTypeHandler 创建字典类型处理器
func NewDictTypeHandler(service *coresvc.DictTypeService, maxUploadSize int64) *DictTypeHandler {
	return &DictTypeHandler{
		CRUDHandler: handler.NewCRUDHandler[core.DictType, core.DictTypeQuery, core.DictTypeCreateRequest, core.DictTypeUpdateRequest](
			service, dictTypeSheet, dictTypeImportSheet, maxUploadSize),
	}
}

// DictDataHandler 字典数据处理器
type DictDataHandler struct {
	*handler.CRUDHandler[core.DictData, core.DictDataQuery, core.DictDataCreateRequest, core.DictDataUpdateRequest]
	service *coresvc.DictDataService
}

// NewDictDataHandler 创建字典数据处理器
func NewDictDataHandler(service *coresvc.DictDataService, maxUploadSize int64) *DictDataHandler {
	return &DictDataHandler{
		CRUDHandler: handler.NewCRUDHandler[core.DictData, core.DictDataQuery, core.DictDataCreateRequest, core.DictDataUpdateRequest](
			service, dictDataSheet, dictDataImportSheet, maxUploadSize),
		service: service,
	}
}

// ListByCode 按字典编码取启用的字典项，可选 language_code
func (h *DictDataHandler) ListByCode(c *gin.Context) {
	items, err := h.service.ListByCode(c.Request.Context(), c.Param("code"), c.Query("language_code"))
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "查询成功", items)
}

// Transpose 把多语言字典数据转置为 值 -> {语言: 标签}
func (h *DictDataHandler) Transpose(c *gin.Context) {
	var q core.DictDataQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	items, err := h.service.Transpose(c.Request.Context(), &q)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "查询成功", items)
}
