package core

import (
	"net/http"

	"backoffice/internal/handler"
	"backoffice/internal/model/core"
	"backoffice/internal/pkg/excel"
	coresvc "backoffice/internal/service/core"

	"github.com/gin-gonic/gin"
)

var translateSheet = excel.Sheet[core.Translate]{
	Name: "多语言翻译",
	Columns: []excel.Column[core.Translate]{
		{Header: "ID", Value: func(e *core.Translate) interface{} { return e.ID }},
		{Header: "翻译键", Width: 30, Value: func(e *core.Translate) interface{} { return e.TranslateKey }},
		{Header: "语言编码", Value: func(e *core.Translate) interface{} { return e.LanguageCode }},
		{Header: "翻译内容", Width: 40, Value: func(e *core.Translate) interface{} { return e.TranslateValue }},
		{Header: "所属模块", Value: func(e *core.Translate) interface{} { return e.Module }},
		{Header: "状态", Value: func(e *core.Translate) interface{} { return excel.FormatStatus(e.IsEnabled) }},
		{Header: "备注", Width: 30, Value: func(e *core.Translate) interface{} { return e.Remark }},
	},
}

var translateImportSheet = excel.Sheet[core.TranslateCreateRequest]{
	Name: "多语言翻译",
	Columns: []excel.Column[core.TranslateCreateRequest]{
		{Header: "翻译键", Width: 30, Parse: func(r *core.TranslateCreateRequest, s string) error { r.TranslateKey = s; return nil }},
		{Header: "语言编码", Parse: func(r *core.TranslateCreateRequest, s string) error { r.LanguageCode = s; return nil }},
		{Header: "翻译内容", Width: 40, Parse: func(r *core.TranslateCreateRequest, s string) error { r.TranslateValue = s; return nil }},
		{Header: "所属模块", Parse: func(r *core.TranslateCreateRequest, s string) error { r.Module = s; return nil }},
		{Header: "备注", Width: 30, Parse: func(r *core.TranslateCreateRequest, s string) error { r.Remark = s; return nil }},
	},
}

// TranslateHandler 多语言翻译处理器
type TranslateHandler struct {
	*handler.CRUDHandler[core.Translate, core.TranslateQuery, core.TranslateCreateRequest, core.TranslateUpdateRequest]
	service *coresvc.TranslateService
}

// NewTranslateHandler 创建翻译处理器
func NewTranslateHandler(service *coresvc.TranslateService, maxUploadSize int64) *TranslateHandler {
	return &TranslateHandler{
		CRUDHandler: handler.NewCRUDHandler[core.Translate, core.TranslateQuery, core.TranslateCreateRequest, core.TranslateUpdateRequest](
			service, translateSheet, translateImportSheet, maxUploadSize),
		service: service,
	}
}

// Transpose 按翻译键聚合各语言内容
func (h *TranslateHandler) Transpose(c *gin.Context) {
	var q core.TranslateQuery
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
