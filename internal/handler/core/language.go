package core

import (
	"net/http"

	"backoffice/internal/handler"
	"backoffice/internal/model/core"
	"backoffice/internal/pkg/excel"
	coresvc "backoffice/internal/service/core"

	"github.com/gin-gonic/gin"
)

var languageSheet = excel.Sheet[core.Language]{
	Name: "语言",
	Columns: []excel.Column[core.Language]{
		{Header: "ID", Value: func(e *core.Language) interface{} { return e.ID }},
		{Header: "语言名称", Width: 16, Value: func(e *core.Language) interface{} { return e.LanguageName }},
		{Header: "语言编码", Width: 12, Value: func(e *core.Language) interface{} { return e.LanguageCode }},
		{Header: "默认", Value: func(e *core.Language) interface{} { return excel.FormatBool(e.IsDefault) }},
		{Header: "排序", Value: func(e *core.Language) interface{} { return e.Sort }},
		{Header: "状态", Value: func(e *core.Language) interface{} { return excel.FormatStatus(e.IsEnabled) }},
		{Header: "备注", Width: 30, Value: func(e *core.Language) interface{} { return e.Remark }},
	},
}

var languageImportSheet = excel.Sheet[core.LanguageCreateRequest]{
	Name: "语言",
	Columns: []excel.Column[core.LanguageCreateRequest]{
		{Header: "语言名称", Width: 16, Parse: func(r *core.LanguageCreateRequest, s string) error { r.LanguageName = s; return nil }},
		{Header: "语言编码", Width: 12, Parse: func(r *core.LanguageCreateRequest, s string) error { r.LanguageCode = s; return nil }},
		{Header: "排序", Parse: func(r *core.LanguageCreateRequest, s string) (err error) { r.Sort, err = excel.ParseInt(s); return }},
		{Header: "备注", Width: 30, Parse: func(r *core.LanguageCreateRequest, s string) error { r.Remark = s; return nil }},
	},
}

// LanguageHandler 语言处理器
type LanguageHandler struct {
	*handler.CRUDHandler[core.Language, core.LanguageQuery, core.LanguageCreateRequest, core.LanguageUpdateRequest]
	service *coresvc.LanguageService
}

// NewLanguageHandler 创建语言处理器
func NewLanguageHandler(service *coresvc.LanguageService, maxUploadSize int64) *LanguageHandler {
	return &LanguageHandler{
		CRUDHandler: handler.NewCRUDHandler[core.Language, core.LanguageQuery, core.LanguageCreateRequest, core.LanguageUpdateRequest](
			service, languageSheet, languageImportSheet, maxUploadSize),
		service: service,
	}
}

// GetDefault 当前默认语言
func (h *LanguageHandler) GetDefault(c *gin.Context) {
	lang, err := h.service.GetDefault(c.Request.Context())
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "查询成功", lang)
}

// SetDefault 设为默认语言，其余语言自动取消默认
func (h *LanguageHandler) SetDefault(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.SetDefault(c.Request.Context(), id); err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "默认语言设置成功", nil)
}
