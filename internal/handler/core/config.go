/**
 * 处理器:参数配置
 * @date: 2026.03.16
 * @description: 参数配置的增删改查、导入导出与按键取值
 */
package core

import (
	"net/http"
	"strings"

	"backoffice/internal/handler"
	"backoffice/internal/model/core"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/excel"
	coresvc "backoffice/internal/service/core"

	"github.com/gin-gonic/gin"
)

var configSheet = excel.Sheet[core.Config]{
	Name: "参数配置",
	Columns: []excel.Column[core.Config]{
		{Header: "ID", Value: func(e *core.Config) interface{} { return e.ID }},
		{Header: "参数名称", Width: 20, Value: func(e *core.Config) interface{} { return e.ConfigName }},
		{Header: "参数键名", Width: 24, Value: func(e *core.Config) interface{} { return e.ConfigKey }},
		{Header: "参数键值", Width: 30, Value: func(e *core.Config) interface{} { return e.ConfigValue }},
		{Header: "参数类型", Value: func(e *core.Config) interface{} { return string(e.ConfigType) }},
		{Header: "状态", Value: func(e *core.Config) interface{} { return excel.FormatStatus(e.IsEnabled) }},
		{Header: "备注", Width: 30, Value: func(e *core.Config) interface{} { return e.Remark }},
		{Header: "创建时间", Width: 20, Value: func(e *core.Config) interface{} { return excel.FormatTime(e.CreatedAt) }},
	},
}

var configImportSheet = excel.Sheet[core.ConfigCreateRequest]{
	Name: "参数配置",
	Columns: []excel.Column[core.ConfigCreateRequest]{
		{Header: "参数名称", Width: 20, Parse: func(r *core.ConfigCreateRequest, s string) error { r.ConfigName = s; return nil }},
		{Header: "参数键名", Width: 24, Parse: func(r *core.ConfigCreateRequest, s string) error { r.ConfigKey = s; return nil }},
		{Header: "参数键值", Width: 30, Parse: func(r *core.ConfigCreateRequest, s string) error { r.ConfigValue = s; return nil }},
		{Header: "参数类型", Parse: func(r *core.ConfigCreateRequest, s string) error { r.ConfigType = core.ConfigType(s); return nil }},
		{Header: "备注", Width: 30, Parse: func(r *core.ConfigCreateRequest, s string) error { r.Remark = s; return nil }},
	},
}

// ConfigHandler 参数配置处理器
type ConfigHandler struct {
	*handler.CRUDHandler[core.Config, core.ConfigQuery, core.ConfigCreateRequest, core.ConfigUpdateRequest]
	service *coresvc.ConfigService
}

// NewConfigHandler 创建参数配置处理器
func NewConfigHandler(service *coresvc.ConfigService, maxUploadSize int64) *ConfigHandler {
	return &ConfigHandler{
		CRUDHandler: handler.NewCRUDHandler[core.Config, core.ConfigQuery, core.ConfigCreateRequest, core.ConfigUpdateRequest](
			service, configSheet, configImportSheet, maxUploadSize),
		service: service,
	}
}

// GetValue 按键名读取参数值(仅启用的参数)
func (h *ConfigHandler) GetValue(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		handler.BindError(c, system.NewValidationError("key", "参数键名不能为空"))
		return
	}
	value, err := h.service.GetValueByKey(c.Request.Context(), key)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "查询成功", gin.H{"config_key": key, "config_value": value})
}
