package core

import (
	"time"

	"backoffice/internal/model/basemodel"
)

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

// ConfigQuery 参数配置列表查询条件
type ConfigQuery struct {
	ConfigName string            `form:"config_name"`
	ConfigKey  string            `form:"config_key"`
	ConfigType ConfigType        `form:"config_type"`
	IsEnabled  *basemodel.Status `form:"is_enabled"`
	StartTime  time.Time         `form:"start_time" time_format:"2006-01-02"`
	EndTime    time.Time         `form:"end_time" time_format:"2006-01-02"`
}

// ConfigFields 参数配置可编辑字段，创建/更新/导入共用
type ConfigFields struct {
	ConfigName  string     `json:"config_name" binding:"required,max=100"`
	ConfigKey   string     `json:"config_key" binding:"required,max=100"`
	ConfigValue string     `json:"config_value" binding:"max=500"`
	ConfigType  ConfigType `json:"config_type" binding:"omitempty,oneof=system user"`
	Remark      string     `json:"remark" binding:"max=500"`
}

// ConfigCreateRequest 创建参数配置
type ConfigCreateRequest struct {
	ConfigFields
}

// ConfigUpdateRequest 更新参数配置
type ConfigUpdateRequest struct {
	ConfigFields
}

// ---------------------------------------------------------------------------
// DictType / DictData
// ---------------------------------------------------------------------------

// DictTypeQuery 字典类型查询条件
type DictTypeQuery struct {
	DictName  string            `form:"dict_name"`
	DictCode  string            `form:"dict_code"`
	IsEnabled *basemodel.Status `form:"is_enabled"`
}

// DictTypeFields 字典类型可编辑字段
type DictTypeFields struct {
	DictName string `json:"dict_name" binding:"required,max=100"`
	DictCode string `json:"dict_code" binding:"required,max=100"`
	Remark   string `json:"remark" binding:"max=500"`
}

// DictTypeCreateRequest 创建字典类型
type DictTypeCreateRequest struct {
	DictTypeFields
}

// DictTypeUpdateRequest 更新字典类型
type DictTypeUpdateRequest struct {
	DictTypeFields
}

// DictDataQuery 字典数据查询条件
type DictDataQuery struct {
	DictCode     string            `form:"dict_code"`
	DictLabel    string            `form:"dict_label"`
	LanguageCode string            `form:"language_code"`
	IsEnabled    *basemodel.Status `form:"is_enabled"`
}

// DictDataFields 字典数据可编辑字段
type DictDataFields struct {
	DictCode     string `json:"dict_code" binding:"required,max=100"`
	DictLabel    string `json:"dict_label" binding:"required,max=100"`
	DictValue    string `json:"dict_value" binding:"required,max=100"`
	LanguageCode string `json:"language_code" binding:"required,max=20"`
	Sort         int    `json:"sort" binding:"gte=0"`
	CssClass     string `json:"css_class" binding:"max=100"`
	IsDefault    bool   `json:"is_default"`
	Remark       string `json:"remark" binding:"max=500"`
}

// DictDataCreateRequest 创建字典数据
type DictDataCreateRequest struct {
	DictDataFields
}

// DictDataUpdateRequest 更新字典数据
type DictDataUpdateRequest struct {
	DictDataFields
}

// DictDataTransposed 字典数据转置结果：同一键值的多语言标签合为一行
type DictDataTransposed struct {
	DictCode  string            `json:"dict_code"`
	DictValue string            `json:"dict_value"`
	Sort      int               `json:"sort"`
	Labels    map[string]string `json:"labels"` // language_code -> label
}

// ---------------------------------------------------------------------------
// Language
// ---------------------------------------------------------------------------

// LanguageQuery 语言查询条件
type LanguageQuery struct {
	LanguageName string            `form:"language_name"`
	LanguageCode string            `form:"language_code"`
	IsEnabled    *basemodel.Status `form:"is_enabled"`
}

// LanguageFields 语言可编辑字段，默认标记只能通过 SetDefault 修改
type LanguageFields struct {
	LanguageName string `json:"language_name" binding:"required,max=50"`
	LanguageCode string `json:"language_code" binding:"required,max=20"`
	Sort         int    `json:"sort" binding:"gte=0"`
	Remark       string `json:"remark" binding:"max=500"`
}

// LanguageCreateRequest 创建语言
type LanguageCreateRequest struct {
	LanguageFields
}

// LanguageUpdateRequest 更新语言
type LanguageUpdateRequest struct {
	LanguageFields
}

// ---------------------------------------------------------------------------
// Translate
// ---------------------------------------------------------------------------

// TranslateQuery 翻译查询条件
type TranslateQuery struct {
	TranslateKey   string            `form:"translate_key"`
	LanguageCode   string            `form:"language_code"`
	TranslateValue string            `form:"translate_value"`
	Module         string            `form:"module"`
	IsEnabled      *basemodel.Status `form:"is_enabled"`
}

// TranslateFields 翻译可编辑字段
type TranslateFields struct {
	TranslateKey   string `json:"translate_key" binding:"required,max=200"`
	LanguageCode   string `json:"language_code" binding:"required,max=20"`
	TranslateValue string `json:"translate_value" binding:"max=2000"`
	Module         string `json:"module" binding:"max=50"`
	Remark         string `json:"remark" binding:"max=500"`
}

// TranslateCreateRequest 创建翻译
type TranslateCreateRequest struct {
	TranslateFields
}

// TranslateUpdateRequest 更新翻译
type TranslateUpdateRequest struct {
	TranslateFields
}

// TranslateTransposed 翻译转置结果：同一个键的多语言内容合为一行
type TranslateTransposed struct {
	TranslateKey string            `json:"translate_key"`
	Module       string            `json:"module,omitempty"`
	Translations map[string]string `json:"translations"` // language_code -> value
}
