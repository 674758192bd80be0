/**
 * 模型:多语言翻译
 * @date: 2026.03.05
 * @description: 翻译词条，同一个 TranslateKey 每种语言一行
 */
package core

import "backoffice/internal/model/basemodel"

// Translate 翻译词条
type Translate struct {
	basemodel.BaseModel
	TranslateKey   string           `json:"translate_key" gorm:"size:200;not null;index;comment:翻译键"`
	LanguageCode   string           `json:"language_code" gorm:"size:20;not null;index;comment:语言编码"`
	TranslateValue string           `json:"translate_value" gorm:"size:2000;comment:翻译内容"`
	Module         string           `json:"module" gorm:"size:50;index;comment:所属模块"`
	IsEnabled      basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
	Remark         string           `json:"remark" gorm:"size:500;comment:备注"`
}

// TableName 表名
func (Translate) TableName() string {
	return "sys_translate"
}
