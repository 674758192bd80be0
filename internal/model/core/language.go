/**
 * 模型:语言
 * @date: 2026.03.05
 * @description: 系统支持的语言，至多一个默认语言
 */
package core

import "backoffice/internal/model/basemodel"

// Language 语言
type Language struct {
	basemodel.BaseModel
	LanguageName string           `json:"language_name" gorm:"size:50;not null;comment:语言名称"`
	LanguageCode string           `json:"language_code" gorm:"size:20;not null;index;comment:语言编码(如 zh-CN)"`
	IsDefault    bool             `json:"is_default" gorm:"default:false;index;comment:是否默认语言"`
	Sort         int              `json:"sort" gorm:"default:0;comment:排序"`
	IsEnabled    basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
	Remark       string           `json:"remark" gorm:"size:500;comment:备注"`
}

// TableName 表名
func (Language) TableName() string {
	return "sys_language"
}
