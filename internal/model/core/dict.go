/**
 * 模型:字典
 * @date: 2026.03.05
 * @description: 字典类型与字典数据，字典数据按语言分行存储
 */
package core

import "backoffice/internal/model/basemodel"

// DictType 字典类型
type DictType struct {
	basemodel.BaseModel
	DictName  string           `json:"dict_name" gorm:"size:100;not null;comment:字典名称"`
	DictCode  string           `json:"dict_code" gorm:"size:100;not null;index;comment:字典编码"`
	IsEnabled basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
	Remark    string           `json:"remark" gorm:"size:500;comment:备注"`
}

// TableName 表名
func (DictType) TableName() string {
	return "sys_dict_type"
}

// DictData 字典数据，同一 DictCode+DictValue 每种语言一行
type DictData struct {
	basemodel.BaseModel
	DictCode     string           `json:"dict_code" gorm:"size:100;not null;index;comment:字典编码"`
	DictLabel    string           `json:"dict_label" gorm:"size:100;not null;comment:字典标签"`
	DictValue    string           `json:"dict_value" gorm:"size:100;not null;comment:字典键值"`
	LanguageCode string           `json:"language_code" gorm:"size:20;not null;default:zh-CN;comment:语言编码"`
	Sort         int              `json:"sort" gorm:"default:0;comment:排序"`
	CssClass     string           `json:"css_class" gorm:"size:100;comment:样式属性"`
	IsDefault    bool             `json:"is_default" gorm:"default:false;comment:是否默认值"`
	IsEnabled    basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
	Remark       string           `json:"remark" gorm:"size:500;comment:备注"`
}

// TableName 表名
func (DictData) TableName() string {
	return "sys_dict_data"
}
