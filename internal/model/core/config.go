/**
 * 模型:参数配置
 * @date: 2026.03.05
 * @description: 系统参数键值配置
 */
package core

import "backoffice/internal/model/basemodel"

// ConfigType 参数类型
type ConfigType string

const (
	ConfigTypeSystem ConfigType = "system" // 系统内置，不允许删除
	ConfigTypeUser   ConfigType = "user"   // 用户自定义
)

// Config 参数配置
type Config struct {
	basemodel.BaseModel
	ConfigName  string           `json:"config_name" gorm:"size:100;not null;comment:参数名称"`
	ConfigKey   string           `json:"config_key" gorm:"size:100;not null;index;comment:参数键名"`
	ConfigValue string           `json:"config_value" gorm:"size:500;comment:参数键值"`
	ConfigType  ConfigType       `json:"config_type" gorm:"size:20;default:user;comment:参数类型"`
	IsEnabled   basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
	Remark      string           `json:"remark" gorm:"size:500;comment:备注"`
}

// TableName 表名
func (Config) TableName() string {
	return "sys_config"
}
