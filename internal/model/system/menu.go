/**
 * 模型:菜单与权限
 * @date: 2026.03.06
 * @description: 菜单树，按钮类型菜单携带权限编码(如 core:config:list)
 */
package system

import "backoffice/internal/model/basemodel"

// MenuType 菜单类型
type MenuType string

const (
	MenuTypeDirectory MenuType = "directory"
	MenuTypeMenu      MenuType = "menu"
	MenuTypeButton    MenuType = "button"
)

// Menu 菜单
type Menu struct {
	basemodel.BaseModel
	ParentID   uint64           `json:"parent_id" gorm:"index;default:0;comment:上级菜单ID"`
	MenuName   string           `json:"menu_name" gorm:"size:100;not null;comment:菜单名称"`
	MenuType   MenuType         `json:"menu_type" gorm:"size:20;not null;default:menu;comment:菜单类型"`
	Path       string           `json:"path" gorm:"size:255;comment:路由地址"`
	Component  string           `json:"component" gorm:"size:255;comment:前端组件"`
	Icon       string           `json:"icon" gorm:"size:100;comment:图标"`
	Permission string           `json:"permission" gorm:"size:100;index;comment:权限编码"`
	Sort       int              `json:"sort" gorm:"default:0;comment:排序"`
	IsEnabled  basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
}

// TableName 表名
func (Menu) TableName() string {
	return "sys_menu"
}

// MenuQuery 菜单查询条件
type MenuQuery struct {
	ParentID   *uint64           `form:"parent_id"`
	MenuName   string            `form:"menu_name"`
	MenuType   MenuType          `form:"menu_type"`
	Permission string            `form:"permission"`
	IsEnabled  *basemodel.Status `form:"is_enabled"`
}

// MenuFields 菜单可编辑字段
type MenuFields struct {
	ParentID   uint64   `json:"parent_id"`
	MenuName   string   `json:"menu_name" binding:"required,max=100"`
	MenuType   MenuType `json:"menu_type" binding:"required,oneof=directory menu button"`
	Path       string   `json:"path" binding:"max=255"`
	Component  string   `json:"component" binding:"max=255"`
	Icon       string   `json:"icon" binding:"max=100"`
	Permission string   `json:"permission" binding:"max=100"`
	Sort       int      `json:"sort" binding:"gte=0"`
}

// MenuCreateRequest 创建菜单
type MenuCreateRequest struct {
	MenuFields
}

// MenuUpdateRequest 更新菜单
type MenuUpdateRequest struct {
	MenuFields
}

// MenuNode 菜单树节点
type MenuNode struct {
	Menu
	Children []*MenuNode `json:"children"`
}
