/**
 * 模型:角色
 * @date: 2026.03.06
 * @description: 角色与菜单多对多，角色编码 admin 为超级管理员
 */
package system

import "backoffice/internal/model/basemodel"

// Role 角色
type Role struct {
	basemodel.BaseModel
	RoleName  string           `json:"role_name" gorm:"size:100;not null;comment:角色名称"`
	RoleCode  string           `json:"role_code" gorm:"size:50;not null;index;comment:角色编码"`
	Sort      int              `json:"sort" gorm:"default:0;comment:排序"`
	IsEnabled basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
	Remark    string           `json:"remark" gorm:"size:500;comment:备注"`
	Menus     []Menu           `json:"menus,omitempty" gorm:"many2many:sys_role_menus;"`
}

// TableName 表名
func (Role) TableName() string {
	return "sys_role"
}

// RoleQuery 角色查询条件
type RoleQuery struct {
	RoleName  string            `form:"role_name"`
	RoleCode  string            `form:"role_code"`
	IsEnabled *basemodel.Status `form:"is_enabled"`
}

// RoleFields 角色可编辑字段
type RoleFields struct {
	RoleName string `json:"role_name" binding:"required,max=100"`
	RoleCode string `json:"role_code" binding:"required,max=50"`
	Sort     int    `json:"sort" binding:"gte=0"`
	Remark   string `json:"remark" binding:"max=500"`
}

// RoleCreateRequest 创建角色
type RoleCreateRequest struct {
	RoleFields
}

// RoleUpdateRequest 更新角色
type RoleUpdateRequest struct {
	RoleFields
}

// AssignMenusRequest 角色分配菜单，全量覆盖
type AssignMenusRequest struct {
	MenuIDs []uint64 `json:"menu_ids"`
}
