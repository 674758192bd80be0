/**
 * 模型:部门
 * @date: 2026.03.06
 * @description: 部门树，ParentID 为 0 表示顶级部门
 */
package system

import "backoffice/internal/model/basemodel"

// Dept 部门
type Dept struct {
	basemodel.BaseModel
	ParentID  uint64           `json:"parent_id" gorm:"index;default:0;comment:上级部门ID"`
	DeptName  string           `json:"dept_name" gorm:"size:100;not null;comment:部门名称"`
	DeptCode  string           `json:"dept_code" gorm:"size:50;index;comment:部门编码"`
	Leader    string           `json:"leader" gorm:"size:50;comment:负责人"`
	Phone     string           `json:"phone" gorm:"size:20;comment:联系电话"`
	Sort      int              `json:"sort" gorm:"default:0;comment:排序"`
	IsEnabled basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
}

// TableName 表名
func (Dept) TableName() string {
	return "sys_dept"
}

// DeptQuery 部门查询条件
type DeptQuery struct {
	ParentID  *uint64           `form:"parent_id"`
	DeptName  string            `form:"dept_name"`
	DeptCode  string            `form:"dept_code"`
	IsEnabled *basemodel.Status `form:"is_enabled"`
}

// DeptFields 部门可编辑字段
type DeptFields struct {
	ParentID uint64 `json:"parent_id"`
	DeptName string `json:"dept_name" binding:"required,max=100"`
	DeptCode string `json:"dept_code" binding:"max=50"`
	Leader   string `json:"leader" binding:"max=50"`
	Phone    string `json:"phone" binding:"max=20"`
	Sort     int    `json:"sort" binding:"gte=0"`
}

// DeptCreateRequest 创建部门
type DeptCreateRequest struct {
	DeptFields
}

// DeptUpdateRequest 更新部门
type DeptUpdateRequest struct {
	DeptFields
}

// DeptNode 部门树节点
type DeptNode struct {
	Dept
	Children []*DeptNode `json:"children"`
}
