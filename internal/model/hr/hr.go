/**
 * 模型:人事
 * @date: 2026.03.07
 * @description: 岗位与员工档案
 */
package hr

import (
	"time"

	"backoffice/internal/model/basemodel"
)

// EmployeeStatus 在职状态
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeResigned EmployeeStatus = "resigned"
)

// Gender 性别
type Gender string

const (
	GenderUnknown Gender = "unknown"
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

// Position 岗位
type Position struct {
	basemodel.BaseModel
	PositionName string           `json:"position_name" gorm:"size:100;not null;comment:岗位名称"`
	PositionCode string           `json:"position_code" gorm:"size:50;not null;index;comment:岗位编码"`
	Sort         int              `json:"sort" gorm:"default:0;comment:排序"`
	IsEnabled    basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
	Remark       string           `json:"remark" gorm:"size:500;comment:备注"`
}

// TableName 表名
func (Position) TableName() string {
	return "hr_position"
}

// Employee 员工
type Employee struct {
	basemodel.BaseModel
	EmployeeNo string           `json:"employee_no" gorm:"size:50;not null;index;comment:工号"`
	Name       string           `json:"name" gorm:"size:64;not null;comment:姓名"`
	Gender     Gender           `json:"gender" gorm:"size:10;default:unknown;comment:性别"`
	DeptID     uint64           `json:"dept_id" gorm:"index;default:0;comment:部门ID"`
	PositionID uint64           `json:"position_id" gorm:"index;default:0;comment:岗位ID"`
	Phone      string           `json:"phone" gorm:"size:20;comment:手机号"`
	Email      string           `json:"email" gorm:"size:128;comment:邮箱"`
	HireDate   *time.Time       `json:"hire_date" gorm:"type:date;comment:入职日期"`
	Status     EmployeeStatus   `json:"status" gorm:"size:20;default:active;index;comment:在职状态"`
	IsEnabled  basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
	Remark     string           `json:"remark" gorm:"size:500;comment:备注"`
}

// TableName 表名
func (Employee) TableName() string {
	return "hr_employee"
}

// PositionQuery 岗位查询条件
type PositionQuery struct {
	PositionName string            `form:"position_name"`
	PositionCode string            `form:"position_code"`
	IsEnabled    *basemodel.Status `form:"is_enabled"`
}

// PositionFields 岗位可编辑字段
type PositionFields struct {
	PositionName string `json:"position_name" binding:"required,max=100"`
	PositionCode string `json:"position_code" binding:"required,max=50"`
	Sort         int    `json:"sort" binding:"gte=0"`
	Remark       string `json:"remark" binding:"max=500"`
}

// PositionCreateRequest 创建岗位
type PositionCreateRequest struct {
	PositionFields
}

// PositionUpdateRequest 更新岗位
type PositionUpdateRequest struct {
	PositionFields
}

// EmployeeQuery 员工查询条件，入职日期按区间过滤
type EmployeeQuery struct {
	EmployeeNo    string            `form:"employee_no"`
	Name          string            `form:"name"`
	DeptID        *uint64           `form:"dept_id"`
	PositionID    *uint64           `form:"position_id"`
	Status        EmployeeStatus    `form:"status"`
	IsEnabled     *basemodel.Status `form:"is_enabled"`
	HireDateStart time.Time         `form:"hire_date_start" time_format:"2006-01-02"`
	HireDateEnd   time.Time         `form:"hire_date_end" time_format:"2006-01-02"`
}

// EmployeeFields 员工可编辑字段
type EmployeeFields struct {
	EmployeeNo string         `json:"employee_no" binding:"required,max=50"`
	Name       string         `json:"name" binding:"required,max=64"`
	Gender     Gender         `json:"gender" binding:"omitempty,oneof=unknown male female"`
	DeptID     uint64         `json:"dept_id"`
	PositionID uint64         `json:"position_id"`
	Phone      string         `json:"phone" binding:"max=20"`
	Email      string         `json:"email" binding:"omitempty,email,max=128"`
	HireDate   *time.Time     `json:"hire_date"`
	Status     EmployeeStatus `json:"status" binding:"omitempty,oneof=active resigned"`
	Remark     string         `json:"remark" binding:"max=500"`
}

// EmployeeCreateRequest 创建员工
type EmployeeCreateRequest struct {
	EmployeeFields
}

// EmployeeUpdateRequest 更新员工
type EmployeeUpdateRequest struct {
	EmployeeFields
}
