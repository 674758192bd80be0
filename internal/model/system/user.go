/**
 * 模型:用户
 * @date: 2026.03.06
 * @description: 后台用户，密码只保存 Argon2id 哈希，不参与序列化
 */
package system

import (
	"time"

	"backoffice/internal/model/basemodel"
)

// User 用户
type User struct {
	basemodel.BaseModel
	Username     string           `json:"username" gorm:"size:64;not null;index;comment:用户名"`
	Nickname     string           `json:"nickname" gorm:"size:64;comment:昵称"`
	Email        string           `json:"email" gorm:"size:128;comment:邮箱"`
	Phone        string           `json:"phone" gorm:"size:20;comment:手机号"`
	PasswordHash string           `json:"-" gorm:"size:255;not null;comment:密码哈希"`
	DeptID       uint64           `json:"dept_id" gorm:"index;default:0;comment:所属部门"`
	IsEnabled    basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
	LastLoginAt  *time.Time       `json:"last_login_at" gorm:"comment:最后登录时间"`
	LastLoginIP  string           `json:"last_login_ip" gorm:"size:64;comment:最后登录IP"`
	Remark       string           `json:"remark" gorm:"size:500;comment:备注"`
	Roles        []Role           `json:"roles,omitempty" gorm:"many2many:sys_user_roles;"`
}

// TableName 表名
func (User) TableName() string {
	return "sys_user"
}

// RoleCodes 用户已启用角色的编码
func (u *User) RoleCodes() []string {
	codes := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		if r.IsEnabled == basemodel.StatusEnabled {
			codes = append(codes, r.RoleCode)
		}
	}
	return codes
}

// UserQuery 用户查询条件
type UserQuery struct {
	Username  string            `form:"username"`
	Nickname  string            `form:"nickname"`
	Phone     string            `form:"phone"`
	DeptID    *uint64           `form:"dept_id"`
	IsEnabled *basemodel.Status `form:"is_enabled"`
	StartTime time.Time         `form:"start_time" time_format:"2006-01-02"`
	EndTime   time.Time         `form:"end_time" time_format:"2006-01-02"`
}

// UserFields 用户可编辑字段
type UserFields struct {
	Nickname string `json:"nickname" binding:"max=64"`
	Email    string `json:"email" binding:"omitempty,email,max=128"`
	Phone    string `json:"phone" binding:"max=20"`
	DeptID   uint64 `json:"dept_id"`
	Remark   string `json:"remark" binding:"max=500"`
}

// UserCreateRequest 创建用户，导入时同样使用
type UserCreateRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=64"`
	UserFields
}

// UserUpdateRequest 更新用户，用户名与密码不在此修改
type UserUpdateRequest struct {
	UserFields
}

// AssignRolesRequest 用户分配角色，全量覆盖
type AssignRolesRequest struct {
	RoleIDs []uint64 `json:"role_ids"`
}

// ResetPasswordRequest 重置密码
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=64"`
}
