/**
 * 模型:租户
 * @date: 2026.03.06
 * @description: 租户信息，租户数据由 BaseModel.TenantID 隔离
 */
package system

import (
	"time"

	"backoffice/internal/model/basemodel"
)

// Tenant 租户
type Tenant struct {
	basemodel.BaseModel
	TenantName string           `json:"tenant_name" gorm:"size:100;not null;comment:租户名称"`
	TenantCode string           `json:"tenant_code" gorm:"size:50;not null;index;comment:租户编码"`
	Contact    string           `json:"contact" gorm:"size:50;comment:联系人"`
	Phone      string           `json:"phone" gorm:"size:20;comment:联系电话"`
	ExpireAt   *time.Time       `json:"expire_at" gorm:"comment:到期时间"`
	IsEnabled  basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
	Remark     string           `json:"remark" gorm:"size:500;comment:备注"`
}

// TableName 表名
func (Tenant) TableName() string {
	return "sys_tenant"
}

// Expired 是否已过期，未设置到期时间视为永久有效
func (t *Tenant) Expired(now time.Time) bool {
	return t.ExpireAt != nil && now.After(*t.ExpireAt)
}

// TenantQuery 租户查询条件
type TenantQuery struct {
	TenantName string            `form:"tenant_name"`
	TenantCode string            `form:"tenant_code"`
	IsEnabled  *basemodel.Status `form:"is_enabled"`
}

// TenantFields 租户可编辑字段
type TenantFields struct {
	TenantName string     `json:"tenant_name" binding:"required,max=100"`
	TenantCode string     `json:"tenant_code" binding:"required,max=50"`
	Contact    string     `json:"contact" binding:"max=50"`
	Phone      string     `json:"phone" binding:"max=20"`
	ExpireAt   *time.Time `json:"expire_at"`
	Remark     string     `json:"remark" binding:"max=500"`
}

// TenantCreateRequest 创建租户
type TenantCreateRequest struct {
	TenantFields
}

// TenantUpdateRequest 更新租户
type TenantUpdateRequest struct {
	TenantFields
}
