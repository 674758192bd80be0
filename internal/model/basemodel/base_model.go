package basemodel

import (
	"time"

	"backoffice/internal/pkg/utils"

	"gorm.io/gorm"
)

// BaseModel 业务实体的统一基础字段：主键、租户、审计时间与操作人、软删除标记。
// 约定与特性：
//  1. ID 为自增主键。
//  2. CreatedAt/UpdatedAt 由 GORM 自动维护时间戳。
//  3. TenantID/CreatedBy/UpdatedBy 由钩子从请求上下文(utils.WithIdentity)填充，
//     上下文中没有身份时保持调用方设置的值。
//  4. DeletedAt 非空即视为已删除，GORM 默认查询会自动排除。
//  5. DeleteMark 未删除为 0，删除时置为自身 ID；编码类唯一索引包含该列，
//     删除后可重建同编码记录。
type BaseModel struct {
	ID         uint64         `json:"id" gorm:"primaryKey;autoIncrement;comment:主键ID"`
	TenantID   uint64         `json:"tenant_id" gorm:"index;default:0;comment:租户ID"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime;comment:创建时间"`
	CreatedBy  string         `json:"created_by" gorm:"size:64;comment:创建人"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime;comment:更新时间"`
	UpdatedBy  string         `json:"updated_by" gorm:"size:64;comment:更新人"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index;comment:删除时间"`
	DeleteMark uint64         `json:"-" gorm:"not null;default:0;comment:删除标记"`
}

// BeforeCreate 填充租户与创建人
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	ctx := tx.Statement.Context
	if m.TenantID == 0 {
		m.TenantID = utils.GetTenantIDFromContext(ctx)
	}
	if name := utils.GetUsernameFromContext(ctx); name != "" {
		m.CreatedBy = name
		m.UpdatedBy = name
	}
	return nil
}

// BeforeUpdate 填充更新人
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if name := utils.GetUsernameFromContext(tx.Statement.Context); name != "" {
		m.UpdatedBy = name
	}
	return nil
}

// GetID 返回主键
func (m *BaseModel) GetID() uint64 { return m.ID }

// SoftDeleteColumns 删除时写入的列，仓库层以 UPDATE 代替 DELETE
func (m *BaseModel) SoftDeleteColumns() map[string]interface{} {
	return map[string]interface{}{
		"deleted_at":  time.Now(),
		"delete_mark": gorm.Expr("id"),
	}
}

// LogModel 日志类实体的基础字段，只追加不修改，物理删除
type LogModel struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement;comment:主键ID"`
	TenantID  uint64    `json:"tenant_id" gorm:"index;default:0;comment:租户ID"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index;comment:记录时间"`
}

// BeforeCreate 填充租户
func (m *LogModel) BeforeCreate(tx *gorm.DB) error {
	if m.TenantID == 0 {
		m.TenantID = utils.GetTenantIDFromContext(tx.Statement.Context)
	}
	return nil
}

// GetID 返回主键
func (m *LogModel) GetID() uint64 { return m.ID }

// Status 启用状态，1 启用 0 停用
type Status int8

const (
	StatusDisabled Status = 0
	StatusEnabled  Status = 1
)

// Valid 是否为合法状态值
func (s Status) Valid() bool {
	return s == StatusDisabled || s == StatusEnabled
}
