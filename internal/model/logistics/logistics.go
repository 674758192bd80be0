/**
 * 模型:物流主数据
 * @date: 2026.03.07
 * @description: 仓库与物料档案
 */
package logistics

import "backoffice/internal/model/basemodel"

// MaterialStatus 物料状态
type MaterialStatus string

const (
	MaterialDraft    MaterialStatus = "draft"
	MaterialActive   MaterialStatus = "active"
	MaterialArchived MaterialStatus = "archived"
)

// Warehouse 仓库
type Warehouse struct {
	basemodel.BaseModel
	WarehouseCode string           `json:"warehouse_code" gorm:"size:50;not null;index;comment:仓库编码"`
	WarehouseName string           `json:"warehouse_name" gorm:"size:100;not null;comment:仓库名称"`
	Address       string           `json:"address" gorm:"size:255;comment:地址"`
	Manager       string           `json:"manager" gorm:"size:64;comment:负责人"`
	Phone         string           `json:"phone" gorm:"size:20;comment:联系电话"`
	IsEnabled     basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
	Remark        string           `json:"remark" gorm:"size:500;comment:备注"`
}

// TableName 表名
func (Warehouse) TableName() string {
	return "lg_warehouse"
}

// Material 物料
type Material struct {
	basemodel.BaseModel
	MaterialCode string           `json:"material_code" gorm:"size:50;not null;index;comment:物料编码"`
	MaterialName string           `json:"material_name" gorm:"size:100;not null;comment:物料名称"`
	Spec         string           `json:"spec" gorm:"size:100;comment:规格型号"`
	Unit         string           `json:"unit" gorm:"size:20;comment:计量单位"`
	Category     string           `json:"category" gorm:"size:50;index;comment:分类"`
	WarehouseID  uint64           `json:"warehouse_id" gorm:"index;default:0;comment:默认仓库"`
	SafetyStock  float64          `json:"safety_stock" gorm:"default:0;comment:安全库存"`
	Status       MaterialStatus   `json:"status" gorm:"size:20;default:draft;index;comment:物料状态"`
	IsEnabled    basemodel.Status `json:"is_enabled" gorm:"default:1;comment:是否启用"`
	Remark       string           `json:"remark" gorm:"size:500;comment:备注"`
}

// TableName 表名
func (Material) TableName() string {
	return "lg_material"
}

// WarehouseQuery 仓库查询条件
type WarehouseQuery struct {
	WarehouseCode string            `form:"warehouse_code"`
	WarehouseName string            `form:"warehouse_name"`
	Manager       string            `form:"manager"`
	IsEnabled     *basemodel.Status `form:"is_enabled"`
}

// WarehouseFields 仓库可编辑字段
type WarehouseFields struct {
	WarehouseCode string `json:"warehouse_code" binding:"required,max=50"`
	WarehouseName string `json:"warehouse_name" binding:"required,max=100"`
	Address       string `json:"address" binding:"max=255"`
	Manager       string `json:"manager" binding:"max=64"`
	Phone         string `json:"phone" binding:"max=20"`
	Remark        string `json:"remark" binding:"max=500"`
}

// WarehouseCreateRequest 创建仓库
type WarehouseCreateRequest struct {
	WarehouseFields
}

// WarehouseUpdateRequest 更新仓库
type WarehouseUpdateRequest struct {
	WarehouseFields
}

// MaterialQuery 物料查询条件，安全库存按区间过滤
type MaterialQuery struct {
	MaterialCode   string            `form:"material_code"`
	MaterialName   string            `form:"material_name"`
	Category       string            `form:"category"`
	WarehouseID    *uint64           `form:"warehouse_id"`
	Status         MaterialStatus    `form:"status"`
	IsEnabled      *basemodel.Status `form:"is_enabled"`
	SafetyStockMin *float64          `form:"safety_stock_min"`
	SafetyStockMax *float64          `form:"safety_stock_max"`
}

// MaterialFields 物料可编辑字段
type MaterialFields struct {
	MaterialCode string         `json:"material_code" binding:"required,max=50"`
	MaterialName string         `json:"material_name" binding:"required,max=100"`
	Spec         string         `json:"spec" binding:"max=100"`
	Unit         string         `json:"unit" binding:"max=20"`
	Category     string         `json:"category" binding:"max=50"`
	WarehouseID  uint64         `json:"warehouse_id"`
	SafetyStock  float64        `json:"safety_stock" binding:"gte=0"`
	Status       MaterialStatus `json:"status" binding:"omitempty,oneof=draft active archived"`
	Remark       string         `json:"remark" binding:"max=500"`
}

// MaterialCreateRequest 创建物料
type MaterialCreateRequest struct {
	MaterialFields
}

// MaterialUpdateRequest 更新物料
type MaterialUpdateRequest struct {
	MaterialFields
}
