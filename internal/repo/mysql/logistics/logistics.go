/**
 * 仓库层:物流主数据
 * @date: 2026.03.12
 * @description: 仓库、物料仓库与排序白名单
 */
package logistics

import (
	"backoffice/internal/model/logistics"
	"backoffice/internal/pkg/query"
	"backoffice/internal/repo/mysql"

	"gorm.io/gorm"
)

// NewWarehouseRepository 仓库档案仓库
func NewWarehouseRepository(db *gorm.DB) *mysql.Repository[logistics.Warehouse] {
	return mysql.NewRepository[logistics.Warehouse](db, query.NewSortSpec("id", map[string]string{
		"id":             "id",
		"warehouse_code": "warehouse_code",
		"warehouse_name": "warehouse_name",
		"created_at":     "created_at",
	}))
}

// NewMaterialRepository 物料仓库
func NewMaterialRepository(db *gorm.DB) *mysql.Repository[logistics.Material] {
	return mysql.NewRepository[logistics.Material](db, query.NewSortSpec("id", map[string]string{
		"id":            "id",
		"material_code": "material_code",
		"material_name": "material_name",
		"category":      "category",
		"safety_stock":  "safety_stock",
		"created_at":    "created_at",
		"updated_at":    "updated_at",
	}))
}
