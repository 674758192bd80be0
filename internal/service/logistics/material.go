/**
 * 服务层:物料
 * @date: 2026.03.12
 * @description: 物料档案增删改查，物料编码唯一，默认仓库须存在
 */
package logistics

import (
	"context"
	"strings"

	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/logistics"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/query"
	"backoffice/internal/repo/mysql"
	"backoffice/internal/service/crud"
)

// MaterialService 物料服务
type MaterialService struct {
	*crud.Service[logistics.Material, logistics.MaterialQuery, logistics.MaterialCreateRequest, logistics.MaterialUpdateRequest]
}

// NewMaterialService 创建物料服务
func NewMaterialService(repo *mysql.Repository[logistics.Material], warehouses *mysql.Repository[logistics.Warehouse], exportLimit int) *MaterialService {
	checkWarehouse := func(ctx context.Context, id uint64) error {
		if id == 0 {
			return nil
		}
		w, err := warehouses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if w == nil {
			return system.NewValidationError("warehouse_id", "仓库不存在")
		}
		return nil
	}
	def := crud.Definition[logistics.Material, logistics.MaterialQuery, logistics.MaterialCreateRequest, logistics.MaterialUpdateRequest]{
		Entity:    "物料",
		Operation: "logistics_material",
		Predicate: func(q *logistics.MaterialQuery) *query.Predicate {
			return query.Where().
				Contains("material_code", q.MaterialCode).
				Contains("material_name", q.MaterialName).
				Eq("category", q.Category).
				Eq("warehouse_id", q.WarehouseID).
				Eq("status", q.Status).
				Eq("is_enabled", q.IsEnabled).
				Between("safety_stock", q.SafetyStockMin, q.SafetyStockMax)
		},
		New: func(ctx context.Context, req *logistics.MaterialCreateRequest) (*logistics.Material, error) {
			e := &logistics.Material{IsEnabled: basemodel.StatusEnabled}
			applyMaterialFields(e, &req.MaterialFields)
			return e, checkWarehouse(ctx, e.WarehouseID)
		},
		Apply: func(ctx context.Context, e *logistics.Material, req *logistics.MaterialUpdateRequest) error {
			applyMaterialFields(e, &req.MaterialFields)
			return checkWarehouse(ctx, e.WarehouseID)
		},
		Unique: []crud.UniqueField[logistics.Material]{
			{Column: "material_code", Label: "物料编码", Value: func(e *logistics.Material) string { return e.MaterialCode }},
		},
	}
	return &MaterialService{Service: crud.NewService(repo, def, exportLimit)}
}

func applyMaterialFields(e *logistics.Material, f *logistics.MaterialFields) {
	e.MaterialCode = strings.TrimSpace(f.MaterialCode)
	e.MaterialName = strings.TrimSpace(f.MaterialName)
	e.Spec = f.Spec
	e.Unit = strings.TrimSpace(f.Unit)
	e.Category = strings.TrimSpace(f.Category)
	e.WarehouseID = f.WarehouseID
	e.SafetyStock = f.SafetyStock
	e.Status = f.Status
	if e.Status == "" {
		e.Status = logistics.MaterialDraft
	}
	e.Remark = f.Remark
}
