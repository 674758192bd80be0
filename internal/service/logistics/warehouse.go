/**
 * 服务层:仓库
 * @date: 2026.03.12
 * @description: 仓库档案增删改查，仍被物料引用的仓库不能删除
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

// WarehouseService 仓库服务
type WarehouseService struct {
	*crud.Service[logistics.Warehouse, logistics.WarehouseQuery, logistics.WarehouseCreateRequest, logistics.WarehouseUpdateRequest]
}

// NewWarehouseService 创建仓库服务
func NewWarehouseService(repo *mysql.Repository[logistics.Warehouse], materials *mysql.Repository[logistics.Material], exportLimit int) *WarehouseService {
	def := crud.Definition[logistics.Warehouse, logistics.WarehouseQuery, logistics.WarehouseCreateRequest, logistics.WarehouseUpdateRequest]{
		Entity:    "仓库",
		Operation: "logistics_warehouse",
		Predicate: func(q *logistics.WarehouseQuery) *query.Predicate {
			return query.Where().
				Contains("warehouse_code", q.WarehouseCode).
				Contains("warehouse_name", q.WarehouseName).
				Contains("manager", q.Manager).
				Eq("is_enabled", q.IsEnabled)
		},
		New: func(_ context.Context, req *logistics.WarehouseCreateRequest) (*logistics.Warehouse, error) {
			e := &logistics.Warehouse{IsEnabled: basemodel.StatusEnabled}
			applyWarehouseFields(e, &req.WarehouseFields)
			return e, nil
		},
		Apply: func(_ context.Context, e *logistics.Warehouse, req *logistics.WarehouseUpdateRequest) error {
			applyWarehouseFields(e, &req.WarehouseFields)
			return nil
		},
		Unique: []crud.UniqueField[logistics.Warehouse]{
			{Column: "warehouse_code", Label: "仓库编码", Value: func(e *logistics.Warehouse) string { return e.WarehouseCode }},
		},
		BeforeDelete: func(ctx context.Context, e *logistics.Warehouse) error {
			n, err := materials.Count(ctx, query.Where().Eq("warehouse_id", e.ID))
			if err != nil {
				return err
			}
			if n > 0 {
				return system.NewValidationError("id", "仓库仍被物料引用，不能删除")
			}
			return nil
		},
	}
	return &WarehouseService{Service: crud.NewService(repo, def, exportLimit)}
}

func applyWarehouseFields(e *logistics.Warehouse, f *logistics.WarehouseFields) {
	e.WarehouseCode = strings.TrimSpace(f.WarehouseCode)
	e.WarehouseName = strings.TrimSpace(f.WarehouseName)
	e.Address = f.Address
	e.Manager = strings.TrimSpace(f.Manager)
	e.Phone = strings.TrimSpace(f.Phone)
	e.Remark = f.Remark
}
