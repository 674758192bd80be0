package logistics

import (
	"context"
	"errors"
	"testing"

	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/logistics"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/database/dbtest"
	"backoffice/internal/pkg/query"
	lgrepo "backoffice/internal/repo/mysql/logistics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T) (*WarehouseService, *MaterialService) {
	db := dbtest.New(t)
	warehouses := lgrepo.NewWarehouseRepository(db)
	materials := lgrepo.NewMaterialRepository(db)
	return NewWarehouseService(warehouses, materials, 0), NewMaterialService(materials, warehouses, 0)
}

func TestMaterialService_SafetyStockRange(t *testing.T) {
	_, materials := newServices(t)
	ctx := context.Background()

	for code, stock := range map[string]float64{"M1": 0, "M2": 10, "M3": 25.5, "M4": 100} {
		_, err := materials.Create(ctx, &logistics.MaterialCreateRequest{MaterialFields: logistics.MaterialFields{
			MaterialCode: code, MaterialName: code, SafetyStock: stock,
		}})
		require.NoError(t, err)
	}

	lo, hi := 10.0, 25.5
	res, err := materials.List(ctx, &logistics.MaterialQuery{SafetyStockMin: &lo, SafetyStockMax: &hi},
		query.PageRequest{OrderBy: "material_code", OrderDirection: query.Asc})
	require.NoError(t, err)
	require.Equal(t, int64(2), res.Total)
	assert.Equal(t, "M2", res.Items[0].MaterialCode)
	assert.Equal(t, "M3", res.Items[1].MaterialCode)
	assert.Equal(t, logistics.MaterialDraft, res.Items[0].Status)

	zero := 0.0
	res, err = materials.List(ctx, &logistics.MaterialQuery{SafetyStockMax: &zero}, query.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total, "zero is a real bound")
}

func TestMaterialService_WarehouseReference(t *testing.T) {
	warehouses, materials := newServices(t)
	ctx := context.Background()

	wid, err := warehouses.Create(ctx, &logistics.WarehouseCreateRequest{WarehouseFields: logistics.WarehouseFields{WarehouseCode: "WH1", WarehouseName: "一号仓"}})
	require.NoError(t, err)

	_, err = materials.Create(ctx, &logistics.MaterialCreateRequest{MaterialFields: logistics.MaterialFields{MaterialCode: "M1", MaterialName: "螺丝", WarehouseID: wid + 1}})
	assert.True(t, errors.Is(err, system.ErrValidation))

	mid, err := materials.Create(ctx, &logistics.MaterialCreateRequest{MaterialFields: logistics.MaterialFields{MaterialCode: "M1", MaterialName: "螺丝", WarehouseID: wid}})
	require.NoError(t, err)

	assert.True(t, errors.Is(warehouses.Delete(ctx, wid), system.ErrValidation))

	_, err = materials.Update(ctx, mid, &logistics.MaterialUpdateRequest{MaterialFields: logistics.MaterialFields{MaterialCode: "M1", MaterialName: "螺丝", Status: logistics.MaterialArchived}})
	require.NoError(t, err)
	require.NoError(t, warehouses.Delete(ctx, wid))

	_, err = warehouses.Get(ctx, wid)
	assert.True(t, errors.Is(err, system.ErrNotFound))

	require.NoError(t, materials.ChangeStatus(ctx, mid, basemodel.StatusDisabled))
	require.NoError(t, materials.ChangeStatus(ctx, mid, basemodel.StatusDisabled))
	got, err := materials.Get(ctx, mid)
	require.NoError(t, err)
	assert.Equal(t, basemodel.StatusDisabled, got.IsEnabled)
	assert.Equal(t, logistics.MaterialArchived, got.Status)
}
