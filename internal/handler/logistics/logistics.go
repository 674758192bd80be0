/**
 * 处理器:物流
 * @date: 2026.03.17
 * @description: 仓库与物料的增删改查、导入导出
 */
package logistics

import (
	"backoffice/internal/handler"
	"backoffice/internal/model/logistics"
	"backoffice/internal/pkg/excel"
	logisticssvc "backoffice/internal/service/logistics"
)

var materialStatusLabels = map[logistics.MaterialStatus]string{
	logistics.MaterialDraft:    "草稿",
	logistics.MaterialActive:   "生效",
	logistics.MaterialArchived: "归档",
}

func parseMaterialStatus(s string) logistics.MaterialStatus {
	for k, v := range materialStatusLabels {
		if s == v {
			return k
		}
	}
	return logistics.MaterialStatus(s)
}

var warehouseSheet = excel.Sheet[logistics.Warehouse]{
	Name: "仓库",
	Columns: []excel.Column[logistics.Warehouse]{
		{Header: "ID", Value: func(e *logistics.Warehouse) interface{} { return e.ID }},
		{Header: "仓库编码", Width: 16, Value: func(e *logistics.Warehouse) interface{} { return e.WarehouseCode }},
		{Header: "仓库名称", Width: 20, Value: func(e *logistics.Warehouse) interface{} { return e.WarehouseName }},
		{Header: "地址", Width: 36, Value: func(e *logistics.Warehouse) interface{} { return e.Address }},
		{Header: "负责人", Value: func(e *logistics.Warehouse) interface{} { return e.Manager }},
		{Header: "联系电话", Width: 14, Value: func(e *logistics.Warehouse) interface{} { return e.Phone }},
		{Header: "状态", Value: func(e *logistics.Warehouse) interface{} { return excel.FormatStatus(e.IsEnabled) }},
		{Header: "备注", Width: 30, Value: func(e *logistics.Warehouse) interface{} { return e.Remark }},
	},
}

var warehouseImportSheet = excel.Sheet[logistics.WarehouseCreateRequest]{
	Name: "仓库",
	Columns: []excel.Column[logistics.WarehouseCreateRequest]{
		{Header: "仓库编码", Width: 16, Parse: func(r *logistics.WarehouseCreateRequest, s string) error { r.WarehouseCode = s; return nil }},
		{Header: "仓库名称", Width: 20, Parse: func(r *logistics.WarehouseCreateRequest, s string) error { r.WarehouseName = s; return nil }},
		{Header: "地址", Width: 36, Parse: func(r *logistics.WarehouseCreateRequest, s string) error { r.Address = s; return nil }},
		{Header: "负责人", Parse: func(r *logistics.WarehouseCreateRequest, s string) error { r.Manager = s; return nil }},
		{Header: "联系电话", Width: 14, Parse: func(r *logistics.WarehouseCreateRequest, s string) error { r.Phone = s; return nil }},
		{Header: "备注", Width: 30, Parse: func(r *logistics.WarehouseCreateRequest, s string) error { r.Remark = s; return nil }},
	},
}

var materialSheet = excel.Sheet[logistics.Material]{
	Name: "物料",
	Columns: []excel.Column[logistics.Material]{
		{Header: "ID", Value: func(e *logistics.Material) interface{} { return e.ID }},
		{Header: "物料编码", Width: 16, Value: func(e *logistics.Material) interface{} { return e.MaterialCode }},
		{Header: "物料名称", Width: 20, Value: func(e *logistics.Material) interface{} { return e.MaterialName }},
		{Header: "规格型号", Width: 16, Value: func(e *logistics.Material) interface{} { return e.Spec }},
		{Header: "计量单位", Value: func(e *logistics.Material) interface{} { return e.Unit }},
		{Header: "分类", Value: func(e *logistics.Material) interface{} { return e.Category }},
		{Header: "默认仓库ID", Value: func(e *logistics.Material) interface{} { return e.WarehouseID }},
		{Header: "安全库存", Value: func(e *logistics.Material) interface{} { return e.SafetyStock }},
		{Header: "物料状态", Value: func(e *logistics.Material) interface{} { return materialStatusLabels[e.Status] }},
		{Header: "状态", Value: func(e *logistics.Material) interface{} { return excel.FormatStatus(e.IsEnabled) }},
		{Header: "备注", Width: 30, Value: func(e *logistics.Material) interface{} { return e.Remark }},
	},
}

var materialImportSheet = excel.Sheet[logistics.MaterialCreateRequest]{
	Name: "物料",
	Columns: []excel.Column[logistics.MaterialCreateRequest]{
		{Header: "物料编码", Width: 16, Parse: func(r *logistics.MaterialCreateRequest, s string) error { r.MaterialCode = s; return nil }},
		{Header: "物料名称", Width: 20, Parse: func(r *logistics.MaterialCreateRequest, s string) error { r.MaterialName = s; return nil }},
		{Header: "规格型号", Width: 16, Parse: func(r *logistics.MaterialCreateRequest, s string) error { r.Spec = s; return nil }},
		{Header: "计量单位", Parse: func(r *logistics.MaterialCreateRequest, s string) error { r.Unit = s; return nil }},
		{Header: "分类", Parse: func(r *logistics.MaterialCreateRequest, s string) error { r.Category = s; return nil }},
		{Header: "默认仓库ID", Parse: func(r *logistics.MaterialCreateRequest, s string) (err error) { r.WarehouseID, err = excel.ParseUint(s); return }},
		{Header: "安全库存", Parse: func(r *logistics.MaterialCreateRequest, s string) (err error) { r.SafetyStock, err = excel.ParseFloat(s); return }},
		{Header: "物料状态", Parse: func(r *logistics.MaterialCreateRequest, s string) error { r.Status = parseMaterialStatus(s); return nil }},
		{Header: "备注", Width: 30, Parse: func(r *logistics.MaterialCreateRequest, s string) error { r.Remark = s; return nil }},
	},
}

// WarehouseHandler 仓库处理器
type WarehouseHandler struct {
	*handler.CRUDHandler[logistics.Warehouse, logistics.WarehouseQuery, logistics.WarehouseCreateRequest, logistics.WarehouseUpdateRequest]
}

// NewWarehouseHandler 创建仓库处理器
func NewWarehouseHandler(service *logisticssvc.WarehouseService, maxUploadSize int64) *WarehouseHandler {
	return &WarehouseHandler{
		CRUDHandler: handler.NewCRUDHandler[logistics.Warehouse, logistics.WarehouseQuery, logistics.WarehouseCreateRequest, logistics.WarehouseUpdateRequest](
			service, warehouseSheet, warehouseImportSheet, maxUploadSize),
	}
}

// MaterialHandler 物料处理器
type MaterialHandler struct {
	*handler.CRUDHandler[logistics.Material, logistics.MaterialQuery, logistics.MaterialCreateRequest, logistics.MaterialUpdateRequest]
}

// NewMaterialHandler 创建物料处理器
func NewMaterialHandler(service *logisticssvc.MaterialService, maxUploadSize int64) *MaterialHandler {
	return &MaterialHandler{
		CRUDHandler: handler.NewCRUDHandler[logistics.Material, logistics.MaterialQuery, logistics.MaterialCreateRequest, logistics.MaterialUpdateRequest](
			service, materialSheet, materialImportSheet, maxUploadSize),
	}
}
