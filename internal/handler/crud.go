/**
 * 处理器:通用增删改查
 * @date: 2026.03.15
 * @description: 各实体共用的列表、详情、增删改、状态、导入导出接口
 * @func:
 *	1.List / Get / Create / Update / Delete / ChangeStatus
 *	2.Export 导出 xlsx，Template 导入模板
 *	3.Import 接收 xlsx(multipart 字段 file)或 JSON 数组
 */
package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/excel"
	"backoffice/internal/pkg/query"

	"github.com/gin-gonic/gin"
)

// DefaultMaxUploadSize 导入文件大小上限
const DefaultMaxUploadSize int64 = 10 << 20

// CRUDService 通用处理器依赖的服务能力，crud.Service 及其包装均满足
type CRUDService[E, Q, C, U any] interface {
	Entity() string
	List(ctx context.Context, q *Q, page query.PageRequest) (*query.PageResult[E], error)
	Get(ctx context.Context, id uint64) (*E, error)
	Create(ctx context.Context, req *C) (uint64, error)
	Update(ctx context.Context, id uint64, req *U) (*E, error)
	Delete(ctx context.Context, id uint64) error
	ChangeStatus(ctx context.Context, id uint64, status basemodel.Status) error
	Export(ctx context.Context, q *Q, page query.PageRequest) ([]E, error)
	Import(ctx context.Context, rows []model.ImportRow[C]) (*model.ImportResult, error)
}

// CRUDHandler 通用增删改查处理器
type CRUDHandler[E, Q, C, U any] struct {
	service       CRUDService[E, Q, C, U]
	exportSheet   excel.Sheet[E]
	importSheet   excel.Sheet[C]
	maxUploadSize int64
}

// NewCRUDHandler 创建通用处理器，maxUploadSize<=0 时使用默认上限
func NewCRUDHandler[E, Q, C, U any](service CRUDService[E, Q, C, U], exportSheet excel.Sheet[E], importSheet excel.Sheet[C], maxUploadSize int64) *CRUDHandler[E, Q, C, U] {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &CRUDHandler[E, Q, C, U]{
		service:       service,
		exportSheet:   exportSheet,
		importSheet:   importSheet,
		maxUploadSize: maxUploadSize,
	}
}

// bindQuery 绑定查询条件与分页排序参数
func bindQuery[Q any](c *gin.Context) (*Q, query.PageRequest, bool) {
	var q Q
	var page query.PageRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		BindError(c, err)
		return nil, page, false
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		BindError(c, err)
		return nil, page, false
	}
	return &q, page, true
}

// List 分页列表
func (h *CRUDHandler[E, Q, C, U]) List(c *gin.Context) {
	q, page, ok := bindQuery[Q](c)
	if !ok {
		return
	}
	result, err := h.service.List(c.Request.Context(), q, page)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, "查询成功", result)
}

// Get 详情
func (h *CRUDHandler[E, Q, C, U]) Get(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	entity, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, "查询成功", entity)
}

// Create 新增
func (h *CRUDHandler[E, Q, C, U]) Create(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	id, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusCreated, h.service.Entity()+"创建成功", model.IDResponse{ID: id})
}

// Update 修改
func (h *CRUDHandler[E, Q, C, U]) Update(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	var req U
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	entity, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, h.service.Entity()+"修改成功", entity)
}

// Delete 删除
func (h *CRUDHandler[E, Q, C, U]) Delete(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, h.service.Entity()+"删除成功", nil)
}

// ChangeStatus 启用/停用
func (h *CRUDHandler[E, Q, C, U]) ChangeStatus(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	var req model.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	if err := h.service.ChangeStatus(c.Request.Context(), id, *req.IsEnabled); err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, "状态修改成功", nil)
}

// Export 按查询条件导出 xlsx
func (h *CRUDHandler[E, Q, C, U]) Export(c *gin.Context) {
	q, page, ok := bindQuery[Q](c)
	if !ok {
		return
	}
	items, err := h.service.Export(c.Request.Context(), q, page)
	if err != nil {
		Fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := h.exportSheet.Write(&buf, items); err != nil {
		Fail(c, fmt.Errorf("write excel: %w", err))
		return
	}
	SendExcel(c, h.exportSheet.Name+"_"+time.Now().Format("20060102150405")+".xlsx", buf.Bytes())
}

// Template 导入模板
func (h *CRUDHandler[E, Q, C, U]) Template(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.importSheet.Template(&buf); err != nil {
		Fail(c, fmt.Errorf("write excel: %w", err))
		return
	}
	SendExcel(c, h.importSheet.Name+"_导入模板.xlsx", buf.Bytes())
}

// Import 批量导入，单行失败不影响其他行
func (h *CRUDHandler[E, Q, C, U]) Import(c *gin.Context) {
	rows, err := h.readImportRows(c)
	if err != nil {
		if errors.Is(err, excel.ErrEmptyFile) {
			err = system.NewValidationError("file", err.Error())
		}
		Fail(c, err)
		return
	}
	result, err := h.service.Import(c.Request.Context(), rows)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, fmt.Sprintf("导入完成: 成功%d条, 失败%d条", result.Success, result.Fail), result)
}

func (h *CRUDHandler[E, Q, C, U]) readImportRows(c *gin.Context) ([]model.ImportRow[C], error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var items []C
		if err := c.ShouldBindJSON(&items); err != nil {
			return nil, system.NewValidationError("body", "导入数据必须是 JSON 数组")
		}
		return model.RowsOf(items), nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, system.NewValidationError("file", fmt.Sprintf("文件不能超过%dMB", h.maxUploadSize>>20))
		}
		return nil, system.NewValidationError("file", "请上传 xlsx 文件")
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".xlsx") {
		return nil, system.NewValidationError("file", "仅支持 xlsx 文件")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	rows, err := h.importSheet.Read(f)
	if err != nil && !errors.Is(err, excel.ErrEmptyFile) {
		return nil, system.NewValidationError("file", "无法解析 xlsx 文件")
	}
	return rows, err
}

// SendExcel 以附件形式返回 xlsx 文件
func SendExcel(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, excel.ContentType, data)
}
