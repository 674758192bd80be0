/**
 * 工具类:分页查询
 * @date: 2026.03.03
 * @description: 通用分页请求与分页结果
 * @func:
 *	1.PageRequest 归一化(页码/页大小/排序方向)
 *	2.PageResult 泛型分页容器
 */
package query

import "strings"

const (
	DefaultPageNum  = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Direction 排序方向
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// PageRequest 通用分页请求参数，从查询串绑定
type PageRequest struct {
	PageNum        int       `form:"page_num" json:"page_num"`               // 页码，从1开始
	PageSize       int       `form:"page_size" json:"page_size"`             // 每页条数
	OrderBy        string    `form:"order_by" json:"order_by"`               // 排序字段(对外名称)
	OrderDirection Direction `form:"order_direction" json:"order_direction"` // asc / desc
}

// Normalize 归一化分页参数，返回副本
func (p PageRequest) Normalize() PageRequest {
	if p.PageNum < 1 {
		p.PageNum = DefaultPageNum
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if Direction(strings.ToLower(string(p.OrderDirection))) == Asc {
		p.OrderDirection = Asc
	} else {
		p.OrderDirection = Desc
	}
	p.OrderBy = strings.TrimSpace(p.OrderBy)
	return p
}

// Offset 归一化后的偏移量
func (p PageRequest) Offset() int {
	n := p.Normalize()
	return (n.PageNum - 1) * n.PageSize
}

// PageResult 通用分页返回容器
// 不变式：len(Items) <= PageSize，Total >= len(Items)
type PageResult[T any] struct {
	Total      int64 `json:"total"`       // 匹配总条数(忽略分页)
	PageNum    int   `json:"page_num"`    // 当前页码
	PageSize   int   `json:"page_size"`   // 每页条数
	TotalPages int   `json:"total_pages"` // 总页数
	Items      []T   `json:"items"`       // 当前页数据
}

// NewPageResult 组装分页结果
func NewPageResult[T any](items []T, total int64, page PageRequest) *PageResult[T] {
	page = page.Normalize()
	if items == nil {
		items = make([]T, 0)
	}
	return &PageResult[T]{
		Total:      total,
		PageNum:    page.PageNum,
		PageSize:   page.PageSize,
		TotalPages: int((total + int64(page.PageSize) - 1) / int64(page.PageSize)),
		Items:      items,
	}
}

// MapPage 把实体分页结果映射为 DTO 分页结果
func MapPage[E any, D any](src *PageResult[E], fn func(E) D) *PageResult[D] {
	items := make([]D, 0, len(src.Items))
	for _, item := range src.Items {
		items = append(items, fn(item))
	}
	return &PageResult[D]{
		Total:      src.Total,
		PageNum:    src.PageNum,
		PageSize:   src.PageSize,
		TotalPages: src.TotalPages,
		Items:      items,
	}
}
