package query

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SortSpec 排序白名单：对外字段名 -> 数据库列名
// 未登记的字段回退到 Default，永远不会原样拼进 SQL
type SortSpec struct {
	Fields  map[string]string
	Default string
	// DefaultDirection 未指定方向时使用，零值为降序
	DefaultDirection Direction
}

// NewSortSpec 创建排序白名单
func NewSortSpec(defaultColumn string, fields map[string]string) SortSpec {
	if fields == nil {
		fields = map[string]string{}
	}
	return SortSpec{Fields: fields, Default: defaultColumn}
}

// Resolve 解析排序列与方向
func (s SortSpec) Resolve(page PageRequest) (string, bool) {
	column := s.Default
	if col, ok := s.Fields[page.OrderBy]; ok && page.OrderBy != "" {
		column = col
	}
	if column == "" {
		column = "id"
	}
	desc := true
	switch {
	case page.OrderDirection != "":
		desc = page.Normalize().OrderDirection == Desc
	case s.DefaultDirection == Asc:
		desc = false
	}
	return column, desc
}

// Scope 排序作用域，主排序之外追加 id 作为稳定的次级排序
func (s SortSpec) Scope(page PageRequest) func(*gorm.DB) *gorm.DB {
	column, desc := s.Resolve(page)
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
		if column != "id" {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
		}
		return db
	}
}
