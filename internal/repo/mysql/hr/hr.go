/**
 * 仓库层:人事
 * @date: 2026.03.12
 * @description: 岗位、员工仓库与排序白名单
 */
package hr

import (
	"backoffice/internal/model/hr"
	"backoffice/internal/pkg/query"
	"backoffice/internal/repo/mysql"

	"gorm.io/gorm"
)

// NewPositionRepository 岗位仓库，默认按 sort 升序
func NewPositionRepository(db *gorm.DB) *mysql.Repository[hr.Position] {
	spec := query.NewSortSpec("sort", map[string]string{
		"id":            "id",
		"sort":          "sort",
		"position_name": "position_name",
		"position_code": "position_code",
		"created_at":    "created_at",
	})
	spec.DefaultDirection = query.Asc
	return mysql.NewRepository[hr.Position](db, spec)
}

// NewEmployeeRepository 员工仓库
func NewEmployeeRepository(db *gorm.DB) *mysql.Repository[hr.Employee] {
	return mysql.NewRepository[hr.Employee](db, query.NewSortSpec("id", map[string]string{
		"id":          "id",
		"employee_no": "employee_no",
		"name":        "name",
		"hire_date":   "hire_date",
		"created_at":  "created_at",
		"updated_at":  "updated_at",
	}))
}
