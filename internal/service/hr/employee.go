/**
 * 服务层:员工
 * @date: 2026.03.12
 * @description: 员工档案增删改查，工号唯一，入职日期区间查询
 */
package hr

import (
	"context"
	"strings"

	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/hr"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/query"
	"backoffice/internal/repo/mysql"
	"backoffice/internal/service/crud"
)

// EmployeeService 员工服务
type EmployeeService struct {
	*crud.Service[hr.Employee, hr.EmployeeQuery, hr.EmployeeCreateRequest, hr.EmployeeUpdateRequest]
}

// NewEmployeeService 创建员工服务，positions 用于校验所属岗位
func NewEmployeeService(repo *mysql.Repository[hr.Employee], positions *mysql.Repository[hr.Position], exportLimit int) *EmployeeService {
	checkPosition := func(ctx context.Context, id uint64) error {
		if id == 0 {
			return nil
		}
		p, err := positions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return system.NewValidationError("position_id", "岗位不存在")
		}
		return nil
	}
	def := crud.Definition[hr.Employee, hr.EmployeeQuery, hr.EmployeeCreateRequest, hr.EmployeeUpdateRequest]{
		Entity:    "员工",
		Operation: "hr_employee",
		Predicate: func(q *hr.EmployeeQuery) *query.Predicate {
			return query.Where().
				Contains("employee_no", q.EmployeeNo).
				Contains("name", q.Name).
				Eq("dept_id", q.DeptID).
				Eq("position_id", q.PositionID).
				Eq("status", q.Status).
				Eq("is_enabled", q.IsEnabled).
				Between("hire_date", q.HireDateStart, query.DayEnd(q.HireDateEnd))
		},
		New: func(ctx context.Context, req *hr.EmployeeCreateRequest) (*hr.Employee, error) {
			e := &hr.Employee{IsEnabled: basemodel.StatusEnabled}
			applyEmployeeFields(e, &req.EmployeeFields)
			return e, checkPosition(ctx, e.PositionID)
		},
		Apply: func(ctx context.Context, e *hr.Employee, req *hr.EmployeeUpdateRequest) error {
			applyEmployeeFields(e, &req.EmployeeFields)
			return checkPosition(ctx, e.PositionID)
		},
		Unique: []crud.UniqueField[hr.Employee]{
			{Column: "employee_no", Label: "工号", Value: func(e *hr.Employee) string { return e.EmployeeNo }},
		},
	}
	return &EmployeeService{Service: crud.NewService(repo, def, exportLimit)}
}

func applyEmployeeFields(e *hr.Employee, f *hr.EmployeeFields) {
	e.EmployeeNo = strings.TrimSpace(f.EmployeeNo)
	e.Name = strings.TrimSpace(f.Name)
	e.Gender = f.Gender
	if e.Gender == "" {
		e.Gender = hr.GenderUnknown
	}
	e.DeptID = f.DeptID
	e.PositionID = f.PositionID
	e.Phone = strings.TrimSpace(f.Phone)
	e.Email = strings.TrimSpace(f.Email)
	e.HireDate = f.HireDate
	e.Status = f.Status
	if e.Status == "" {
		e.Status = hr.EmployeeActive
	}
	e.Remark = f.Remark
}
