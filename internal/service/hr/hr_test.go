package hr

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/model/hr"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/database/dbtest"
	"backoffice/internal/pkg/query"
	hrrepo "backoffice/internal/repo/mysql/hr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T) (*PositionService, *EmployeeService) {
	db := dbtest.New(t)
	positions := hrrepo.NewPositionRepository(db)
	employees := hrrepo.NewEmployeeRepository(db)
	return NewPositionService(positions, employees, 0), NewEmployeeService(employees, positions, 0)
}

func day(s string) *time.Time {
	t, _ := time.ParseInLocation("2006-01-02", s, time.Local)
	return &t
}

func TestEmployeeService_HireDateRangeIncludesEndDay(t *testing.T) {
	_, employees := newServices(t)
	ctx := context.Background()

	for no, hired := range map[string]string{"E001": "2025-01-10", "E002": "2025-02-01", "E003": "2025-03-15"} {
		_, err := employees.Create(ctx, &hr.EmployeeCreateRequest{EmployeeFields: hr.EmployeeFields{
			EmployeeNo: no, Name: no, HireDate: day(hired),
		}})
		require.NoError(t, err)
	}

	res, err := employees.List(ctx, &hr.EmployeeQuery{
		HireDateStart: *day("2025-01-10"),
		HireDateEnd:   *day("2025-02-01"),
	}, query.PageRequest{OrderBy: "employee_no", OrderDirection: query.Asc})
	require.NoError(t, err)
	require.Equal(t, int64(2), res.Total)
	assert.Equal(t, "E001", res.Items[0].EmployeeNo)
	assert.Equal(t, "E002", res.Items[1].EmployeeNo)
	assert.Equal(t, hr.EmployeeActive, res.Items[0].Status)
	assert.Equal(t, hr.GenderUnknown, res.Items[0].Gender)
}

func TestEmployeeService_RulesAndImport(t *testing.T) {
	positions, employees := newServices(t)
	ctx := context.Background()

	pid, err := positions.Create(ctx, &hr.PositionCreateRequest{PositionFields: hr.PositionFields{PositionName: "工程师", PositionCode: "ENG"}})
	require.NoError(t, err)

	_, err = employees.Create(ctx, &hr.EmployeeCreateRequest{EmployeeFields: hr.EmployeeFields{EmployeeNo: "E1", Name: "张三", PositionID: 404}})
	assert.True(t, errors.Is(err, system.ErrValidation))

	result, err := employees.Import(ctx, model.RowsOf([]hr.EmployeeCreateRequest{
		{EmployeeFields: hr.EmployeeFields{EmployeeNo: "E1", Name: "张三", PositionID: pid}},
		{EmployeeFields: hr.EmployeeFields{EmployeeNo: "E1", Name: "重复"}},
		{EmployeeFields: hr.EmployeeFields{EmployeeNo: "E2", Name: "李四", Email: "not-an-email"}},
		{EmployeeFields: hr.EmployeeFields{EmployeeNo: "E3", Name: "王五", Status: hr.EmployeeResigned}},
	}))
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 2, result.Fail)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "第2行")
	assert.Contains(t, result.Errors[1], "第3行")

	// 岗位下有员工时不能删除
	assert.True(t, errors.Is(positions.Delete(ctx, pid), system.ErrValidation))

	_, err = positions.Create(ctx, &hr.PositionCreateRequest{PositionFields: hr.PositionFields{PositionName: "其他", PositionCode: "ENG"}})
	assert.True(t, errors.Is(err, system.ErrConflict))
}
