/**
 * 服务层:岗位
 * @date: 2026.03.12
 * @description: 岗位增删改查，岗位编码唯一，仍有员工的岗位不能删除
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

// PositionService 岗位服务
type PositionService struct {
	*crud.Service[hr.Position, hr.PositionQuery, hr.PositionCreateRequest, hr.PositionUpdateRequest]
}

// NewPositionService 创建岗位服务
func NewPositionService(repo *mysql.Repository[hr.Position], employees *mysql.Repository[hr.Employee], exportLimit int) *PositionService {
	def := crud.Definition[hr.Position, hr.PositionQuery, hr.PositionCreateRequest, hr.PositionUpdateRequest]{
		Entity:    "岗位",
		Operation: "hr_position",
		Predicate: func(q *hr.PositionQuery) *query.Predicate {
			return query.Where().
				Contains("position_name", q.PositionName).
				Contains("position_code", q.PositionCode).
				Eq("is_enabled", q.IsEnabled)
		},
		New: func(_ context.Context, req *hr.PositionCreateRequest) (*hr.Position, error) {
			e := &hr.Position{IsEnabled: basemodel.StatusEnabled}
			applyPositionFields(e, &req.PositionFields)
			return e, nil
		},
		Apply: func(_ context.Context, e *hr.Position, req *hr.PositionUpdateRequest) error {
			applyPositionFields(e, &req.PositionFields)
			return nil
		},
		Unique: []crud.UniqueField[hr.Position]{
			{Column: "position_code", Label: "岗位编码", Value: func(e *hr.Position) string { return e.PositionCode }},
		},
		BeforeDelete: func(ctx context.Context, e *hr.Position) error {
			n, err := employees.Count(ctx, query.Where().Eq("position_id", e.ID))
			if err != nil {
				return err
			}
			if n > 0 {
				return system.NewValidationError("id", "岗位下仍有员工，不能删除")
			}
			return nil
		},
	}
	return &PositionService{Service: crud.NewService(repo, def, exportLimit)}
}

func applyPositionFields(e *hr.Position, f *hr.PositionFields) {
	e.PositionName = strings.TrimSpace(f.PositionName)
	e.PositionCode = strings.TrimSpace(f.PositionCode)
	e.Sort = f.Sort
	e.Remark = f.Remark
}
