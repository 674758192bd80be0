/**
 * 服务层:部门
 * @date: 2026.03.11
 * @description: 部门增删改查与部门树
 */
package system

import (
	"context"
	"strings"

	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/query"
	"backoffice/internal/repo/mysql"
	"backoffice/internal/service/crud"
)

// DeptService 部门服务
type DeptService struct {
	*crud.Service[system.Dept, system.DeptQuery, system.DeptCreateRequest, system.DeptUpdateRequest]
}

// NewDeptService 创建部门服务
func NewDeptService(repo *mysql.Repository[system.Dept], exportLimit int) *DeptService {
	parentOf := func(d *system.Dept) uint64 { return d.ParentID }
	def := crud.Definition[system.Dept, system.DeptQuery, system.DeptCreateRequest, system.DeptUpdateRequest]{
		Entity:    "部门",
		Operation: "system_dept",
		Predicate: func(q *system.DeptQuery) *query.Predicate {
			return query.Where().
				Eq("parent_id", q.ParentID).
				Contains("dept_name", q.DeptName).
				Contains("dept_code", q.DeptCode).
				Eq("is_enabled", q.IsEnabled)
		},
		New: func(ctx context.Context, req *system.DeptCreateRequest) (*system.Dept, error) {
			e := &system.Dept{IsEnabled: basemodel.StatusEnabled}
			applyDeptFields(e, &req.DeptFields)
			return e, checkParent(ctx, repo, "部门", 0, e.ParentID, parentOf)
		},
		Apply: func(ctx context.Context, e *system.Dept, req *system.DeptUpdateRequest) error {
			applyDeptFields(e, &req.DeptFields)
			return checkParent(ctx, repo, "部门", e.ID, e.ParentID, parentOf)
		},
		Unique: []crud.UniqueField[system.Dept]{
			{Column: "dept_code", Label: "部门编码", Value: func(e *system.Dept) string { return e.DeptCode }},
		},
		BeforeDelete: func(ctx context.Context, e *system.Dept) error {
			return checkNoChildren(ctx, repo, "部门", e.ID)
		},
	}
	return &DeptService{Service: crud.NewService(repo, def, exportLimit)}
}

func applyDeptFields(e *system.Dept, f *system.DeptFields) {
	e.ParentID = f.ParentID
	e.DeptName = strings.TrimSpace(f.DeptName)
	e.DeptCode = strings.TrimSpace(f.DeptCode)
	e.Leader = f.Leader
	e.Phone = f.Phone
	e.Sort = f.Sort
}

// Tree 部门树，q 可按名称、状态过滤
func (s *DeptService) Tree(ctx context.Context, q *system.DeptQuery) ([]*system.DeptNode, error) {
	depts, err := s.Export(ctx, q, query.PageRequest{OrderBy: "sort", OrderDirection: query.Asc})
	if err != nil {
		return nil, err
	}
	return DeptTree(depts), nil
}
