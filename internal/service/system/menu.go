/**
 * 服务层:菜单
 * @date: 2026.03.11
 * @description: 菜单增删改查与菜单树，按钮的权限编码全局唯一
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

// MenuService 菜单服务
type MenuService struct {
	*crud.Service[system.Menu, system.MenuQuery, system.MenuCreateRequest, system.MenuUpdateRequest]
}

// NewMenuService 创建菜单服务
func NewMenuService(repo *mysql.Repository[system.Menu], exportLimit int) *MenuService {
	parentOf := func(m *system.Menu) uint64 { return m.ParentID }
	def := crud.Definition[system.Menu, system.MenuQuery, system.MenuCreateRequest, system.MenuUpdateRequest]{
		Entity:    "菜单",
		Operation: "system_menu",
		Predicate: func(q *system.MenuQuery) *query.Predicate {
			return query.Where().
				Eq("parent_id", q.ParentID).
				Contains("menu_name", q.MenuName).
				Eq("menu_type", q.MenuType).
				Contains("permission", q.Permission).
				Eq("is_enabled", q.IsEnabled)
		},
		New: func(ctx context.Context, req *system.MenuCreateRequest) (*system.Menu, error) {
			e := &system.Menu{IsEnabled: basemodel.StatusEnabled}
			applyMenuFields(e, &req.MenuFields)
			return e, checkParent(ctx, repo, "菜单", 0, e.ParentID, parentOf)
		},
		Apply: func(ctx context.Context, e *system.Menu, req *system.MenuUpdateRequest) error {
			applyMenuFields(e, &req.MenuFields)
			return checkParent(ctx, repo, "菜单", e.ID, e.ParentID, parentOf)
		},
		Unique: []crud.UniqueField[system.Menu]{
			{Column: "permission", Label: "权限编码", Value: func(e *system.Menu) string { return e.Permission }},
		},
		BeforeDelete: func(ctx context.Context, e *system.Menu) error {
			return checkNoChildren(ctx, repo, "菜单", e.ID)
		},
	}
	return &MenuService{Service: crud.NewService(repo, def, exportLimit)}
}

func applyMenuFields(e *system.Menu, f *system.MenuFields) {
	e.ParentID = f.ParentID
	e.MenuName = strings.TrimSpace(f.MenuName)
	e.MenuType = f.MenuType
	if e.MenuType == "" {
		e.MenuType = system.MenuTypeMenu
	}
	e.Path = f.Path
	e.Component = f.Component
	e.Icon = f.Icon
	e.Permission = strings.TrimSpace(f.Permission)
	e.Sort = f.Sort
}

// Tree 菜单树
func (s *MenuService) Tree(ctx context.Context, q *system.MenuQuery) ([]*system.MenuNode, error) {
	menus, err := s.Export(ctx, q, query.PageRequest{OrderBy: "sort", OrderDirection: query.Asc})
	if err != nil {
		return nil, err
	}
	return MenuTree(menus), nil
}
