/**
 * 服务层:角色
 * @date: 2026.03.11
 * @description: 角色增删改查与菜单分配
 */
package system

import (
	"context"
	"strings"

	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/logger"
	"backoffice/internal/pkg/query"
	"backoffice/internal/pkg/utils"
	systemrepo "backoffice/internal/repo/mysql/system"
	"backoffice/internal/service/crud"
)

// RoleService 角色服务
type RoleService struct {
	*crud.Service[system.Role, system.RoleQuery, system.RoleCreateRequest, system.RoleUpdateRequest]
	repo *systemrepo.RoleRepository
}

// NewRoleService 创建角色服务，超级管理员角色不允许删除或停用
func NewRoleService(repo *systemrepo.RoleRepository, exportLimit int) *RoleService {
	def := crud.Definition[system.Role, system.RoleQuery, system.RoleCreateRequest, system.RoleUpdateRequest]{
		Entity:    "角色",
		Operation: "system_role",
		Predicate: func(q *system.RoleQuery) *query.Predicate {
			return query.Where().
				Contains("role_name", q.RoleName).
				Contains("role_code", q.RoleCode).
				Eq("is_enabled", q.IsEnabled)
		},
		New: func(_ context.Context, req *system.RoleCreateRequest) (*system.Role, error) {
			e := &system.Role{IsEnabled: basemodel.StatusEnabled}
			applyRoleFields(e, &req.RoleFields)
			return e, nil
		},
		Apply: func(_ context.Context, e *system.Role, req *system.RoleUpdateRequest) error {
			if e.RoleCode == system.SuperAdminRole && strings.TrimSpace(req.RoleCode) != system.SuperAdminRole {
				return system.NewValidationError("role_code", "超级管理员角色编码不能修改")
			}
			applyRoleFields(e, &req.RoleFields)
			return nil
		},
		Unique: []crud.UniqueField[system.Role]{
			{Column: "role_code", Label: "角色编码", Value: func(e *system.Role) string { return e.RoleCode }},
		},
		BeforeDelete: func(_ context.Context, e *system.Role) error {
			if e.RoleCode == system.SuperAdminRole {
				return system.NewValidationError("role_code", "超级管理员角色不能删除")
			}
			return nil
		},
	}
	return &RoleService{
		Service: crud.NewService[system.Role](repo.Repository, def, exportLimit),
		repo:    repo,
	}
}

func applyRoleFields(e *system.Role, f *system.RoleFields) {
	e.RoleName = strings.TrimSpace(f.RoleName)
	e.RoleCode = strings.TrimSpace(f.RoleCode)
	e.Sort = f.Sort
	e.Remark = f.Remark
}

// ChangeStatus 超级管理员角色不能停用
func (s *RoleService) ChangeStatus(ctx context.Context, id uint64, status basemodel.Status) error {
	role, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if role.RoleCode == system.SuperAdminRole && status != basemodel.StatusEnabled {
		return system.NewValidationError("role_code", "超级管理员角色不能停用")
	}
	return s.Service.ChangeStatus(ctx, id, status)
}

// AssignMenus 全量设置角色菜单
func (s *RoleService) AssignMenus(ctx context.Context, id uint64, menuIDs []uint64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.ReplaceMenus(ctx, id, menuIDs); err != nil {
		return err
	}
	logger.LogBusinessOperation("system_role_assign_menus",
		utils.GetUserIDFromContext(ctx),
		utils.GetUsernameFromContext(ctx),
		utils.GetClientIPFromContext(ctx),
		utils.GetRequestIDFromContext(ctx),
		"success", "分配角色菜单", map[string]interface{}{"id": id, "menu_count": len(menuIDs)})
	return nil
}

// MenuIDs 角色已分配的菜单
func (s *RoleService) MenuIDs(ctx context.Context, id uint64) ([]uint64, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.MenuIDs(ctx, id)
}
