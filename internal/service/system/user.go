/**
 * 服务层:用户
 * @date: 2026.03.11
 * @description: 用户增删改查、角色分配、密码重置与权限计算
 */
package system

import (
	"context"
	"fmt"
	"strings"

	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/auth"
	"backoffice/internal/pkg/logger"
	"backoffice/internal/pkg/query"
	"backoffice/internal/pkg/utils"
	systemrepo "backoffice/internal/repo/mysql/system"
	"backoffice/internal/service/crud"
)

// UserService 用户服务
type UserService struct {
	*crud.Service[system.User, system.UserQuery, system.UserCreateRequest, system.UserUpdateRequest]
	repo      *systemrepo.UserRepository
	passwords *auth.PasswordManager
}

// NewUserService 创建用户服务
func NewUserService(repo *systemrepo.UserRepository, passwords *auth.PasswordManager, exportLimit int) *UserService {
	s := &UserService{repo: repo, passwords: passwords}
	def := crud.Definition[system.User, system.UserQuery, system.UserCreateRequest, system.UserUpdateRequest]{
		Entity:    "用户",
		Operation: "system_user",
		Predicate: func(q *system.UserQuery) *query.Predicate {
			return query.Where().
				Contains("username", q.Username).
				Contains("nickname", q.Nickname).
				Contains("phone", q.Phone).
				Eq("dept_id", q.DeptID).
				Eq("is_enabled", q.IsEnabled).
				Between("created_at", q.StartTime, query.DayEnd(q.EndTime))
		},
		New: func(_ context.Context, req *system.UserCreateRequest) (*system.User, error) {
			hash, err := s.hashPassword(req.Password)
			if err != nil {
				return nil, err
			}
			e := &system.User{
				Username:     strings.TrimSpace(req.Username),
				PasswordHash: hash,
				IsEnabled:    basemodel.StatusEnabled,
			}
			applyUserFields(e, &req.UserFields)
			return e, nil
		},
		Apply: func(_ context.Context, e *system.User, req *system.UserUpdateRequest) error {
			applyUserFields(e, &req.UserFields)
			return nil
		},
		Unique: []crud.UniqueField[system.User]{
			{Column: "username", Label: "用户名", Value: func(e *system.User) string { return e.Username }, Global: true},
		},
		BeforeDelete: func(ctx context.Context, e *system.User) error {
			if e.ID == utils.GetUserIDFromContext(ctx) {
				return system.NewValidationError("id", "不能删除当前登录用户")
			}
			return nil
		},
	}
	s.Service = crud.NewService[system.User](repo.Repository, def, exportLimit)
	return s
}

func applyUserFields(e *system.User, f *system.UserFields) {
	e.Nickname = strings.TrimSpace(f.Nickname)
	e.Email = strings.TrimSpace(f.Email)
	e.Phone = strings.TrimSpace(f.Phone)
	e.DeptID = f.DeptID
	e.Remark = f.Remark
}

func (s *UserService) hashPassword(password string) (string, error) {
	if err := s.passwords.ValidateStrength(password); err != nil {
		return "", system.NewValidationError("password", err.Error())
	}
	hash, err := s.passwords.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// GetWithRoles 获取用户并加载角色
func (s *UserService) GetWithRoles(ctx context.Context, id uint64) (*system.User, error) {
	user, err := s.repo.GetByID(ctx, id, "Roles")
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, system.NewNotFoundError("用户", id)
	}
	return user, nil
}

// ChangeStatus 不能停用当前登录用户
func (s *UserService) ChangeStatus(ctx context.Context, id uint64, status basemodel.Status) error {
	if id == utils.GetUserIDFromContext(ctx) && status != basemodel.StatusEnabled {
		return system.NewValidationError("id", "不能停用当前登录用户")
	}
	return s.Service.ChangeStatus(ctx, id, status)
}

// AssignRoles 全量设置用户角色
func (s *UserService) AssignRoles(ctx context.Context, id uint64, roleIDs []uint64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.ReplaceRoles(ctx, id, roleIDs); err != nil {
		return err
	}
	s.logOperation(ctx, "system_user_assign_roles", "分配用户角色", map[string]interface{}{"id": id, "role_ids": roleIDs})
	return nil
}

// ResetPassword 重置密码
func (s *UserService) ResetPassword(ctx context.Context, id uint64, password string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"password_hash": hash}); err != nil {
		return err
	}
	s.logOperation(ctx, "system_user_reset_password", "重置用户密码", map[string]interface{}{"id": id})
	return nil
}

// Permissions 用户的权限码
func (s *UserService) Permissions(ctx context.Context, id uint64) ([]string, error) {
	return s.repo.Permissions(ctx, id)
}

func (s *UserService) logOperation(ctx context.Context, op, message string, extra map[string]interface{}) {
	logger.LogBusinessOperation(op,
		utils.GetUserIDFromContext(ctx),
		utils.GetUsernameFromContext(ctx),
		utils.GetClientIPFromContext(ctx),
		utils.GetRequestIDFromContext(ctx),
		"success", message, extra)
}
