/**
 * 仓库层:系统模块
 * @date: 2026.03.11
 * @description: 租户、部门、菜单、角色、用户仓库
 * @func:
 *	1.用户按用户名查询(不受租户过滤，登录时使用)
 *	2.用户权限码 = 已启用角色的已启用菜单权限并集
 *	3.用户角色、角色菜单全量替换
 */
package system

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/query"
	"backoffice/internal/repo/mysql"

	"gorm.io/gorm"
)

// NewTenantRepository 租户仓库
func NewTenantRepository(db *gorm.DB) *mysql.Repository[system.Tenant] {
	return mysql.NewRepository[system.Tenant](db, query.NewSortSpec("id", map[string]string{
		"id":          "id",
		"tenant_name": "tenant_name",
		"tenant_code": "tenant_code",
		"expire_at":   "expire_at",
		"created_at":  "created_at",
	})).Global()
}

// NewDeptRepository 部门仓库
func NewDeptRepository(db *gorm.DB) *mysql.Repository[system.Dept] {
	spec := query.NewSortSpec("sort", map[string]string{
		"id":         "id",
		"sort":       "sort",
		"dept_name":  "dept_name",
		"created_at": "created_at",
	})
	spec.DefaultDirection = query.Asc
	return mysql.NewRepository[system.Dept](db, spec)
}

// NewMenuRepository 菜单仓库，菜单为平台级数据，各租户共用
func NewMenuRepository(db *gorm.DB) *mysql.Repository[system.Menu] {
	spec := query.NewSortSpec("sort", map[string]string{
		"id":         "id",
		"sort":       "sort",
		"menu_name":  "menu_name",
		"created_at": "created_at",
	})
	spec.DefaultDirection = query.Asc
	return mysql.NewRepository[system.Menu](db, spec).Global()
}

// RoleRepository 角色仓库
type RoleRepository struct {
	*mysql.Repository[system.Role]
}

// NewRoleRepository 角色仓库
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	spec := query.NewSortSpec("sort", map[string]string{
		"id":         "id",
		"sort":       "sort",
		"role_name":  "role_name",
		"role_code":  "role_code",
		"created_at": "created_at",
	})
	spec.DefaultDirection = query.Asc
	return &RoleRepository{Repository: mysql.NewRepository[system.Role](db, spec)}
}

// ReplaceMenus 全量替换角色菜单
func (r *RoleRepository) ReplaceMenus(ctx context.Context, roleID uint64, menuIDs []uint64) error {
	return r.Transaction(ctx, func(tx *mysql.Repository[system.Role]) error {
		role := &system.Role{}
		role.ID = roleID
		menus := make([]system.Menu, 0, len(menuIDs))
		if len(menuIDs) > 0 {
			// 菜单不分租户
			if err := tx.RawDB().WithContext(ctx).Where("id IN ?", menuIDs).Find(&menus).Error; err != nil {
				return fmt.Errorf("%w: load menus: %v", system.ErrQueryFailed, err)
			}
			if len(menus) != len(unique(menuIDs)) {
				return system.NewValidationError("menu_ids", "包含不存在的菜单")
			}
		}
		return replaceAssociation(tx.RawDB().WithContext(ctx).Model(role), "Menus", menus)
	})
}

// MenuIDs 角色已分配的菜单ID
func (r *RoleRepository) MenuIDs(ctx context.Context, roleID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := r.RawDB().WithContext(ctx).Table("sys_role_menus").
		Where("role_id = ?", roleID).
		Order("menu_id").
		Pluck("menu_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("%w: role menu ids: %v", system.ErrQueryFailed, err)
	}
	return ids, nil
}

// UserRepository 用户仓库
type UserRepository struct {
	*mysql.Repository[system.User]
}

// NewUserRepository 用户仓库
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository: mysql.NewRepository[system.User](db, query.NewSortSpec("id", map[string]string{
		"id":            "id",
		"username":      "username",
		"nickname":      "nickname",
		"last_login_at": "last_login_at",
		"created_at":    "created_at",
	}))}
}

// GetByUsername 按用户名查询并预加载角色，不存在返回 (nil, nil)
// 登录时上下文中还没有租户，因此不做租户过滤
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*system.User, error) {
	var user system.User
	err := r.RawDB().WithContext(ctx).Preload("Roles").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get user by username: %v", system.ErrQueryFailed, err)
	}
	return &user, nil
}

// Permissions 用户权限码：已启用角色下已启用菜单的权限码并集，已排序去重
func (r *UserRepository) Permissions(ctx context.Context, userID uint64) ([]string, error) {
	perms := make([]string, 0)
	err := r.RawDB().WithContext(ctx).
		Table("sys_menu AS m").
		Joins("JOIN sys_role_menus rm ON rm.menu_id = m.id").
		Joins("JOIN sys_role r ON r.id = rm.role_id").
		Joins("JOIN sys_user_roles ur ON ur.role_id = r.id").
		Where("ur.user_id = ?", userID).
		Where("r.is_enabled = ? AND r.deleted_at IS NULL", basemodel.StatusEnabled).
		Where("m.is_enabled = ? AND m.deleted_at IS NULL", basemodel.StatusEnabled).
		Where("m.permission <> ''").
		Distinct().
		Pluck("m.permission", &perms).Error
	if err != nil {
		return nil, fmt.Errorf("%w: user permissions: %v", system.ErrQueryFailed, err)
	}
	sort.Strings(perms)
	return perms, nil
}

// ReplaceRoles 全量替换用户角色
func (r *UserRepository) ReplaceRoles(ctx context.Context, userID uint64, roleIDs []uint64) error {
	return r.Transaction(ctx, func(tx *mysql.Repository[system.User]) error {
		user := &system.User{}
		user.ID = userID
		roles := make([]system.Role, 0, len(roleIDs))
		if len(roleIDs) > 0 {
			if err := tx.DB(ctx).Where("id IN ?", roleIDs).Find(&roles).Error; err != nil {
				return fmt.Errorf("%w: load roles: %v", system.ErrQueryFailed, err)
			}
			if len(roles) != len(unique(roleIDs)) {
				return system.NewValidationError("role_ids", "包含不存在的角色")
			}
		}
		return replaceAssociation(tx.RawDB().WithContext(ctx).Model(user), "Roles", roles)
	})
}

// replaceAssociation 关联表不带租户列，必须使用未加租户作用域的句柄
func replaceAssociation[T any](db *gorm.DB, name string, values []T) error {
	var err error
	if len(values) == 0 {
		err = db.Association(name).Clear()
	} else {
		err = db.Association(name).Replace(values)
	}
	if err != nil {
		return fmt.Errorf("%w: replace %s: %v", system.ErrQueryFailed, name, err)
	}
	return nil
}

func unique(ids []uint64) map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
