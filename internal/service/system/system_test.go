package system

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"backoffice/internal/config"
	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/auth"
	"backoffice/internal/pkg/database/dbtest"
	"backoffice/internal/pkg/query"
	"backoffice/internal/pkg/utils"
	systemrepo "backoffice/internal/repo/mysql/system"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var pageAll = query.PageRequest{PageSize: query.MaxPageSize}

type fixture struct {
	db    *gorm.DB
	users *UserService
	roles *RoleService
	menus *MenuService
	depts *DeptService
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.New(t)
	pm := auth.NewPasswordManager(&config.PasswordConfig{Memory: 1024, Iterations: 1, Parallelism: 1})
	return &fixture{
		db:    db,
		users: NewUserService(systemrepo.NewUserRepository(db), pm, 0),
		roles: NewRoleService(systemrepo.NewRoleRepository(db), 0),
		menus: NewMenuService(systemrepo.NewMenuRepository(db), 0),
		depts: NewDeptService(systemrepo.NewDeptRepository(db), 0),
	}
}

func (f *fixture) menu(t *testing.T, parent uint64, name, perm string, sort int) uint64 {
	t.Helper()
	typ := system.MenuTypeMenu
	if perm != "" {
		typ = system.MenuTypeButton
	}
	id, err := f.menus.Create(context.Background(), &system.MenuCreateRequest{MenuFields: system.MenuFields{
		ParentID: parent, MenuName: name, MenuType: typ, Permission: perm, Sort: sort,
	}})
	require.NoError(t, err)
	return id
}

func TestUserService_PermissionsFollowRolesAndMenus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := f.menu(t, 0, "核心", "", 1)
	list := f.menu(t, root, "参数列表", "core:config:list", 1)
	add := f.menu(t, root, "参数新增", "core:config:add", 2)
	remove := f.menu(t, root, "参数删除", "core:config:remove", 3)

	editor, err := f.roles.Create(ctx, &system.RoleCreateRequest{RoleFields: system.RoleFields{RoleName: "编辑", RoleCode: "editor"}})
	require.NoError(t, err)
	auditor, err := f.roles.Create(ctx, &system.RoleCreateRequest{RoleFields: system.RoleFields{RoleName: "审计", RoleCode: "auditor"}})
	require.NoError(t, err)
	require.NoError(t, f.roles.AssignMenus(ctx, editor, []uint64{root, list, add}))
	require.NoError(t, f.roles.AssignMenus(ctx, auditor, []uint64{list, remove}))

	uid, err := f.users.Create(ctx, &system.UserCreateRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, f.users.AssignRoles(ctx, uid, []uint64{editor, auditor}))

	perms, err := f.users.Permissions(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []string{"core:config:add", "core:config:list", "core:config:remove"}, perms)

	// 停用角色后其菜单权限失效
	require.NoError(t, f.roles.ChangeStatus(ctx, auditor, basemodel.StatusDisabled))
	perms, err = f.users.Permissions(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []string{"core:config:add", "core:config:list"}, perms)

	// 全量替换
	require.NoError(t, f.roles.AssignMenus(ctx, editor, nil))
	ids, err := f.roles.MenuIDs(ctx, editor)
	require.NoError(t, err)
	assert.Empty(t, ids)

	user, err := f.users.GetWithRoles(ctx, uid)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"editor"}, user.RoleCodes())

	err = f.users.AssignRoles(ctx, uid, []uint64{9999})
	assert.True(t, errors.Is(err, system.ErrValidation))
	err = f.roles.AssignMenus(ctx, editor, []uint64{list, 9999})
	assert.True(t, errors.Is(err, system.ErrValidation))
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.users.Create(ctx, &system.UserCreateRequest{Username: "bob", Password: "secret123",
		UserFields: system.UserFields{Nickname: "Bob"}})
	require.NoError(t, err)

	user, err := f.users.Get(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.Contains(t, user.PasswordHash, "$argon2id$")

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "argon2id")
	assert.NotContains(t, string(raw), "password")

	_, err = f.users.Create(ctx, &system.UserCreateRequest{Username: "bob", Password: "secret123"})
	assert.True(t, errors.Is(err, system.ErrConflict))

	_, err = f.users.Create(ctx, &system.UserCreateRequest{Username: "weak", Password: "123456"})
	assert.True(t, errors.Is(err, system.ErrValidation))

	old := user.PasswordHash
	require.NoError(t, f.users.ResetPassword(ctx, id, "another456"))
	user, err = f.users.Get(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, old, user.PasswordHash)
}

func TestUserService_CurrentUserProtected(t *testing.T) {
	f := newFixture(t)
	id, err := f.users.Create(context.Background(), &system.UserCreateRequest{Username: "carol", Password: "secret123"})
	require.NoError(t, err)

	ctx := utils.WithIdentity(context.Background(), id, "carol", 0)
	assert.True(t, errors.Is(f.users.ChangeStatus(ctx, id, basemodel.StatusDisabled), system.ErrValidation))
	assert.True(t, errors.Is(f.users.Delete(ctx, id), system.ErrValidation))
	require.NoError(t, f.users.ChangeStatus(ctx, id, basemodel.StatusEnabled))
}

func TestRoleService_AdminRoleProtected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id, err := f.roles.Create(ctx, &system.RoleCreateRequest{RoleFields: system.RoleFields{RoleName: "超级管理员", RoleCode: system.SuperAdminRole}})
	require.NoError(t, err)

	assert.True(t, errors.Is(f.roles.Delete(ctx, id), system.ErrValidation))
	assert.True(t, errors.Is(f.roles.ChangeStatus(ctx, id, basemodel.StatusDisabled), system.ErrValidation))
	_, err = f.roles.Update(ctx, id, &system.RoleUpdateRequest{RoleFields: system.RoleFields{RoleName: "x", RoleCode: "root"}})
	assert.True(t, errors.Is(err, system.ErrValidation))
	_, err = f.roles.Update(ctx, id, &system.RoleUpdateRequest{RoleFields: system.RoleFields{RoleName: "管理员", RoleCode: system.SuperAdminRole}})
	require.NoError(t, err)
}

func TestDeptService_TreeAndParentRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	create := func(parent uint64, name string, sort int) uint64 {
		id, err := f.depts.Create(ctx, &system.DeptCreateRequest{DeptFields: system.DeptFields{ParentID: parent, DeptName: name, Sort: sort}})
		require.NoError(t, err)
		return id
	}
	hq := create(0, "总部", 1)
	rd := create(hq, "研发部", 2)
	sales := create(hq, "销售部", 1)
	team := create(rd, "平台组", 1)

	tree, err := f.depts.Tree(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, hq, tree[0].ID)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, sales, tree[0].Children[0].ID, "siblings ordered by sort")
	assert.Equal(t, rd, tree[0].Children[1].ID)
	require.Len(t, tree[0].Children[1].Children, 1)
	assert.Equal(t, team, tree[0].Children[1].Children[0].ID)

	// 不能挂到自己的下级
	_, err = f.depts.Update(ctx, hq, &system.DeptUpdateRequest{DeptFields: system.DeptFields{ParentID: team, DeptName: "总部"}})
	assert.True(t, errors.Is(err, system.ErrValidation))
	_, err = f.depts.Update(ctx, rd, &system.DeptUpdateRequest{DeptFields: system.DeptFields{ParentID: rd, DeptName: "研发部"}})
	assert.True(t, errors.Is(err, system.ErrValidation))
	_, err = f.depts.Create(ctx, &system.DeptCreateRequest{DeptFields: system.DeptFields{ParentID: 777, DeptName: "孤儿"}})
	assert.True(t, errors.Is(err, system.ErrValidation))

	// 有下级不能删
	assert.True(t, errors.Is(f.depts.Delete(ctx, rd), system.ErrValidation))
	require.NoError(t, f.depts.Delete(ctx, team))
	require.NoError(t, f.depts.Delete(ctx, rd))
}

func TestMenuTree_OrphansBecomeRoots(t *testing.T) {
	menus := []system.Menu{
		{ParentID: 0, MenuName: "a", Sort: 2},
		{ParentID: 1, MenuName: "a-1", Sort: 1},
		{ParentID: 42, MenuName: "orphan", Sort: 1},
	}
	menus[0].ID, menus[1].ID, menus[2].ID = 1, 2, 3

	tree := MenuTree(menus)
	require.Len(t, tree, 2)
	assert.Equal(t, "orphan", tree[0].MenuName)
	assert.Equal(t, "a", tree[1].MenuName)
	require.Len(t, tree[1].Children, 1)
	assert.Equal(t, "a-1", tree[1].Children[0].MenuName)
}

func TestDeptTree_ParentCycleIsNotDropped(t *testing.T) {
	depts := []system.Dept{
		{ParentID: 0, DeptName: "总部", Sort: 1},
		{ParentID: 4, DeptName: "x", Sort: 3},
		{ParentID: 2, DeptName: "y", Sort: 2},
		{ParentID: 3, DeptName: "z", Sort: 5},
		{ParentID: 3, DeptName: "y-child", Sort: 9},
	}
	for i := range depts {
		depts[i].ID = uint64(i + 1)
	}

	tree := DeptTree(depts)
	require.Len(t, tree, 2)
	assert.Equal(t, "总部", tree[0].DeptName)
	// 环 2->4->3->2 中排序最前的 y 成为根，其余节点按原上级关系挂回
	cyc := tree[1]
	assert.Equal(t, "y", cyc.DeptName)
	require.Len(t, cyc.Children, 2)
	assert.Equal(t, "z", cyc.Children[0].DeptName)
	assert.Equal(t, "y-child", cyc.Children[1].DeptName)
	require.Len(t, cyc.Children[0].Children, 1)
	assert.Equal(t, "x", cyc.Children[0].Children[0].DeptName)
	assert.Empty(t, cyc.Children[0].Children[0].Children)
}

func TestTenantService_TenantCodeUnique(t *testing.T) {
	db := dbtest.New(t)
	s := NewTenantService(systemrepo.NewTenantRepository(db), 0)
	// 租户为平台级数据，租户上下文下也能看到全部
	ctx := utils.WithIdentity(context.Background(), 1, "root", 5)

	_, err := s.Create(ctx, &system.TenantCreateRequest{TenantFields: system.TenantFields{TenantName: "甲", TenantCode: "t-a"}})
	require.NoError(t, err)
	_, err = s.Create(ctx, &system.TenantCreateRequest{TenantFields: system.TenantFields{TenantName: "乙", TenantCode: "t-a"}})
	assert.True(t, errors.Is(err, system.ErrConflict))

	page, err := s.List(context.Background(), nil, pageAll)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}
