package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/model"
	"backoffice/internal/model/audit"
	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/auth"
	"backoffice/internal/pkg/database/dbtest"
	"backoffice/internal/pkg/query"
	"backoffice/internal/repo/memory"
	auditrepo "backoffice/internal/repo/mysql/audit"
	systemrepo "backoffice/internal/repo/mysql/system"
	auditsvc "backoffice/internal/service/audit"
	systemsvc "backoffice/internal/service/system"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	sessions *SessionService
	users    *systemsvc.UserService
	roles    *systemsvc.RoleService
	menus    *systemsvc.MenuService
	tenants  *systemsvc.TenantService
	logins   *auditsvc.LoginLogService
}

func newEnv(t *testing.T) *env {
	db := dbtest.New(t)
	pm := auth.NewPasswordManager(&config.PasswordConfig{Memory: 1024, Iterations: 1, Parallelism: 1})
	jm := auth.NewJWTManager("test-secret", "", time.Hour)
	userRepo := systemrepo.NewUserRepository(db)
	tenantRepo := systemrepo.NewTenantRepository(db)
	store := memory.NewSessionRepository(0)
	t.Cleanup(func() { _ = store.Close() })
	logins := auditsvc.NewLoginLogService(auditrepo.NewLoginLogRepository(db), 0)

	return &env{
		sessions: NewSessionService(userRepo, tenantRepo, pm, jm, store, logins),
		users:    systemsvc.NewUserService(userRepo, pm, 0),
		roles:    systemsvc.NewRoleService(systemrepo.NewRoleRepository(db), 0),
		menus:    systemsvc.NewMenuService(systemrepo.NewMenuRepository(db), 0),
		tenants:  systemsvc.NewTenantService(tenantRepo, 0),
		logins:   logins,
	}
}

func (e *env) user(t *testing.T, username string) uint64 {
	t.Helper()
	id, err := e.users.Create(context.Background(), &system.UserCreateRequest{Username: username, Password: "secret123"})
	require.NoError(t, err)
	return id
}

func login(e *env, username, password string) (*model.LoginResponse, error) {
	return e.sessions.Login(context.Background(), &model.LoginRequest{Username: username, Password: password}, "10.0.0.1", "test")
}

func TestSessionService_LoginAuthenticateLogout(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	uid := e.user(t, "alice")
	menuID, err := e.menus.Create(ctx, &system.MenuCreateRequest{MenuFields: system.MenuFields{
		MenuName: "参数列表", MenuType: system.MenuTypeButton, Permission: "core:config:list",
	}})
	require.NoError(t, err)
	roleID, err := e.roles.Create(ctx, &system.RoleCreateRequest{RoleFields: system.RoleFields{RoleName: "编辑", RoleCode: "editor"}})
	require.NoError(t, err)
	require.NoError(t, e.roles.AssignMenus(ctx, roleID, []uint64{menuID}))
	require.NoError(t, e.users.AssignRoles(ctx, uid, []uint64{roleID}))

	resp, err := login(e, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, []string{"editor"}, resp.Roles)
	assert.Equal(t, []string{"core:config:list"}, resp.Permissions)

	session, err := e.sessions.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uid, session.UserID)
	assert.True(t, session.HasPermission("core:config:list"))
	assert.False(t, session.HasPermission("core:config:remove"))

	user, err := e.users.Get(ctx, uid)
	require.NoError(t, err)
	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, "10.0.0.1", user.LastLoginIP)

	profile, err := e.sessions.Profile(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.User.Username)
	assert.Equal(t, []string{"core:config:list"}, profile.Permissions)

	require.NoError(t, e.sessions.Logout(ctx, session.TokenID))
	_, err = e.sessions.Authenticate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, system.ErrTokenRevoked)
	assert.ErrorIs(t, err, system.ErrUnauthorized)
}

func TestSessionService_LoginFailures(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.user(t, "bob")

	_, err := login(e, "bob", "wrong-pass1")
	assert.ErrorIs(t, err, system.ErrInvalidCredentials)
	_, err = login(e, "nobody", "secret123")
	assert.ErrorIs(t, err, system.ErrInvalidCredentials)

	require.NoError(t, e.users.ChangeStatus(ctx, uid, basemodel.StatusDisabled))
	_, err = login(e, "bob", "secret123")
	assert.ErrorIs(t, err, system.ErrUserDisabled)
	assert.ErrorIs(t, err, system.ErrForbidden)

	failed := false
	logs, err := e.logins.List(ctx, &audit.LoginLogQuery{Success: &failed}, query.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), logs.Total)
}

func TestSessionService_TenantMustBeAvailable(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	tid, err := e.tenants.Create(ctx, &system.TenantCreateRequest{TenantFields: system.TenantFields{
		TenantName: "过期租户", TenantCode: "expired", ExpireAt: &past,
	}})
	require.NoError(t, err)

	id, err := e.users.Create(ctx, &system.UserCreateRequest{Username: "carol", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, e.users.Repo().UpdateFields(ctx, id, map[string]interface{}{"tenant_id": tid}))

	_, err = login(e, "carol", "secret123")
	assert.ErrorIs(t, err, system.ErrForbidden)
}

func TestSessionService_RevokeUserAndBadTokens(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.user(t, "dave")

	first, err := login(e, "dave", "secret123")
	require.NoError(t, err)
	second, err := login(e, "dave", "secret123")
	require.NoError(t, err)

	require.NoError(t, e.sessions.RevokeUser(ctx, uid))
	for _, token := range []string{first.AccessToken, second.AccessToken} {
		_, err = e.sessions.Authenticate(ctx, token)
		assert.ErrorIs(t, err, system.ErrTokenRevoked)
	}

	_, err = e.sessions.Authenticate(ctx, "")
	assert.True(t, errors.Is(err, system.ErrTokenInvalid))
	_, err = e.sessions.Authenticate(ctx, "not.a.jwt")
	assert.True(t, errors.Is(err, system.ErrTokenInvalid))

	other := auth.NewJWTManager("other-secret", "", time.Hour)
	forged, _, err := other.GenerateAccessToken(uid, "dave", 0, nil)
	require.NoError(t, err)
	_, err = e.sessions.Authenticate(ctx, forged)
	assert.True(t, errors.Is(err, system.ErrTokenInvalid))
}
