/**
 * 服务层:会话管理
 * @date: 2026.03.13
 * @description: 登录、注销、令牌校验与个人信息
 * @func:
 * 1.登录(校验账号、租户，签发令牌，写会话与登录日志)
 * 2.注销(删除会话，令牌随即失效)
 * 3.校验令牌并取回会话
 * 4.踢下线(停用用户、重置密码后调用)
 * 5.个人信息与权限
 */
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/model/audit"
	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/auth"
	"backoffice/internal/pkg/logger"
	"backoffice/internal/pkg/utils"
	"backoffice/internal/repo/mysql"
	systemrepo "backoffice/internal/repo/mysql/system"
)

// SessionStore 会话存储，Redis 与内存两种实现
type SessionStore interface {
	Save(ctx context.Context, session *system.SessionData, expiration time.Duration) error
	Get(ctx context.Context, tokenID string) (*system.SessionData, error)
	Delete(ctx context.Context, tokenID string) error
	DeleteByUser(ctx context.Context, userID uint64) (int, error)
}

// LoginRecorder 登录日志记录
type LoginRecorder interface {
	Record(ctx context.Context, entry *audit.LoginLog) error
}

// Profile 当前用户信息
type Profile struct {
	User        *system.User `json:"user"`
	Roles       []string     `json:"roles"`
	Permissions []string     `json:"permissions"`
}

// SessionService 会话管理服务
type SessionService struct {
	users     *systemrepo.UserRepository
	tenants   *mysql.Repository[system.Tenant]
	passwords *auth.PasswordManager
	jwt       *auth.JWTManager
	sessions  SessionStore
	loginLogs LoginRecorder
	now       func() time.Time
}

// NewSessionService 创建会话服务实例
func NewSessionService(
	users *systemrepo.UserRepository,
	tenants *mysql.Repository[system.Tenant],
	passwords *auth.PasswordManager,
	jwt *auth.JWTManager,
	sessions SessionStore,
	loginLogs LoginRecorder,
) *SessionService {
	return &SessionService{
		users:     users,
		tenants:   tenants.Global(),
		passwords: passwords,
		jwt:       jwt,
		sessions:  sessions,
		loginLogs: loginLogs,
		now:       time.Now,
	}
}

// Login 用户登录，用户不存在与密码错误返回同一错误
func (s *SessionService) Login(ctx context.Context, req *model.LoginRequest, clientIP, userAgent string) (*model.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	fail := func(tenantID uint64, err error) (*model.LoginResponse, error) {
		s.recordLogin(ctx, tenantID, username, clientIP, userAgent, false, err.Error())
		logger.LogBusinessOperation("user_login", 0, username, clientIP, utils.GetRequestIDFromContext(ctx), "failed", err.Error(), nil)
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return fail(0, system.ErrInvalidCredentials)
	}
	ok, err := s.passwords.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		logger.LogError(err, utils.GetRequestIDFromContext(ctx), user.ID, clientIP, "user_login", "POST", map[string]interface{}{
			"operation": "login",
			"username":  username,
		})
		return fail(user.TenantID, system.ErrInvalidCredentials)
	}
	if !ok {
		return fail(user.TenantID, system.ErrInvalidCredentials)
	}
	if user.IsEnabled != basemodel.StatusEnabled {
		return fail(user.TenantID, system.ErrUserDisabled)
	}
	if err := s.checkTenant(ctx, user.TenantID); err != nil {
		return fail(user.TenantID, err)
	}

	permissions, err := s.users.Permissions(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	roles := user.RoleCodes()
	token, tokenID, err := s.jwt.GenerateAccessToken(user.ID, user.Username, user.TenantID, roles)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := s.now()
	session := &system.SessionData{
		UserID:      user.ID,
		Username:    user.Username,
		TenantID:    user.TenantID,
		TokenID:     tokenID,
		Roles:       roles,
		Permissions: permissions,
		LoginTime:   now,
		LastActive:  now,
		ClientIP:    clientIP,
		UserAgent:   userAgent,
	}
	if err := s.sessions.Save(ctx, session, s.jwt.AccessTokenTTL()); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	// 更新最后登录信息失败不影响登录
	if err := s.users.Global().UpdateFields(ctx, user.ID, map[string]interface{}{
		"last_login_at": now,
		"last_login_ip": clientIP,
	}); err != nil {
		logger.LogError(err, utils.GetRequestIDFromContext(ctx), user.ID, clientIP, "user_login", "POST", map[string]interface{}{
			"operation": "update_last_login",
		})
	}

	s.recordLogin(ctx, user.TenantID, user.Username, clientIP, userAgent, true, "登录成功")
	logger.LogBusinessOperation("user_login", user.ID, user.Username, clientIP, utils.GetRequestIDFromContext(ctx), "success", "用户登录", map[string]interface{}{
		"tenant_id": user.TenantID,
		"roles":     roles,
	})

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwt.AccessTokenTTL() / time.Second),
		Username:    user.Username,
		Roles:       roles,
		Permissions: permissions,
	}, nil
}

// checkTenant 租户存在、启用且未到期
func (s *SessionService) checkTenant(ctx context.Context, tenantID uint64) error {
	if tenantID == 0 {
		return nil
	}
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant == nil || tenant.IsEnabled != basemodel.StatusEnabled {
		return fmt.Errorf("租户不可用: %w", system.ErrForbidden)
	}
	if tenant.Expired(s.now()) {
		return fmt.Errorf("租户已到期: %w", system.ErrForbidden)
	}
	return nil
}

func (s *SessionService) recordLogin(ctx context.Context, tenantID uint64, username, clientIP, userAgent string, success bool, message string) {
	if s.loginLogs == nil {
		return
	}
	entry := &audit.LoginLog{
		Username:  username,
		ClientIP:  clientIP,
		UserAgent: userAgent,
		Success:   success,
		Message:   message,
		LoginAt:   s.now(),
	}
	entry.TenantID = tenantID
	// 记录失败只写日志文件
	_ = s.loginLogs.Record(ctx, entry)
}

// Authenticate 校验令牌并取回会话，令牌已注销时返回 ErrTokenRevoked
func (s *SessionService) Authenticate(ctx context.Context, token string) (*system.SessionData, error) {
	if token == "" {
		return nil, system.ErrTokenInvalid
	}
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", system.ErrTokenInvalid, err)
	}
	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != claims.UserID {
		return nil, system.ErrTokenRevoked
	}
	return session, nil
}

// Logout 注销当前会话
func (s *SessionService) Logout(ctx context.Context, tokenID string) error {
	if err := s.sessions.Delete(ctx, tokenID); err != nil {
		return err
	}
	logger.LogBusinessOperation("user_logout",
		utils.GetUserIDFromContext(ctx),
		utils.GetUsernameFromContext(ctx),
		utils.GetClientIPFromContext(ctx),
		utils.GetRequestIDFromContext(ctx),
		"success", "用户注销", nil)
	return nil
}

// RevokeUser 删除用户全部会话
func (s *SessionService) RevokeUser(ctx context.Context, userID uint64) error {
	n, err := s.sessions.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.LogBusinessOperation("user_revoke_sessions",
			utils.GetUserIDFromContext(ctx),
			utils.GetUsernameFromContext(ctx),
			utils.GetClientIPFromContext(ctx),
			utils.GetRequestIDFromContext(ctx),
			"success", "用户会话已失效", map[string]interface{}{"target_user_id": userID, "sessions": n})
	}
	return nil
}

// Profile 当前用户信息与权限
func (s *SessionService) Profile(ctx context.Context, userID uint64) (*Profile, error) {
	user, err := s.users.Global().GetByID(ctx, userID, "Roles")
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, system.NewNotFoundError("用户", userID)
	}
	permissions, err := s.users.Permissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Roles: user.RoleCodes(), Permissions: permissions}, nil
}
