/**
 * 处理器:认证
 * @date: 2026.03.17
 * @description: 登录、登出与当前用户信息
 * @func:
 *	1.Login 用户名密码登录，签发访问令牌
 *	2.Logout 注销当前令牌，LogoutAll 注销本人全部令牌
 *	3.Profile 当前用户、角色与权限码
 */
package auth

import (
	"net/http"

	"backoffice/internal/handler"
	"backoffice/internal/model"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/utils"
	authsvc "backoffice/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证接口处理器
type AuthHandler struct {
	sessionService *authsvc.SessionService
}

// NewAuthHandler 创建认证处理器实例
func NewAuthHandler(sessionService *authsvc.SessionService) *AuthHandler {
	return &AuthHandler{sessionService: sessionService}
}

// Login 用户登录接口
// @Summary 用户登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "登录请求"
// @Success 200 {object} model.APIResponse "登录成功"
// @Failure 400 {object} model.APIResponse "请求参数错误"
// @Failure 401 {object} model.APIResponse "用户名或密码错误"
// @Failure 403 {object} model.APIResponse "用户或租户已停用"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	resp, err := h.sessionService.Login(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "登录成功", resp)
}

// Logout 用户登出接口
// @Summary 用户登出
// @Tags 认证
// @Security BearerAuth
// @Success 200 {object} model.APIResponse "登出成功"
// @Failure 401 {object} model.APIResponse "未授权"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	if err := h.sessionService.Logout(c.Request.Context(), session.TokenID); err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "登出成功", nil)
}

// LogoutAll 注销当前用户在所有终端的会话
// @Router /api/v1/auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	if err := h.sessionService.RevokeUser(c.Request.Context(), session.UserID); err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "已登出全部终端", nil)
}

// Profile 当前用户信息
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	profile, err := h.sessionService.Profile(c.Request.Context(), session.UserID)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "查询成功", profile)
}

// currentSession 读取认证中间件写入的会话，缺失时已写入 401
func currentSession(c *gin.Context) (*system.SessionData, bool) {
	if v, ok := c.Get(utils.GinKeySession); ok {
		if session, ok := v.(*system.SessionData); ok && session != nil {
			return session, true
		}
	}
	handler.Fail(c, system.ErrUnauthorized)
	return nil, false
}
