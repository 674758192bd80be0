package system

import (
	"context"
	"net/http"

	"backoffice/internal/handler"
	"backoffice/internal/model"
	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/excel"
	"backoffice/internal/pkg/logger"
	systemsvc "backoffice/internal/service/system"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var userSheet = excel.Sheet[system.User]{
	Name: "用户",
	Columns: []excel.Column[system.User]{
		{Header: "ID", Value: func(e *system.User) interface{} { return e.ID }},
		{Header: "用户名", Width: 16, Value: func(e *system.User) interface{} { return e.Username }},
		{Header: "昵称", Width: 16, Value: func(e *system.User) interface{} { return e.Nickname }},
		{Header: "邮箱", Width: 24, Value: func(e *system.User) interface{} { return e.Email }},
		{Header: "手机号", Width: 14, Value: func(e *system.User) interface{} { return e.Phone }},
		{Header: "部门ID", Value: func(e *system.User) interface{} { return e.DeptID }},
		{Header: "状态", Value: func(e *system.User) interface{} { return excel.FormatStatus(e.IsEnabled) }},
		{Header: "最后登录时间", Width: 20, Value: func(e *system.User) interface{} {
			if e.LastLoginAt == nil {
				return ""
			}
			return excel.FormatTime(*e.LastLoginAt)
		}},
		{Header: "最后登录IP", Width: 16, Value: func(e *system.User) interface{} { return e.LastLoginIP }},
		{Header: "备注", Width: 30, Value: func(e *system.User) interface{} { return e.Remark }},
	},
}

// 导入时必须提供初始密码，导出不含密码列
var userImportSheet = excel.Sheet[system.UserCreateRequest]{
	Name: "用户",
	Columns: []excel.Column[system.UserCreateRequest]{
		{Header: "用户名", Width: 16, Parse: func(r *system.UserCreateRequest, s string) error { r.Username = s; return nil }},
		{Header: "初始密码", Width: 16, Parse: func(r *system.UserCreateRequest, s string) error { r.Password = s; return nil }},
		{Header: "昵称", Width: 16, Parse: func(r *system.UserCreateRequest, s string) error { r.Nickname = s; return nil }},
		{Header: "邮箱", Width: 24, Parse: func(r *system.UserCreateRequest, s string) error { r.Email = s; return nil }},
		{Header: "手机号", Width: 14, Parse: func(r *system.UserCreateRequest, s string) error { r.Phone = s; return nil }},
		{Header: "部门ID", Parse: func(r *system.UserCreateRequest, s string) (err error) { r.DeptID, err = excel.ParseUint(s); return }},
		{Header: "备注", Width: 30, Parse: func(r *system.UserCreateRequest, s string) error { r.Remark = s; return nil }},
	},
}

// SessionRevoker 注销指定用户的全部会话
type SessionRevoker interface {
	RevokeUser(ctx context.Context, userID uint64) error
}

// UserHandler 用户处理器
type UserHandler struct {
	*handler.CRUDHandler[system.User, system.UserQuery, system.UserCreateRequest, system.UserUpdateRequest]
	service  *systemsvc.UserService
	sessions SessionRevoker
}

// NewUserHandler 创建用户处理器，sessions 可为空
func NewUserHandler(service *systemsvc.UserService, sessions SessionRevoker, maxUploadSize int64) *UserHandler {
	return &UserHandler{
		CRUDHandler: handler.NewCRUDHandler[system.User, system.UserQuery, system.UserCreateRequest, system.UserUpdateRequest](
			service, userSheet, userImportSheet, maxUploadSize),
		service:  service,
		sessions: sessions,
	}
}

// Get 用户详情(含角色)
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	user, err := h.service.GetWithRoles(c.Request.Context(), id)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "查询成功", user)
}

// Delete 删除用户并注销其会话
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Fail(c, err)
		return
	}
	h.revoke(c.Request.Context(), id)
	handler.Success(c, http.StatusOK, "用户删除成功", nil)
}

// ChangeStatus 启用/停用，停用后立即注销会话
func (h *UserHandler) ChangeStatus(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	var req model.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	if err := h.service.ChangeStatus(c.Request.Context(), id, *req.IsEnabled); err != nil {
		handler.Fail(c, err)
		return
	}
	if *req.IsEnabled == basemodel.StatusDisabled {
		h.revoke(c.Request.Context(), id)
	}
	handler.Success(c, http.StatusOK, "状态修改成功", nil)
}

// AssignRoles 覆盖式分配角色
func (h *UserHandler) AssignRoles(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	var req system.AssignRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	if err := h.service.AssignRoles(c.Request.Context(), id, req.RoleIDs); err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Success(c, http.StatusOK, "角色分配成功", nil)
}

// ResetPassword 重置密码，旧会话全部失效
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	var req system.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	if err := h.service.ResetPassword(c.Request.Context(), id, req.Password); err != nil {
		handler.Fail(c, err)
		return
	}
	h.revoke(c.Request.Context(), id)
	handler.Success(c, http.StatusOK, "密码重置成功", nil)
}

// 会话注销失败不影响主操作结果，令牌到期后自然失效
func (h *UserHandler) revoke(ctx context.Context, userID uint64) {
	if h.sessions == nil {
		return
	}
	if err := h.sessions.RevokeUser(ctx, userID); err != nil {
		logger.LogSystemEvent("handler", "revoke_sessions", err.Error(), logrus.WarnLevel, map[string]interface{}{
			"user_id": userID,
		})
	}
}
