/**
 * 模型:请求模型
 * @date: 2026.03.02
 * @description: 各模块共用的请求结构
 * @func: ChangeStatusRequest、IDsRequest、LoginRequest
 */
package model

import "backoffice/internal/model/basemodel"

// ChangeStatusRequest 修改启用状态请求
type ChangeStatusRequest struct {
	IsEnabled *basemodel.Status `json:"is_enabled" binding:"required"` // 1 启用 0 停用
}

// IDsRequest 批量ID请求
type IDsRequest struct {
	IDs []uint64 `json:"ids" binding:"required,min=1"`
}

// LoginRequest 登录请求结构
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // 用户名，必填
	Password string `json:"password" binding:"required"` // 密码，必填
}

// LoginResponse 登录响应结构
type LoginResponse struct {
	AccessToken string   `json:"access_token"` // 访问令牌
	TokenType   string   `json:"token_type"`   // 固定为 Bearer
	ExpiresIn   int64    `json:"expires_in"`   // 过期时间(秒)
	Username    string   `json:"username"`     // 用户名
	Roles       []string `json:"roles"`        // 角色编码
	Permissions []string `json:"permissions"`  // 权限码
}
