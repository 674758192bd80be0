/**
 * 模型:会话模型
 * @date: 2026.03.04
 * @description: 登录会话数据，存储于 Redis 或内存，JWT 中间件据此校验令牌是否仍然有效
 * @func: SessionData 结构体及权限判断
 */
package system

import (
	"time"
)

// SuperAdminRole 超级管理员角色编码，拥有全部权限
const SuperAdminRole = "admin"

// AllPermission 通配权限码
const AllPermission = "*:*:*"

// SessionData 会话数据结构
type SessionData struct {
	UserID      uint64    `json:"user_id"`     // 用户ID
	Username    string    `json:"username"`    // 用户名
	TenantID    uint64    `json:"tenant_id"`   // 租户ID
	TokenID     string    `json:"token_id"`    // 当前访问令牌ID(jti)
	Roles       []string  `json:"roles"`       // 角色编码列表
	Permissions []string  `json:"permissions"` // 权限码列表
	LoginTime   time.Time `json:"login_time"`  // 登录时间
	LastActive  time.Time `json:"last_active"` // 最后活跃时间
	ClientIP    string    `json:"client_ip"`   // 客户端IP地址
	UserAgent   string    `json:"user_agent"`  // 用户代理信息
}

// IsActive 检查会话是否活跃（最后活跃时间在指定时间内）
func (s *SessionData) IsActive(timeout time.Duration) bool {
	return time.Since(s.LastActive) <= timeout
}

// HasRole 检查会话用户是否拥有指定角色
func (s *SessionData) HasRole(roleCode string) bool {
	for _, role := range s.Roles {
		if role == roleCode {
			return true
		}
	}
	return false
}

// HasPermission 检查会话用户是否拥有指定权限码，超级管理员和通配权限直接放行
func (s *SessionData) HasPermission(code string) bool {
	if s.HasRole(SuperAdminRole) {
		return true
	}
	for _, permission := range s.Permissions {
		if permission == code || permission == AllPermission {
			return true
		}
	}
	return false
}
