/**
 * 中间件:操作审计
 * @date: 2026.03.18
 * @description: 记录已登录用户的写操作(POST/PUT/PATCH/DELETE)到操作日志表
 */
package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"backoffice/internal/model/audit"
	"backoffice/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

const defaultMaxParamBytes = 2048

const maskedValue = "******"

// GinAuditMiddleware 操作审计中间件，需在 GinJWTAuthMiddleware 之后使用
func (m *MiddlewareManager) GinAuditMiddleware() gin.HandlerFunc {
	cfg := m.securityConfig.Audit
	maxBytes := cfg.MaxParamBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxParamBytes
	}
	return func(c *gin.Context) {
		if !cfg.Enabled || m.auditLogs == nil || !mutating(c.Request.Method) || skipped(c.Request.URL.Path, cfg.SkipPaths) {
			c.Next()
			return
		}
		start := time.Now()
		params := captureParams(c, maxBytes)

		c.Next()

		status := c.Writer.Status()
		entry := &audit.AuditLog{
			UserID:     utils.GetCurrentUserID(c),
			Username:   utils.GetCurrentUsername(c),
			Module:     moduleOf(c.FullPath()),
			Operation:  c.GetString(utils.GinKeyPermission),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			ClientIP:   utils.NormalizeIP(c.ClientIP()),
			UserAgent:  truncate(c.Request.UserAgent(), 500),
			RequestID:  utils.GetRequestID(c),
			Params:     params,
			StatusCode: status,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    status < http.StatusBadRequest,
		}
		if entry.Operation == "" {
			entry.Operation = c.Request.Method + " " + c.FullPath()
		}
		_ = m.auditLogs.Record(context.WithoutCancel(c.Request.Context()), entry)
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func skipped(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// moduleOf 路由模板 /api/{module}/... 的模块段
func moduleOf(fullPath string) string {
	parts := strings.Split(strings.Trim(fullPath, "/"), "/")
	if len(parts) >= 2 && parts[0] == "api" {
		return parts[1]
	}
	return ""
}

// captureParams 读取 JSON 请求体并还原，密码类字段脱敏；文件上传不读取请求体
func captureParams(c *gin.Context, maxBytes int) string {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return "[multipart]"
	}
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
		return truncate(c.Request.URL.RawQuery, maxBytes)
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, int64(maxBytes)*4))
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))

	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return truncate(string(body), maxBytes)
	}
	masked, err := json.Marshal(mask(payload))
	if err != nil {
		return ""
	}
	return truncate(string(masked), maxBytes)
}

func mask(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			if strings.Contains(strings.ToLower(k), "password") {
				t[k] = maskedValue
				continue
			}
			t[k] = mask(val)
		}
	case []interface{}:
		for i := range t {
			t[i] = mask(t[i])
		}
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "")
}
