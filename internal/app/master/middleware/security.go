/**
 * 中间件:安全中间件
 * @date: 2026.03.18
 * @description: 定义安全中间件
 * @func:
 *   - GinRequestIDMiddleware 请求ID中间件,为每个请求添加唯一的请求ID,并把请求ID与客户端IP写入标准上下文
 *   - GinCORSMiddleware CORS跨域资源共享中间件,按配置设置CORS头部信息
 *   - GinSecurityHeadersMiddleware 安全头部中间件
 *   - GinNoIndexMiddleware 禁用索引中间件
 */
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"backoffice/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GinRequestIDMiddleware 请求ID中间件
// 为每个请求生成唯一ID，便于日志追踪和问题排查
func (m *MiddlewareManager) GinRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 检查是否已有请求ID（可能来自负载均衡器或代理）
		requestID := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if requestID == "" || len(requestID) > 64 {
			requestID = utils.MustUUID()
		}
		clientIP := utils.NormalizeIP(c.ClientIP())

		c.Set(utils.GinKeyRequestID, requestID)
		c.Set(utils.GinKeyClientIP, clientIP)
		c.Header("X-Request-ID", requestID)
		// service 层只使用标准上下文
		c.Request = c.Request.WithContext(utils.WithRequestMeta(c.Request.Context(), requestID, clientIP))

		c.Next()
	}
}

// GinCORSMiddleware CORS跨域资源共享中间件
func (m *MiddlewareManager) GinCORSMiddleware() gin.HandlerFunc {
	cfg := m.securityConfig.CORS
	allowed := make(map[string]struct{}, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		allowed[o] = struct{}{}
	}
	methods := strings.Join(cfg.AllowMethods, ", ")
	if methods == "" {
		methods = "GET, POST, PUT, DELETE, PATCH, OPTIONS"
	}
	headers := strings.Join(cfg.AllowHeaders, ", ")
	if headers == "" {
		headers = "Origin, Content-Type, Accept, Authorization, X-Request-ID"
	}
	expose := strings.Join(cfg.ExposeHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			_, ok := allowed[origin]
			if !ok && !cfg.AllowAllOrigins {
				logrus.WithFields(logrus.Fields{
					"path":      c.Request.URL.Path,
					"operation": "cors_middleware",
					"origin":    origin,
				}).Debug("Origin not allowed")
				if c.Request.Method == http.MethodOptions {
					c.AbortWithStatus(http.StatusForbidden)
					return
				}
				c.Next()
				return
			}
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			if cfg.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}
		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)
		if expose != "" {
			c.Header("Access-Control-Expose-Headers", expose)
		}
		if cfg.MaxAge > 0 {
			c.Header("Access-Control-Max-Age", maxAge)
		}

		// 处理预检请求（OPTIONS方法）
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// GinSecurityHeadersMiddleware 安全头中间件
func (m *MiddlewareManager) GinSecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		// 仅在HTTPS环境下设置
		if c.Request.TLS != nil || c.Request.Header.Get("X-Forwarded-Proto") == "https" {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}

// GinNoIndexMiddleware 防止搜索引擎索引中间件
func (m *MiddlewareManager) GinNoIndexMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Robots-Tag", "noindex, nofollow")
		c.Next()
	}
}
