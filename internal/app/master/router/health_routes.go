/**
 * 路由:健康检查路由
 * @date: 2026.03.20
 * @description: 包含健康检查路由，就绪检查探测数据库与 Redis
 * @func:
 */

package router

import (
	"context"
	"net/http"
	"sort"
	"time"

	"backoffice/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// readinessTimeout 单个依赖的探测超时
const readinessTimeout = 2 * time.Second

// setupHealthRoutes 设置健康检查路由
func (r *Router) setupHealthRoutes(api *gin.RouterGroup) {
	// 健康检查
	api.GET("/health", r.healthCheck)
	// 就绪检查
	api.GET("/ready", r.readinessCheck)
	// 存活检查
	api.GET("/live", r.livenessCheck)
}

// 健康检查处理器
func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"name":      r.config.App.Name,
		"version":   r.config.App.Version,
		"timestamp": logger.NowFormatted(),
	})
}

// readinessCheck 就绪检查处理器，任一依赖不可用返回 503
func (r *Router) readinessCheck(c *gin.Context) {
	names := make([]string, 0, len(r.readiness))
	for name := range r.readiness {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]string, len(names))
	ready := true
	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		err := r.readiness[name](ctx)
		cancel()
		if err != nil {
			ready = false
			checks[name] = err.Error()
			logger.LogSystemEvent("router", "readiness", name+" not ready", logrus.WarnLevel, map[string]interface{}{
				"dependency": name,
				"error":      err.Error(),
			})
			continue
		}
		checks[name] = "ok"
	}

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"checks":    checks,
		"timestamp": logger.NowFormatted(),
	})
}

// livenessCheck 存活检查处理器
func (r *Router) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": logger.NowFormatted(),
	})
}
