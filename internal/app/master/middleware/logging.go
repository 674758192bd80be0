/**
 * 中间件:日志相关中间件
 * @date: 2026.03.18
 * @description: 访问日志、错误日志与异常恢复
 * @func:
 *   - GinLoggingMiddleware 访问日志，5xx 响应写入错误日志表
 *   - GinRecoveryMiddleware 捕获 panic，写入错误日志表并返回 500
 */
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"backoffice/internal/handler"
	"backoffice/internal/model/audit"
	"backoffice/internal/pkg/logger"
	"backoffice/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

const maxStackBytes = 8 << 10

// GinLoggingMiddleware Gin日志中间件
// 使用方式: router.Use(middlewareManager.GinLoggingMiddleware())
func (m *MiddlewareManager) GinLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.LogAccessRequest(c, start, utils.GetRequestID(c), utils.GetCurrentUserID(c))

		if c.Writer.Status() < http.StatusInternalServerError {
			return
		}
		// 处理器内部错误由 handler.Fail 写入上下文
		message := http.StatusText(c.Writer.Status())
		if v, ok := c.Get(handler.GinKeyError); ok {
			if err, ok := v.(error); ok {
				message = err.Error()
			}
		} else if len(c.Errors) > 0 {
			message = c.Errors.String()
		}
		m.recordError(c, message, "")
	}
}

// GinRecoveryMiddleware 异常恢复中间件，需放在日志中间件之后
func (m *MiddlewareManager) GinRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			stack := debug.Stack()
			if len(stack) > maxStackBytes {
				stack = stack[:maxStackBytes]
			}
			err := fmt.Errorf("panic: %v", rec)
			logger.LogError(err, utils.GetRequestID(c), utils.GetCurrentUserID(c), utils.NormalizeIP(c.ClientIP()), c.Request.URL.Path, c.Request.Method, map[string]interface{}{
				"operation": "panic_recovery",
				"stack":     string(stack),
			})
			m.recordError(c, err.Error(), string(stack))
			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    http.StatusInternalServerError,
					"success": false,
					"status":  "error",
					"message": "服务器内部错误",
				})
			} else {
				c.Abort()
			}
			c.Set(handler.GinKeyError, err)
		}()
		c.Next()
	}
}

// 同一请求只写一条错误日志
const keyErrorRecorded = "error_recorded"

func (m *MiddlewareManager) recordError(c *gin.Context, message, stack string) {
	if m.errorLogs == nil || c.GetBool(keyErrorRecorded) {
		return
	}
	c.Set(keyErrorRecorded, true)
	if len(message) > 1000 {
		message = message[:1000]
	}
	entry := &audit.ErrorLog{
		RequestID: utils.GetRequestID(c),
		UserID:    utils.GetCurrentUserID(c),
		Username:  utils.GetCurrentUsername(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		ClientIP:  utils.NormalizeIP(c.ClientIP()),
		Message:   message,
		Stack:     stack,
	}
	// 请求可能已被取消，日志写入不跟随请求生命周期
	ctx := context.WithoutCancel(c.Request.Context())
	_ = m.errorLogs.Record(ctx, entry)
}
