/**
 * 中间件:限流器中间件
 * @date: 2026.03.18
 * @description: 按客户端(已登录用户按用户ID)分桶的令牌桶限流
 * @func:
 *   - KeyedLimiter 每个键一个 rate.Limiter，空闲桶定期回收
 *   - GinRateLimitMiddleware 超限返回 429
 */
package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"backoffice/internal/pkg/logger"
	"backoffice/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const defaultLimiterIdle = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter 按键分桶的令牌桶限流器
type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
	idle    time.Duration
	stop    chan struct{}
	once    sync.Once
}

// NewKeyedLimiter 创建限流器，perSecond<=0 时不限流
func NewKeyedLimiter(perSecond, burst int, idle time.Duration) *KeyedLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = perSecond
	}
	if idle <= 0 {
		idle = defaultLimiterIdle
	}
	l := &KeyedLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   limit,
		burst:   burst,
		idle:    idle,
		stop:    make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// Allow 检查是否允许请求
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = time.Now()
	l.mu.Unlock()
	return e.limiter.Allow()
}

// Stop 停止清理协程，可重复调用
func (l *KeyedLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func (l *KeyedLimiter) cleanup() {
	ticker := time.NewTicker(l.idle)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for key, e := range l.entries {
				if now.Sub(e.lastSeen) > l.idle {
					delete(l.entries, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// GinRateLimitMiddleware 默认限流中间件，未启用时直接放行
func (m *MiddlewareManager) GinRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.rateLimiter == nil || m.shouldSkipRateLimit(c.Request.URL.Path) {
			c.Next()
			return
		}
		clientIP := utils.NormalizeIP(c.ClientIP())
		key := "ip:" + clientIP
		if uid := utils.GetCurrentUserID(c); uid > 0 {
			key = fmt.Sprintf("user:%d", uid)
		}
		if !m.rateLimiter.Allow(key) {
			logger.LogBusinessOperation("rate_limit_exceeded", utils.GetCurrentUserID(c), utils.GetCurrentUsername(c), clientIP, utils.GetRequestID(c), "failed", "请求过于频繁", map[string]interface{}{
				"path": c.Request.URL.Path,
				"key":  key,
			})
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"success": false,
				"status":  "error",
				"message": "请求过于频繁，请稍后再试",
			})
			return
		}
		c.Next()
	}
}

func (m *MiddlewareManager) shouldSkipRateLimit(path string) bool {
	for _, skip := range m.securityConfig.RateLimit.SkipPaths {
		if strings.HasPrefix(path, skip) {
			return true
		}
	}
	return false
}
