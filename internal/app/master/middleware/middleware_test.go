package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/model/audit"
	"backoffice/internal/model/system"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth struct {
	sessions map[string]*system.SessionData
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*system.SessionData, error) {
	if s, ok := f.sessions[token]; ok {
		return s, nil
	}
	return nil, system.ErrTokenInvalid
}

type auditSink struct {
	mu      sync.Mutex
	entries []*audit.AuditLog
}

func (s *auditSink) Record(_ context.Context, e *audit.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

type errorSink struct {
	mu      sync.Mutex
	entries []*audit.ErrorLog
}

func (s *errorSink) Record(_ context.Context, e *audit.ErrorLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func newManager(t *testing.T, sec config.SecurityConfig) (*MiddlewareManager, *auditSink, *errorSink) {
	t.Helper()
	auth := &fakeAuth{sessions: map[string]*system.SessionData{
		"admin-token":  {UserID: 1, Username: "admin", Roles: []string{system.SuperAdminRole}},
		"viewer-token": {UserID: 2, Username: "viewer", Roles: []string{"viewer"}, Permissions: []string{"hr:position:list"}},
	}}
	audits, errs := &auditSink{}, &errorSink{}
	m := NewMiddlewareManager(auth, audits, errs, &sec)
	t.Cleanup(m.Close)
	return m, audits, errs
}

func serve(engine *gin.Engine, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAndPermission(t *testing.T) {
	m, _, _ := newManager(t, config.SecurityConfig{})
	engine := gin.New()
	api := engine.Group("/api", m.GinJWTAuthMiddleware())
	api.GET("/hr/position/list", m.GinRequirePermission("hr:position:list"), func(c *gin.Context) { c.Status(http.StatusOK) })
	api.POST("/hr/position", m.GinRequirePermission("hr:position:add"), func(c *gin.Context) { c.Status(http.StatusCreated) })
	api.GET("/admin", m.GinAdminRoleMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"missing token", http.MethodGet, "/api/hr/position/list", "", http.StatusUnauthorized},
		{"unknown token", http.MethodGet, "/api/hr/position/list", "nope", http.StatusUnauthorized},
		{"granted", http.MethodGet, "/api/hr/position/list", "viewer-token", http.StatusOK},
		{"denied", http.MethodPost, "/api/hr/position", "viewer-token", http.StatusForbidden},
		{"admin bypass", http.MethodPost, "/api/hr/position", "admin-token", http.StatusCreated},
		{"admin only", http.MethodGet, "/api/admin", "viewer-token", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(engine, tc.method, tc.path, tc.token, nil)
			assert.Equal(t, tc.want, w.Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/hr/position/list", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuditRecordsMutationsWithMaskedParams(t *testing.T) {
	m, audits, _ := newManager(t, config.SecurityConfig{
		Audit: config.AuditConfig{Enabled: true, SkipPaths: []string{"/api/auth"}, MaxParamBytes: 512},
	})
	engine := gin.New()
	api := engine.Group("/api", m.GinJWTAuthMiddleware(), m.GinAuditMiddleware())
	api.POST("/system/user", m.GinRequirePermission("system:user:add"), func(c *gin.Context) {
		var body map[string]interface{}
		require.NoError(t, c.ShouldBindJSON(&body), "body is restored for the handler")
		assert.Equal(t, "secret123", body["password"])
		c.Status(http.StatusCreated)
	})
	api.GET("/system/user/list", m.GinRequirePermission("system:user:list"), func(c *gin.Context) { c.Status(http.StatusOK) })
	api.POST("/auth/logout", func(c *gin.Context) { c.Status(http.StatusOK) })

	payload := `{"username":"bob","password":"secret123","profile":{"old_password":"x"}}`
	w := serve(engine, http.MethodPost, "/api/system/user", "admin-token", strings.NewReader(payload))
	require.Equal(t, http.StatusCreated, w.Code)
	serve(engine, http.MethodGet, "/api/system/user/list", "admin-token", nil)
	serve(engine, http.MethodPost, "/api/auth/logout", "admin-token", nil)

	require.Len(t, audits.entries, 1, "reads and skipped paths are not audited")
	e := audits.entries[0]
	assert.Equal(t, "system", e.Module)
	assert.Equal(t, "system:user:add", e.Operation)
	assert.Equal(t, "admin", e.Username)
	assert.Equal(t, uint64(1), e.UserID)
	assert.Equal(t, http.StatusCreated, e.StatusCode)
	assert.True(t, e.Success)
	assert.NotContains(t, e.Params, "secret123")
	assert.NotContains(t, e.Params, `"x"`)
	assert.Contains(t, e.Params, maskedValue)
	assert.Contains(t, e.Params, "bob")
}

func TestAuditRecordsFailures(t *testing.T) {
	m, audits, _ := newManager(t, config.SecurityConfig{Audit: config.AuditConfig{Enabled: true}})
	engine := gin.New()
	api := engine.Group("/api", m.GinJWTAuthMiddleware(), m.GinAuditMiddleware())
	api.DELETE("/hr/position/:id", m.GinRequirePermission("hr:position:remove"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, http.MethodDelete, "/api/hr/position/7", "viewer-token", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Len(t, audits.entries, 1)
	assert.False(t, audits.entries[0].Success)
	assert.Equal(t, "hr:position:remove", audits.entries[0].Operation)
	assert.Equal(t, "/api/hr/position/7", audits.entries[0].Path)
}

func TestModuleOf(t *testing.T) {
	assert.Equal(t, "hr", moduleOf("/api/hr/position/:id"))
	assert.Equal(t, "audit", moduleOf("/api/audit/auditlog/clean"))
	assert.Equal(t, "", moduleOf("/api"))
	assert.Equal(t, "", moduleOf("/health"))
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	s := truncate("岗位名称", 4)
	assert.Equal(t, "岗", s)
}

func TestRecoveryWritesErrorLog(t *testing.T) {
	m, _, errs := newManager(t, config.SecurityConfig{})
	engine := gin.New()
	engine.Use(m.GinRequestIDMiddleware(), m.GinLoggingMiddleware(), m.GinRecoveryMiddleware())
	engine.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := serve(engine, http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "服务器内部错误")
	require.Len(t, errs.entries, 1, "logging middleware does not record twice")
	assert.Contains(t, errs.entries[0].Message, "kaboom")
	assert.NotEmpty(t, errs.entries[0].Stack)
	assert.NotEmpty(t, errs.entries[0].RequestID)
}

func TestRateLimit(t *testing.T) {
	m, _, _ := newManager(t, config.SecurityConfig{
		RateLimit: config.RateLimitConfig{Enabled: true, RequestsPerSecond: 1, BurstSize: 2, SkipPaths: []string{"/api/health"}},
	})
	engine := gin.New()
	engine.Use(m.GinRateLimitMiddleware())
	engine.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, serve(engine, http.MethodGet, "/api/ping", "", nil).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/health", "", nil).Code)
	}
}

func TestKeyedLimiterBuckets(t *testing.T) {
	l := NewKeyedLimiter(1, 1, time.Minute)
	defer l.Stop()

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "each key has its own bucket")

	unlimited := NewKeyedLimiter(0, 0, 0)
	defer unlimited.Stop()
	for i := 0; i < 100; i++ {
		require.True(t, unlimited.Allow("x"))
	}
	l.Stop()
}

func TestCORS(t *testing.T) {
	m, _, _ := newManager(t, config.SecurityConfig{CORS: config.CORSConfig{
		Enabled:      true,
		AllowOrigins: []string{"https://admin.example.com"},
		MaxAge:       time.Hour,
	}})
	engine := gin.New()
	engine.Use(m.GinCORSMiddleware())
	engine.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/ping", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodOptions, "/api/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/ping", bytes.NewReader(nil))
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
