package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backoffice/internal/app/master/middleware"
	"backoffice/internal/app/master/setup"
	"backoffice/internal/config"
	"backoffice/internal/model"
	"backoffice/internal/model/audit"
	"backoffice/internal/pkg/auth"
	"backoffice/internal/pkg/database"
	"backoffice/internal/pkg/database/dbtest"
	"backoffice/internal/pkg/excel"
	"backoffice/internal/pkg/query"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type testServer struct {
	engine  *gin.Engine
	modules *setup.Modules
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode, MaxUploadSize: 1 << 20},
		Security: config.SecurityConfig{
			JWT:      config.JWTConfig{Secret: "router-test-secret-0123456789abcdef", Issuer: "backoffice", AccessTokenExpire: time.Hour},
			Password: config.PasswordConfig{Memory: 1024, Iterations: 1, Parallelism: 1, MinLength: 6},
			Audit:    config.AuditConfig{Enabled: true, MaxParamBytes: 1024},
		},
		Session: config.SessionConfig{Store: "memory", MaxAge: time.Hour},
		App:     config.AppConfig{Name: "backoffice", Version: "test", ExportLimit: 1000},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := dbtest.New(t)
	cfg := testConfig()

	_, err := database.Seed(context.Background(), db, &database.SeedData{
		Modules: []database.SeedModule{
			{Name: "hr", Title: "人事", Entities: []database.SeedEntity{{Name: "position", Title: "岗位"}}},
			{Name: "system", Title: "系统", Entities: []database.SeedEntity{{Name: "user", Title: "用户"}}},
		},
		Roles: []database.SeedRole{
			{Name: "管理员", Code: "admin", Permissions: []string{"*"}},
			{Name: "只读", Code: "viewer", Permissions: []string{"hr:position:list"}},
		},
		Users: []database.SeedUser{
			{Username: "admin", Password: "Admin@123", Nickname: "管理员", Roles: []string{"admin"}},
			{Username: "viewer", Password: "Viewer@123", Nickname: "只读", Roles: []string{"viewer"}},
		},
	}, auth.NewPasswordManager(&cfg.Security.Password))
	require.NoError(t, err)

	modules, err := setup.BuildModules(db, nil, cfg)
	require.NoError(t, err)
	mm := middleware.NewMiddlewareManager(modules.Auth.SessionService, modules.Audit.AuditLogService, modules.Audit.ErrorLogService, &cfg.Security)
	t.Cleanup(func() {
		mm.Close()
		_ = modules.Close()
	})

	r := NewRouter(cfg, modules, mm, map[string]ReadinessCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})
	r.SetupRoutes()
	return &testServer{engine: r.GetEngine(), modules: modules}
}

func (s *testServer) do(method, path, token, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	return s.do(method, path, token, "application/json", body)
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	w := s.doJSON(http.MethodPost, "/api/auth/login", "", model.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Data model.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

// envelope 解析响应信封，Data 保留原始 JSON
type envelope struct {
	Code    int             `json:"code"`
	Success bool            `json:"success"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestRouter_HealthRoutes(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/health", "/api/live"} {
		w := s.do(http.MethodGet, path, "", "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := s.do(http.MethodGet, "/api/ready", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ready struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ready))
	assert.Equal(t, "ready", ready.Status)
	assert.Equal(t, "ok", ready.Checks["database"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_AuthenticationRequired(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/hr/position/list", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, decode(t, w).Success)

	w = s.do(http.MethodGet, "/api/hr/position/list", "not-a-jwt", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.doJSON(http.MethodPost, "/api/auth/login", "", model.LoginRequest{Username: "admin", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	logs, err := s.modules.Audit.LoginLogService.List(context.Background(), &audit.LoginLogQuery{Username: "admin"}, query.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), logs.Total)
	assert.False(t, logs.Items[0].Success)
}

func TestRouter_PositionCRUD(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin", "Admin@123")

	w := s.doJSON(http.MethodPost, "/api/hr/position", token, map[string]interface{}{"position_name": "工程师", "position_code": "ENG", "sort": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.IDResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	require.NotZero(t, created.ID)
	path := "/api/hr/position/" + jsonNumber(created.ID)

	w = s.doJSON(http.MethodPost, "/api/hr/position", token, map[string]interface{}{"position_name": "重复", "position_code": "ENG"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.doJSON(http.MethodPost, "/api/hr/position", token, map[string]interface{}{"position_code": "NONAME"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.doJSON(http.MethodPut, path, token, map[string]interface{}{"position_name": "高级工程师", "position_code": "ENG", "sort": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, path, token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), "高级工程师")

	w = s.doJSON(http.MethodPut, path+"/status", token, map[string]interface{}{"is_enabled": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.doJSON(http.MethodPut, path+"/status", token, map[string]interface{}{"is_enabled": 0})
	assert.Equal(t, http.StatusOK, w.Code, "changing to the same status is a no-op")

	w = s.do(http.MethodGet, "/api/hr/position/list?page_num=1&page_size=5&is_enabled=0", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page query.PageResult[map[string]interface{}]
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 5, page.PageSize)

	w = s.do(http.MethodDelete, path, token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, path, token, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	assert.Equal(t, http.StatusNotFound, env.Code)
	assert.Equal(t, "error", env.Status)

	w = s.do(http.MethodGet, "/api/hr/position/abc", token, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_PermissionCodes(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "viewer", "Viewer@123")

	w := s.do(http.MethodGet, "/api/hr/position/list", token, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.doJSON(http.MethodPost, "/api/hr/position", token, map[string]interface{}{"position_name": "x", "position_code": "X"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/system/user/list", token, "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/auth/profile", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), "hr:position:list")
}

func TestRouter_ImportJSONArray(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin", "Admin@123")

	rows := []map[string]interface{}{
		{"position_name": "工程师", "position_code": "ENG"},
		{"position_code": "NONAME"},
		{"position_name": "测试", "position_code": "QA"},
	}
	w := s.doJSON(http.MethodPost, "/api/hr/position/import", token, rows)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result model.ImportResult
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &result))
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 1, result.Fail)
	require.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0], "第2行"))

	w = s.doJSON(http.MethodPost, "/api/hr/position/import", token, map[string]string{"position_name": "not-an-array"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_ExcelTemplateImportExport(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin", "Admin@123")

	w := s.do(http.MethodGet, "/api/hr/position/template", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, excel.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "filename*=UTF-8''")

	upload := positionWorkbook(t, [][]string{
		{"岗位名称", "岗位编码", "排序", "备注"},
		{"工程师", "ENG", "1", ""},
		{"", "", "", ""},
		{"测试", "QA", "abc", ""},
		{"产品", "PM", "3", "新岗位"},
	})
	w = s.uploadFile("/api/hr/position/import", token, "positions.xlsx", upload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result model.ImportResult
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &result))
	assert.Equal(t, 3, result.Total, "blank rows are skipped")
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 1, result.Fail)

	w = s.uploadFile("/api/hr/position/import", token, "positions.csv", []byte("a,b"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/hr/position/export?position_code=PM", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	sheetRows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, sheetRows, 2)
	assert.Equal(t, "产品", sheetRows[1][1])
}

func TestRouter_AuditAndLogout(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin", "Admin@123")

	w := s.doJSON(http.MethodPost, "/api/hr/position", token, map[string]interface{}{"position_name": "工程师", "position_code": "ENG"})
	require.Equal(t, http.StatusCreated, w.Code)

	logs, err := s.modules.Audit.AuditLogService.List(context.Background(), &audit.AuditLogQuery{Module: "hr"}, query.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), logs.Total)
	entry := logs.Items[0]
	assert.Equal(t, "admin", entry.Username)
	assert.Equal(t, "hr:position:add", entry.Operation)
	assert.Equal(t, http.StatusCreated, entry.StatusCode)
	assert.True(t, entry.Success)

	w = s.do(http.MethodGet, "/api/audit/auditlog/list?module=hr", token, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/auth/logout", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/auth/profile", token, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "revoked token is rejected")
}

func (s *testServer) uploadFile(path, token, filename string, data []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", filename)
	_, _ = part.Write(data)
	_ = mw.Close()
	return s.do(http.MethodPost, path, token, mw.FormDataContentType(), body.Bytes())
}

func positionWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func jsonNumber(id uint64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
