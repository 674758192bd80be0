package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `
server:
  host: "127.0.0.1"
  port: 8080
  mode: "test"
  read_timeout: 30s
database:
  mysql:
    host: "localhost"
    port: 3306
    username: "bo"
    password: "secret"
    database: "backoffice"
    max_open_conns: 50
    conn_max_lifetime: 3600s
  redis:
    host: ""
security:
  jwt:
    secret: "test_jwt_secret_key_at_least_32_chars"
    access_token_expire: 30m
  cors:
    enabled: true
    allow_origins: ["http://localhost:3000"]
log:
  level: "info"
  format: "json"
  output: "stdout"
session:
  store: "memory"
app:
  name: "backoffice-test"
  export_limit: 500
`

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml", baseConfig)

	cfg, err := LoadConfig(dir, "development")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.GetAddress())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout, "default applies")
	assert.Equal(t, "utf8mb4", cfg.Database.MySQL.Charset)
	assert.Equal(t, time.Hour, cfg.Database.MySQL.ConnMaxLifetime)
	assert.False(t, cfg.Database.Redis.Enabled())
	assert.Equal(t, 30*time.Minute, cfg.Security.JWT.AccessTokenExpire)
	assert.Equal(t, uint32(3), cfg.Security.Password.Iterations)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Security.CORS.AllowOrigins)
	assert.Equal(t, 500, cfg.App.ExportLimit)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Contains(t, cfg.Database.MySQL.GetMySQLDSN(), "bo:secret@tcp(localhost:3306)/backoffice?charset=utf8mb4")
}

func TestLoadConfig_EnvironmentOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml", baseConfig)
	writeConfig(t, dir, "config.prod.yaml", "server:\n  mode: \"release\"\nlog:\n  level: \"warn\"\n")

	cfg, err := LoadConfig(dir, "production")
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "localhost", cfg.Database.MySQL.Host, "overlay keeps untouched keys")
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml", baseConfig)
	t.Setenv("BACKOFFICE_MYSQL_HOST", "db.internal")
	t.Setenv("BACKOFFICE_SERVER_PORT", "9090")

	cfg, err := LoadConfig(dir, "test")
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.MySQL.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir(), "development")
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080, Mode: "release"},
			Database: DatabaseConfig{Driver: "mysql", MySQL: MySQLConfig{Host: "h", Database: "d"}},
			Security: SecurityConfig{JWT: JWTConfig{Secret: "0123456789abcdef0123456789abcdef"}},
			Log:      LogConfig{Level: "info", Format: "json", Output: "stdout"},
			Session:  SessionConfig{Store: "memory"},
			App:      AppConfig{ExportLimit: 10},
		}
	}
	require.NoError(t, validateConfig(valid()))

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad_port", func(c *Config) { c.Server.Port = 70000 }},
		{"bad_mode", func(c *Config) { c.Server.Mode = "fast" }},
		{"no_mysql_host", func(c *Config) { c.Database.MySQL.Host = "" }},
		{"bad_driver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"sqlite_without_path", func(c *Config) { c.Database.Driver = "sqlite" }},
		{"short_secret", func(c *Config) { c.Security.JWT.Secret = "short" }},
		{"bad_level", func(c *Config) { c.Log.Level = "loud" }},
		{"file_without_path", func(c *Config) { c.Log.Output = "file" }},
		{"redis_store_without_redis", func(c *Config) { c.Session.Store = "redis" }},
		{"zero_export_limit", func(c *Config) { c.App.ExportLimit = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, validateConfig(c))
		})
	}
}

func TestEnvManager(t *testing.T) {
	em := NewEnvManager("")
	t.Setenv("BACKOFFICE_MYSQL_PORT", "3307")
	t.Setenv("BACKOFFICE_APP_DEBUG", "true")
	t.Setenv("BACKOFFICE_BROKEN_INT", "x")

	assert.Equal(t, 3307, em.GetInt("mysql.port", 0))
	assert.True(t, em.GetBool("app-debug", false))
	assert.Equal(t, 5, em.GetInt("broken_int", 5))
	assert.Equal(t, "fallback", em.GetString("missing", "fallback"))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("BACKOFFICE_DOTENV_PROBE=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("BACKOFFICE_DOTENV_PROBE") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env"), file))
	assert.Equal(t, "loaded", os.Getenv("BACKOFFICE_DOTENV_PROBE"))
}

func TestConfigWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml", baseConfig)
	cfg, err := LoadConfig(dir, "development")
	require.NoError(t, err)

	cw, err := NewConfigWatcher(dir, "development", cfg, logrus.New())
	require.NoError(t, err)
	cw.debounce = 20 * time.Millisecond

	changed := make(chan string, 1)
	cw.AddCallback(func(oldConfig, newConfig *Config) error {
		select {
		case changed <- oldConfig.Log.Level + "->" + newConfig.Log.Level:
		default:
		}
		return nil
	})
	require.NoError(t, cw.Start())
	t.Cleanup(func() { _ = cw.Stop() })

	writeConfig(t, dir, "config.yaml", strings.Replace(baseConfig, `level: "info"`, `level: "debug"`, 1))

	select {
	case got := <-changed:
		assert.Equal(t, "info->debug", got)
		assert.Equal(t, "debug", cw.Current().Log.Level)
	case <-time.After(3 * time.Second):
		t.Fatal("config reload callback not invoked")
	}
}

func TestIsConfigFile(t *testing.T) {
	assert.True(t, isConfigFile("/etc/app/config.yaml"))
	assert.True(t, isConfigFile("config.prod.yml"))
	assert.False(t, isConfigFile("seed.yaml"))
	assert.False(t, isConfigFile("config.json"))
}
