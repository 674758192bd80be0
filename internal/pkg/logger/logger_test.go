package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"backoffice/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHookRoutesByType(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: filepath.Join(dir, "app.log"),
		MaxSize:  1,
	}
	prev := LoggerInstance
	t.Cleanup(func() { LoggerInstance = prev })

	_, err := InitLogger(cfg)
	require.NoError(t, err)

	LogBusinessOperation("create_config", 1, "admin", "127.0.0.1", "req-1", "success", "ok", nil)
	LogError(errors.New("boom"), "req-2", 1, "127.0.0.1", "/api/core/config", "POST", nil)
	LogSystemEvent("database", "connect", "connected", logrus.InfoLevel, nil)
	WithFields(logrus.Fields{"component": "test"}).Info("plain entry")

	for _, name := range []string{"business.log", "error.log", "system.log", "app.log"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "error.log"))
	assert.Contains(t, string(data), "boom")
}

func TestUpdateConfig(t *testing.T) {
	prev := LoggerInstance
	t.Cleanup(func() { LoggerInstance = prev })

	lm, err := InitLogger(&config.LogConfig{Level: "info", Format: "text", Output: "stdout"})
	require.NoError(t, err)

	require.NoError(t, lm.UpdateConfig(&config.LogConfig{Level: "debug", Format: "json", Output: "file"}))
	assert.Equal(t, "debug", lm.Level())
	assert.Equal(t, "stdout", lm.config.Output)

	assert.Error(t, lm.UpdateConfig(&config.LogConfig{Level: "loud", Format: "json"}))
	assert.Error(t, lm.UpdateConfig(nil))
}

func TestInitLoggerRejectsBadFormat(t *testing.T) {
	prev := LoggerInstance
	t.Cleanup(func() { LoggerInstance = prev })

	_, err := InitLogger(&config.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
	_, err = InitLogger(nil)
	assert.Error(t, err)
}
