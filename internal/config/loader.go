package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig 加载配置文件
// configPath: 配置目录，为空时依次取 BACKOFFICE_CONFIG_PATH、configs
// env: 环境标识 development / test / production，为空时读取 BACKOFFICE_ENV
// 加载顺序：.env 文件 -> config.yaml -> config.{env}.yaml 覆盖 -> 环境变量覆盖
func LoadConfig(configPath, env string) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	if env == "" {
		env = getEnvFromEnvironment()
	}
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvironmentVariables(v)

	baseFile := filepath.Join(configPath, "config.yaml")
	v.SetConfigFile(baseFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", baseFile, err)
	}

	if overlay := getOverlayFileName(configPath, env); overlay != "" {
		v.SetConfigFile(overlay)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to merge config file %s: %w", overlay, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.App.Environment == "" {
		config.App.Environment = env
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// MustLoadConfig 加载配置，如果失败则panic
func MustLoadConfig(configPath, env string) *Config {
	config, err := LoadConfig(configPath, env)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	return config
}

// getEnvFromEnvironment 从环境变量获取环境标识
func getEnvFromEnvironment() string {
	env := NewEnvManager("").GetString("env", os.Getenv("GO_ENV"))
	if env == "" {
		env = "development"
	}
	return env
}

// getDefaultConfigPath 获取默认配置目录
func getDefaultConfigPath() string {
	return NewEnvManager("").GetString("config_path", "configs")
}

// getOverlayFileName 环境覆盖文件，不存在时返回空串
func getOverlayFileName(configPath, env string) string {
	var name string
	switch env {
	case "production", "prod":
		name = "config.prod.yaml"
	case "test", "testing":
		name = "config.test.yaml"
	case "development", "dev":
		name = "config.dev.yaml"
	default:
		return ""
	}
	file := filepath.Join(configPath, name)
	if _, err := os.Stat(file); err != nil {
		return ""
	}
	return file
}

// setDefaults 配置文件未给出时的默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.max_upload_size", 10<<20)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.mysql.charset", "utf8mb4")
	v.SetDefault("database.mysql.parse_time", true)
	v.SetDefault("database.mysql.loc", "Local")
	v.SetDefault("database.mysql.log_level", "warn")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("security.jwt.issuer", "backoffice")
	v.SetDefault("security.jwt.access_token_expire", "2h")
	v.SetDefault("security.password.memory", 64*1024)
	v.SetDefault("security.password.iterations", 3)
	v.SetDefault("security.password.parallelism", 2)
	v.SetDefault("security.password.min_length", 6)
	v.SetDefault("security.audit.enabled", true)
	v.SetDefault("security.audit.max_param_bytes", 2048)
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.max_age", "2h")
	v.SetDefault("app.name", "backoffice")
	v.SetDefault("app.language", "zh-CN")
	v.SetDefault("app.export_limit", 10000)
	v.SetDefault("app.cache_ttl", "10m")
}

// bindEnvironmentVariables 绑定常用环境变量别名
func bindEnvironmentVariables(v *viper.Viper) {
	bind := func(key, env string) { _ = v.BindEnv(key, EnvPrefix+"_"+env) }

	bind("database.driver", "DB_DRIVER")
	bind("database.mysql.host", "MYSQL_HOST")
	bind("database.mysql.port", "MYSQL_PORT")
	bind("database.mysql.username", "MYSQL_USERNAME")
	bind("database.mysql.password", "MYSQL_PASSWORD")
	bind("database.mysql.database", "MYSQL_DATABASE")

	bind("database.redis.host", "REDIS_HOST")
	bind("database.redis.port", "REDIS_PORT")
	bind("database.redis.password", "REDIS_PASSWORD")

	bind("security.jwt.secret", "JWT_SECRET")
	bind("server.port", "SERVER_PORT")
	bind("server.mode", "SERVER_MODE")
	bind("log.level", "LOG_LEVEL")
	bind("session.store", "SESSION_STORE")
	bind("app.environment", "APP_ENVIRONMENT")
}

// validateConfig 验证配置
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if !contains([]string{"debug", "release", "test"}, config.Server.Mode) {
		return fmt.Errorf("invalid server mode: %s", config.Server.Mode)
	}

	switch config.Database.Driver {
	case "mysql":
		if config.Database.MySQL.Host == "" {
			return fmt.Errorf("mysql host is required")
		}
		if config.Database.MySQL.Database == "" {
			return fmt.Errorf("mysql database name is required")
		}
	case "sqlite":
		if config.Database.SQLite.Path == "" {
			return fmt.Errorf("sqlite path is required")
		}
	default:
		return fmt.Errorf("invalid database driver: %s", config.Database.Driver)
	}

	if config.Security.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if len(config.Security.JWT.Secret) < 32 {
		return fmt.Errorf("jwt secret must be at least 32 characters long")
	}

	if !contains([]string{"debug", "info", "warn", "error", "fatal", "panic"}, config.Log.Level) {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if !contains([]string{"json", "text"}, config.Log.Format) {
		return fmt.Errorf("invalid log format: %s", config.Log.Format)
	}
	if !contains([]string{"stdout", "stderr", "file"}, config.Log.Output) {
		return fmt.Errorf("invalid log output: %s", config.Log.Output)
	}
	if config.Log.Output == "file" && config.Log.FilePath == "" {
		return fmt.Errorf("log file path is required when output is file")
	}

	if !contains([]string{"memory", "redis"}, config.Session.Store) {
		return fmt.Errorf("invalid session store: %s", config.Session.Store)
	}
	if config.Session.Store == "redis" && !config.Database.Redis.Enabled() {
		return fmt.Errorf("redis host is required when session store is redis")
	}

	if config.App.ExportLimit <= 0 {
		return fmt.Errorf("app.export_limit must be positive")
	}
	return nil
}

// contains 检查切片是否包含指定元素
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
