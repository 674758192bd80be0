package config

import (
	"fmt"
	"time"
)

// Config 应用配置结构体
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`     // 服务器配置
	Database DatabaseConfig `yaml:"database" mapstructure:"database"` // 数据库配置
	Log      LogConfig      `yaml:"log" mapstructure:"log"`           // 日志配置
	Security SecurityConfig `yaml:"security" mapstructure:"security"` // 安全配置
	Session  SessionConfig  `yaml:"session" mapstructure:"session"`   // 会话配置
	App      AppConfig      `yaml:"app" mapstructure:"app"`           // 应用配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`                         // 服务器主机地址
	Port            int           `yaml:"port" mapstructure:"port"`                         // 服务器端口
	Mode            string        `yaml:"mode" mapstructure:"mode"`                         // 运行模式: debug, release, test
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`         // 读取超时时间
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`       // 写入超时时间
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`         // 空闲超时时间
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"` // 优雅关闭超时
	MaxHeaderBytes  int           `yaml:"max_header_bytes" mapstructure:"max_header_bytes"` // 最大请求头字节数
	MaxUploadSize   int64         `yaml:"max_upload_size" mapstructure:"max_upload_size"`   // 导入文件最大字节数
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string       `yaml:"driver" mapstructure:"driver"` // mysql / sqlite
	MySQL  MySQLConfig  `yaml:"mysql" mapstructure:"mysql"`   // MySQL配置
	SQLite SQLiteConfig `yaml:"sqlite" mapstructure:"sqlite"` // SQLite配置(单机演示、测试)
	Redis  RedisConfig  `yaml:"redis" mapstructure:"redis"`   // Redis配置
}

// SQLiteConfig 内嵌数据库配置
type SQLiteConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`           // 文件路径，":memory:" 为内存库
	LogLevel string `yaml:"log_level" mapstructure:"log_level"` // gorm 日志级别
}

// MySQLConfig MySQL数据库配置
type MySQLConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`                             // 数据库主机
	Port            int           `yaml:"port" mapstructure:"port"`                             // 数据库端口
	Username        string        `yaml:"username" mapstructure:"username"`                     // 用户名
	Password        string        `yaml:"password" mapstructure:"password"`                     // 密码
	Database        string        `yaml:"database" mapstructure:"database"`                     // 数据库名
	Charset         string        `yaml:"charset" mapstructure:"charset"`                       // 字符集
	ParseTime       bool          `yaml:"parse_time" mapstructure:"parse_time"`                 // 是否解析时间
	Loc             string        `yaml:"loc" mapstructure:"loc"`                               // 时区
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`         // 最大空闲连接数
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`         // 最大打开连接数
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`   // 连接最大生存时间
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" mapstructure:"conn_max_idle_time"` // 连接最大空闲时间
	LogLevel        string        `yaml:"log_level" mapstructure:"log_level"`                   // gorm 日志级别: silent, error, warn, info
	SlowThreshold   time.Duration `yaml:"slow_threshold" mapstructure:"slow_threshold"`         // 慢查询阈值
}

// RedisConfig Redis配置，Host 为空时不连接 Redis
type RedisConfig struct {
	Host         string        `yaml:"host" mapstructure:"host"`                     // Redis主机
	Port         int           `yaml:"port" mapstructure:"port"`                     // Redis端口
	Password     string        `yaml:"password" mapstructure:"password"`             // Redis密码
	Database     int           `yaml:"database" mapstructure:"database"`             // Redis数据库索引
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`           // 连接池大小
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"` // 最小空闲连接数
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`     // 连接超时
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`     // 读取超时
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`   // 写入超时
	KeyPrefix    string        `yaml:"key_prefix" mapstructure:"key_prefix"`         // 键前缀
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`             // 日志级别
	Format     string `yaml:"format" mapstructure:"format"`           // 日志格式: json, text
	Output     string `yaml:"output" mapstructure:"output"`           // 输出方式: stdout, stderr, file
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`     // 主日志文件路径，分类日志写在同目录
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`       // 单个日志文件最大大小(MB)
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"` // 保留的日志文件数量
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `yaml:"compress" mapstructure:"compress"`       // 是否压缩日志文件
	Caller     bool   `yaml:"caller" mapstructure:"caller"`           // 是否显示调用者信息
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	JWT       JWTConfig       `yaml:"jwt" mapstructure:"jwt"`               // JWT配置
	Password  PasswordConfig  `yaml:"password" mapstructure:"password"`     // 密码哈希参数
	Audit     AuditConfig     `yaml:"audit" mapstructure:"audit"`           // 操作审计
	CORS      CORSConfig      `yaml:"cors" mapstructure:"cors"`             // CORS配置
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"` // 限流配置
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret            string        `yaml:"secret" mapstructure:"secret"`                           // JWT密钥
	Issuer            string        `yaml:"issuer" mapstructure:"issuer"`                           // 签发者
	AccessTokenExpire time.Duration `yaml:"access_token_expire" mapstructure:"access_token_expire"` // 访问令牌过期时间
}

// PasswordConfig Argon2id 参数
type PasswordConfig struct {
	Memory      uint32 `yaml:"memory" mapstructure:"memory"`           // 内存(KB)
	Iterations  uint32 `yaml:"iterations" mapstructure:"iterations"`   // 迭代次数
	Parallelism uint8  `yaml:"parallelism" mapstructure:"parallelism"` // 并行度
	MinLength   int    `yaml:"min_length" mapstructure:"min_length"`   // 最小长度
}

// AuditConfig 操作审计配置
type AuditConfig struct {
	Enabled       bool     `yaml:"enabled" mapstructure:"enabled"`                 // 是否记录审计日志
	SkipPaths     []string `yaml:"skip_paths" mapstructure:"skip_paths"`           // 不审计的路径前缀
	MaxParamBytes int      `yaml:"max_param_bytes" mapstructure:"max_param_bytes"` // 请求参数最大记录字节
}

// CORSConfig CORS配置
type CORSConfig struct {
	Enabled          bool          `yaml:"enabled" mapstructure:"enabled"`                     // 是否启用CORS
	AllowAllOrigins  bool          `yaml:"allow_all_origins" mapstructure:"allow_all_origins"` // 是否允许所有源
	AllowOrigins     []string      `yaml:"allow_origins" mapstructure:"allow_origins"`         // 允许的源
	AllowMethods     []string      `yaml:"allow_methods" mapstructure:"allow_methods"`         // 允许的方法
	AllowHeaders     []string      `yaml:"allow_headers" mapstructure:"allow_headers"`         // 允许的请求头
	ExposeHeaders    []string      `yaml:"expose_headers" mapstructure:"expose_headers"`       // 暴露的响应头
	AllowCredentials bool          `yaml:"allow_credentials" mapstructure:"allow_credentials"` // 是否允许凭证
	MaxAge           time.Duration `yaml:"max_age" mapstructure:"max_age"`                     // 预检请求缓存时间
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled           bool     `yaml:"enabled" mapstructure:"enabled"`                         // 是否启用限流
	RequestsPerSecond int      `yaml:"requests_per_second" mapstructure:"requests_per_second"` // 每秒请求数限制
	BurstSize         int      `yaml:"burst_size" mapstructure:"burst_size"`                   // 突发请求数
	SkipPaths         []string `yaml:"skip_paths" mapstructure:"skip_paths"`                   // 跳过限流的路径
}

// SessionConfig 会话配置
type SessionConfig struct {
	Store  string        `yaml:"store" mapstructure:"store"`   // 存储方式: memory, redis
	MaxAge time.Duration `yaml:"max_age" mapstructure:"max_age"` // 会话最大存活时间
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`                 // 应用名称
	Version     string        `yaml:"version" mapstructure:"version"`           // 应用版本
	Environment string        `yaml:"environment" mapstructure:"environment"`   // 运行环境
	Timezone    string        `yaml:"timezone" mapstructure:"timezone"`         // 时区
	Language    string        `yaml:"language" mapstructure:"language"`         // 默认语言编码
	ExportLimit int           `yaml:"export_limit" mapstructure:"export_limit"` // 单次导出最大行数
	CacheTTL    time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`       // 参数配置缓存时长
	SeedFile    string        `yaml:"seed_file" mapstructure:"seed_file"`       // 初始化数据文件
}

// GetAddress 获取服务器完整地址
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsDevelopment 判断是否为开发环境
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction 判断是否为生产环境
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// GetMySQLDSN 获取MySQL数据源名称
func (m *MySQLConfig) GetMySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		m.Username, m.Password, m.Host, m.Port, m.Database, m.Charset, m.ParseTime, m.Loc)
}

// GetRedisAddress 获取Redis地址
func (r *RedisConfig) GetRedisAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Enabled Redis 是否配置
func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}
