/**
 * 日志管理器
 * @date: 2026.03.02
 * @description: 基于 logrus 的日志管理器，按日志类型分文件输出(见 hooks.go)
 * @func:
 *	1.InitLogger 按配置初始化
 *	2.UpdateConfig 运行时更新级别/格式(配置热加载)
 *	3.WithFields 等全局便捷方法
 */
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"backoffice/internal/config"

	"github.com/sirupsen/logrus"
)

// timestampFormat 日志管理器使用的时间戳格式(毫秒精度)
const timestampFormat = "2006-01-02 15:04:05.000"

// LoggerManager 日志管理器
type LoggerManager struct {
	logger *logrus.Logger
	config config.LogConfig
	mu     sync.Mutex
}

// LoggerInstance 全局日志实例，未初始化时所有 Log* 方法静默返回
var LoggerInstance *LoggerManager

// InitLogger 初始化日志管理器
func InitLogger(cfg *config.LogConfig) (*LoggerManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("log config cannot be nil")
	}

	l := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
		l.Warnf("Invalid log level '%s', using 'info' as default", cfg.Level)
	}
	l.SetLevel(level)

	if err := setLogFormatter(l, cfg); err != nil {
		return nil, fmt.Errorf("failed to set log formatter: %w", err)
	}
	setLogOutput(l, cfg)

	// 文件输出交给 FileHook 按类型分流
	if strings.ToLower(cfg.Output) == "file" {
		l.AddHook(NewFileHook(cfg))
	}
	l.SetReportCaller(cfg.Caller)

	lm := &LoggerManager{logger: l, config: *cfg}
	LoggerInstance = lm
	return lm, nil
}

// setLogFormatter 设置日志格式化器
func setLogFormatter(l *logrus.Logger, cfg *config.LogConfig) error {
	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		})
	case "text", "":
		l.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
		})
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.Format)
	}
	return nil
}

// setLogOutput 设置主输出
// file 模式下主输出丢弃，由 FileHook 写文件；debug 级别额外打到控制台
func setLogOutput(l *logrus.Logger, cfg *config.LogConfig) {
	switch strings.ToLower(cfg.Output) {
	case "file":
		if strings.ToLower(cfg.Level) == "debug" {
			l.SetOutput(os.Stdout)
		} else {
			l.SetOutput(io.Discard)
		}
	case "stderr":
		l.SetOutput(os.Stderr)
	default:
		l.SetOutput(os.Stdout)
	}
}

// GetLogger 获取logrus实例
func (lm *LoggerManager) GetLogger() *logrus.Logger {
	return lm.logger
}

// UpdateConfig 运行时更新日志级别与格式
// 输出目标变化需要重启生效
func (lm *LoggerManager) UpdateConfig(newCfg *config.LogConfig) error {
	if newCfg == nil {
		return fmt.Errorf("new config cannot be nil")
	}
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if newCfg.Level != lm.config.Level {
		level, err := logrus.ParseLevel(newCfg.Level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		lm.logger.SetLevel(level)
		lm.logger.Infof("Log level updated from %s to %s", lm.config.Level, newCfg.Level)
	}
	if newCfg.Format != lm.config.Format {
		if err := setLogFormatter(lm.logger, newCfg); err != nil {
			return fmt.Errorf("failed to update log formatter: %w", err)
		}
	}
	if newCfg.Caller != lm.config.Caller {
		lm.logger.SetReportCaller(newCfg.Caller)
	}

	output, filePath := lm.config.Output, lm.config.FilePath
	lm.config = *newCfg
	lm.config.Output, lm.config.FilePath = output, filePath
	return nil
}

// Level 当前日志级别
func (lm *LoggerManager) Level() string {
	return lm.logger.GetLevel().String()
}

// WithField 添加单个字段
func WithField(key string, value interface{}) *logrus.Entry {
	return WithFields(logrus.Fields{key: value})
}

// WithFields 添加多个字段
func WithFields(fields logrus.Fields) *logrus.Entry {
	if LoggerInstance != nil {
		return LoggerInstance.logger.WithFields(fields)
	}
	return logrus.StandardLogger().WithFields(fields)
}

// Infof 记录格式化信息日志
func Infof(format string, args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Infof(format, args...)
	}
}

// Warnf 记录格式化警告日志
func Warnf(format string, args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Warnf(format, args...)
	}
}

// Errorf 记录格式化错误日志
func Errorf(format string, args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Errorf(format, args...)
	}
}
