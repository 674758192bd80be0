// 分类日志记录方法
package logger

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FormatTimestamp 格式化时间戳为统一的毫秒精度格式
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampFormat)
}

// NowFormatted 返回当前时间的格式化字符串
func NowFormatted() string {
	return FormatTimestamp(time.Now())
}

// LogType 日志类型，FileHook 按此字段分文件
type LogType string

const (
	AccessLog   LogType = "access"   // HTTP 访问
	BusinessLog LogType = "business" // 业务操作(增删改、导入导出、登录)
	ErrorLog    LogType = "error"    // 错误与异常
	SystemLog   LogType = "system"   // 启停、组件状态
	DebugLog    LogType = "debug"
	AuditLog    LogType = "audit" // 安全相关操作
)

func merge(fields logrus.Fields, extra map[string]interface{}) logrus.Fields {
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}

// LogAccessRequest 记录HTTP访问日志
func LogAccessRequest(c *gin.Context, startTime time.Time, requestID string, userID uint64) {
	if LoggerInstance == nil {
		return
	}
	LoggerInstance.logger.WithFields(logrus.Fields{
		"type":          AccessLog,
		"method":        c.Request.Method,
		"path":          c.Request.URL.Path,
		"query":         c.Request.URL.RawQuery,
		"status_code":   c.Writer.Status(),
		"response_time": time.Since(startTime).Milliseconds(),
		"client_ip":     c.ClientIP(),
		"user_agent":    c.Request.UserAgent(),
		"user_id":       userID,
		"request_id":    requestID,
		"request_size":  c.Request.ContentLength,
		"response_size": c.Writer.Size(),
	}).Info("HTTP request processed")
}

// LogBusinessOperation 记录业务操作日志
// result 为 "success" 时记 Info，否则记 Warn
func LogBusinessOperation(operation string, userID uint64, username, clientIP, requestID, result, message string, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}
	entry := LoggerInstance.logger.WithFields(merge(logrus.Fields{
		"type":       BusinessLog,
		"operation":  operation,
		"user_id":    userID,
		"username":   username,
		"client_ip":  clientIP,
		"result":     result,
		"message":    message,
		"request_id": requestID,
	}, extraFields))

	if result == "success" {
		entry.Info(fmt.Sprintf("Business operation: %s", operation))
	} else {
		entry.Warn(fmt.Sprintf("Business operation failed: %s", operation))
	}
}

// LogError 记录错误日志
func LogError(err error, requestID string, userID uint64, clientIP, path, method string, extraFields map[string]interface{}) {
	if LoggerInstance == nil || err == nil {
		return
	}
	LoggerInstance.logger.WithFields(merge(logrus.Fields{
		"type":       ErrorLog,
		"error":      err.Error(),
		"request_id": requestID,
		"user_id":    userID,
		"client_ip":  clientIP,
		"path":       path,
		"method":     method,
	}, extraFields)).Errorf("System error occurred: %s", err.Error())
}

// LogSystemEvent 记录系统事件日志(启动、关闭、组件状态变化)
func LogSystemEvent(component, event, message string, level logrus.Level, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}
	LoggerInstance.logger.WithFields(merge(logrus.Fields{
		"type":      SystemLog,
		"component": component,
		"event":     event,
		"message":   message,
	}, extraFields)).Log(level, fmt.Sprintf("System event: %s - %s", component, event))
}

// LogAuditOperation 记录审计日志
func LogAuditOperation(userID uint64, username, action, resource, result, clientIP, userAgent, requestID string, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}
	LoggerInstance.logger.WithFields(merge(logrus.Fields{
		"type":       AuditLog,
		"user_id":    userID,
		"username":   username,
		"action":     action,
		"resource":   resource,
		"result":     result,
		"client_ip":  clientIP,
		"user_agent": userAgent,
		"request_id": requestID,
	}, extraFields)).Info(fmt.Sprintf("Audit: %s performed %s on %s", username, action, resource))
}
