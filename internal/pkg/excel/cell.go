package excel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/model/basemodel"
)

// 导入时接受的日期格式
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006/1/2",
	"01-02-06",
	time.RFC3339,
}

// ParseInt 解析整数，空串为 0
func ParseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// ParseUint 解析无符号整数(一般为关联ID)，空串为 0
func ParseUint(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

// ParseFloat 解析小数，空串为 0
func ParseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// ParseBool 解析 是/否、yes/no、true/false、1/0，空串为 false
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "否", "no", "n", "false", "0":
		return false, nil
	case "是", "yes", "y", "true", "1":
		return true, nil
	}
	return false, fmt.Errorf("invalid boolean value %q", s)
}

// ParseDate 解析日期，空串返回 nil
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", s)
}

// FormatDate 日期列导出
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// FormatTime 时间列导出
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatBool 布尔列导出
func FormatBool(b bool) string {
	if b {
		return "是"
	}
	return "否"
}

// FormatStatus 启用状态列导出
func FormatStatus(s basemodel.Status) string {
	if s == basemodel.StatusEnabled {
		return "启用"
	}
	return "停用"
}
