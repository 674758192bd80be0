package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "BACKOFFICE"

// EnvManager 环境变量管理器，读取带前缀的环境变量
type EnvManager struct {
	prefix string
}

// NewEnvManager 创建环境变量管理器
func NewEnvManager(prefix string) *EnvManager {
	if prefix == "" {
		prefix = EnvPrefix
	}
	return &EnvManager{prefix: prefix}
}

// LoadDotEnv 依次加载存在的 .env 文件，已存在的进程环境变量不会被覆盖
// 不存在的文件直接跳过
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env.local", ".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// GetString 获取字符串类型环境变量
func (em *EnvManager) GetString(key, defaultValue string) string {
	if value := os.Getenv(em.buildEnvKey(key)); value != "" {
		return value
	}
	return defaultValue
}

// GetInt 获取整数类型环境变量
func (em *EnvManager) GetInt(key string, defaultValue int) int {
	value := os.Getenv(em.buildEnvKey(key))
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// GetBool 获取布尔类型环境变量
func (em *EnvManager) GetBool(key string, defaultValue bool) bool {
	value := os.Getenv(em.buildEnvKey(key))
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// buildEnvKey key 统一转大写并加前缀，"mysql.host" -> "BACKOFFICE_MYSQL_HOST"
func (em *EnvManager) buildEnvKey(key string) string {
	key = strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	return em.prefix + "_" + key
}
