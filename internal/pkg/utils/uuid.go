package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateUUID 生成随机UUID(v4)，用于请求ID和令牌ID
func GenerateUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}
	return id.String(), nil
}

// MustUUID 生成UUID，失败时退化为基于时间的UUID(v1)
func MustUUID() string {
	if id, err := GenerateUUID(); err == nil {
		return id
	}
	return uuid.Must(uuid.NewUUID()).String()
}
