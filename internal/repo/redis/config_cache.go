/**
 * 仓库层:参数值缓存
 * @date: 2026.03.13
 * @description: 参数配置按键取值的 Redis 缓存，修改、删除、停用时由服务层失效
 */
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultConfigCacheTTL 缓存默认存活时间
const DefaultConfigCacheTTL = 30 * time.Minute

// ConfigCache 参数值缓存
type ConfigCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewConfigCache 创建参数值缓存，ttl<=0 时使用默认值
func NewConfigCache(client *redis.Client, prefix string, ttl time.Duration) *ConfigCache {
	if ttl <= 0 {
		ttl = DefaultConfigCacheTTL
	}
	return &ConfigCache{client: client, prefix: prefix, ttl: ttl}
}

// Get 读取缓存，未命中时 ok 为 false
func (c *ConfigCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get config cache: %w", err)
	}
	return value, true, nil
}

// Set 写入缓存
func (c *ConfigCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, c.key(key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set config cache: %w", err)
	}
	return nil
}

// Delete 删除缓存
func (c *ConfigCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete config cache: %w", err)
	}
	return nil
}

func (c *ConfigCache) key(key string) string {
	return c.prefix + "config:value:" + key
}
