/**
 * 仓库层:会话数据访问
 * @date: 2026.03.13
 * @description: 会话数据交互层(Redis存储,适合多实例部署)
 * @func:单纯数据访问,不应该包含业务逻辑
 * @note: 会话按令牌ID(jti)存储，同一用户可有多个会话，用户索引集合用于批量踢下线
 */
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/model/system"

	"github.com/go-redis/redis/v8"
)

// SessionRepository Redis会话存储库
type SessionRepository struct {
	client *redis.Client
	prefix string
}

// NewSessionRepository 创建会话存储库实例，prefix 为键前缀
func NewSessionRepository(client *redis.Client, prefix string) *SessionRepository {
	return &SessionRepository{
		client: client,
		prefix: prefix,
	}
}

// Save 存储会话，同时记入用户索引
func (r *SessionRepository) Save(ctx context.Context, session *system.SessionData, expiration time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	userKey := r.getUserSessionsKey(session.UserID)
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.getSessionKey(session.TokenID), data, expiration)
	pipe.SAdd(ctx, userKey, session.TokenID)
	// 索引的存活时间跟随最新的会话
	pipe.Expire(ctx, userKey, expiration)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get 获取会话，不存在或已过期返回 nil
func (r *SessionRepository) Get(ctx context.Context, tokenID string) (*system.SessionData, error) {
	data, err := r.client.Get(ctx, r.getSessionKey(tokenID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session system.SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	return &session, nil
}

// Delete 删除单个会话
func (r *SessionRepository) Delete(ctx context.Context, tokenID string) error {
	session, err := r.Get(ctx, tokenID)
	if err != nil {
		return err
	}
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.getSessionKey(tokenID))
	if session != nil {
		pipe.SRem(ctx, r.getUserSessionsKey(session.UserID), tokenID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteByUser 删除用户的全部会话，返回删除的会话数
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID uint64) (int, error) {
	userKey := r.getUserSessionsKey(userID)
	tokenIDs, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get user session keys: %w", err)
	}
	keys := make([]string, 0, len(tokenIDs)+1)
	for _, id := range tokenIDs {
		keys = append(keys, r.getSessionKey(id))
	}
	keys = append(keys, userKey)

	// 索引中可能残留已过期的令牌，只统计实际删除的会话
	n, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to delete user sessions: %w", err)
	}
	if len(tokenIDs) > 0 && n > 0 {
		n-- // 索引键本身
	}
	return int(n), nil
}

// Ping 检查Redis连接
func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// getSessionKey 会话键[KEY:{prefix}session:token:{tokenID}]
func (r *SessionRepository) getSessionKey(tokenID string) string {
	return fmt.Sprintf("%ssession:token:%s", r.prefix, tokenID)
}

// getUserSessionsKey 用户会话索引键[KEY:{prefix}session:user:{userID}]
func (r *SessionRepository) getUserSessionsKey(userID uint64) string {
	return fmt.Sprintf("%ssession:user:%d", r.prefix, userID)
}
