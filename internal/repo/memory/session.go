/**
 * 仓库层:会话数据访问
 * @date: 2026.03.13
 * @description: 会话数据交互层(内存存储,适合单实例部署)
 * @func:单纯数据访问,不应该包含业务逻辑
 * @note: 与 repo/redis/session.go 行为一致，通过 session.store 配置二选一
 */
package memory

import (
	"context"
	"sync"
	"time"

	"backoffice/internal/model/system"
)

// SessionRepository 内存会话存储库
type SessionRepository struct {
	sessions map[string]*sessionEntry
	mutex    sync.RWMutex
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

// sessionEntry 会话条目
type sessionEntry struct {
	data       system.SessionData
	expiration time.Time
}

// NewSessionRepository 创建内存会话存储库实例，cleanupInterval>0 时启动过期清理
func NewSessionRepository(cleanupInterval time.Duration) *SessionRepository {
	repo := &SessionRepository{
		sessions: make(map[string]*sessionEntry),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go repo.cleanupExpired(cleanupInterval)
	}
	return repo
}

// cleanupExpired 定期清理过期条目
func (r *SessionRepository) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.purge()
		case <-r.stop:
			return
		}
	}
}

func (r *SessionRepository) purge() {
	now := r.now()
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for id, entry := range r.sessions {
		if now.After(entry.expiration) {
			delete(r.sessions, id)
		}
	}
}

// Save 存储会话
func (r *SessionRepository) Save(_ context.Context, session *system.SessionData, expiration time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	data := *session
	data.Roles = append([]string(nil), session.Roles...)
	data.Permissions = append([]string(nil), session.Permissions...)
	r.sessions[session.TokenID] = &sessionEntry{
		data:       data,
		expiration: r.now().Add(expiration),
	}
	return nil
}

// Get 获取会话，不存在或已过期返回 nil
func (r *SessionRepository) Get(_ context.Context, tokenID string) (*system.SessionData, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entry, exists := r.sessions[tokenID]
	if !exists || r.now().After(entry.expiration) {
		return nil, nil
	}
	data := entry.data
	return &data, nil
}

// Delete 删除单个会话
func (r *SessionRepository) Delete(_ context.Context, tokenID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.sessions, tokenID)
	return nil
}

// DeleteByUser 删除用户的全部会话，返回删除的会话数
func (r *SessionRepository) DeleteByUser(_ context.Context, userID uint64) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	n := 0
	for id, entry := range r.sessions {
		if entry.data.UserID != userID {
			continue
		}
		if !now.After(entry.expiration) {
			n++
		}
		delete(r.sessions, id)
	}
	return n, nil
}

// Close 停止清理协程
func (r *SessionRepository) Close() error {
	r.once.Do(func() { close(r.stop) })
	return nil
}
