package redis

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/model/system"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewSessionRepository(client, "bo:")
	ctx := context.Background()

	s1 := &system.SessionData{UserID: 7, Username: "alice", TokenID: "t1", Permissions: []string{"core:config:list"}}
	s2 := &system.SessionData{UserID: 7, Username: "alice", TokenID: "t2"}
	require.NoError(t, repo.Save(ctx, s1, time.Hour))
	require.NoError(t, repo.Save(ctx, s2, time.Hour))
	assert.True(t, mr.Exists("bo:session:token:t1"))

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"core:config:list"}, got.Permissions)

	require.NoError(t, repo.Delete(ctx, "t1"))
	got, err = repo.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, got)
	members, err := mr.SMembers("bo:session:user:7")
	require.NoError(t, err)
	assert.Equal(t, []string{"t2"}, members)

	// 过期后视为不存在
	mr.FastForward(2 * time.Hour)
	got, err = repo.Get(ctx, "t2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository_DeleteByUser(t *testing.T) {
	_, client := setupTestRedis(t)
	repo := NewSessionRepository(client, "")
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Save(ctx, &system.SessionData{UserID: 1, TokenID: id}, time.Hour))
	}
	require.NoError(t, repo.Save(ctx, &system.SessionData{UserID: 2, TokenID: "other"}, time.Hour))

	n, err := repo.DeleteByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := repo.Get(ctx, "other")
	require.NoError(t, err)
	assert.NotNil(t, got, "other users keep their sessions")

	n, err = repo.DeleteByUser(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConfigCache(t *testing.T) {
	mr, client := setupTestRedis(t)
	cache := NewConfigCache(client, "bo:", time.Minute)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "0:site.name")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "0:site.name", "后台"))
	v, ok, err := cache.Get(ctx, "0:site.name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "后台", v)
	assert.Equal(t, time.Minute, mr.TTL("bo:config:value:0:site.name"))

	require.NoError(t, cache.Delete(ctx, "0:site.name"))
	_, ok, err = cache.Get(ctx, "0:site.name")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.Close()
	_, _, err = cache.Get(ctx, "0:site.name")
	assert.Error(t, err)
}
