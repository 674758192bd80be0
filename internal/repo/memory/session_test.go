package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"backoffice/internal/model/system"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_Lifecycle(t *testing.T) {
	repo := NewSessionRepository(0)
	defer repo.Close()
	ctx := context.Background()

	now := time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	session := &system.SessionData{UserID: 1, Username: "alice", TokenID: "t1", Roles: []string{"editor"}}
	require.NoError(t, repo.Save(ctx, session, time.Hour))
	session.Roles[0] = "mutated"

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, []string{"editor"}, got.Roles, "stored copy is detached from the caller")

	now = now.Add(2 * time.Hour)
	got, err = repo.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, got, "expired")

	repo.purge()
	assert.Empty(t, repo.sessions)
}

func TestSessionRepository_DeleteByUser(t *testing.T) {
	repo := NewSessionRepository(time.Minute)
	defer repo.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i, id := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(userID uint64, tokenID string) {
			defer wg.Done()
			assert.NoError(t, repo.Save(ctx, &system.SessionData{UserID: userID, TokenID: tokenID}, time.Hour))
		}(uint64(i%2+1), id)
	}
	wg.Wait()

	n, err := repo.DeleteByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, repo.Delete(ctx, "b"))
	left, err := repo.Get(ctx, "d")
	require.NoError(t, err)
	require.NotNil(t, left)
	assert.Equal(t, uint64(2), left.UserID)

	require.NoError(t, repo.Close())
	require.NoError(t, repo.Close())
}
