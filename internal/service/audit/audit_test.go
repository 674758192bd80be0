package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/internal/model/audit"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/database/dbtest"
	"backoffice/internal/pkg/query"
	auditrepo "backoffice/internal/repo/mysql/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLogService_FilterAndClean(t *testing.T) {
	db := dbtest.New(t)
	s := NewLoginLogService(auditrepo.NewLoginLogRepository(db), 0)
	ctx := context.Background()

	now := time.Now()
	entries := []audit.LoginLog{
		{Username: "alice", Success: true, LoginAt: now.AddDate(0, 0, -40)},
		{Username: "alice", Success: false, Message: "密码错误", LoginAt: now.AddDate(0, 0, -10)},
		{Username: "bob", Success: true, LoginAt: now},
	}
	for i := range entries {
		require.NoError(t, s.Record(ctx, &entries[i]))
	}

	failed := false
	res, err := s.List(ctx, &audit.LoginLogQuery{Success: &failed}, query.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, "密码错误", res.Items[0].Message)

	res, err = s.List(ctx, &audit.LoginLogQuery{Username: "ali"}, query.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	n, err := s.Clean(ctx, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := s.Export(ctx, nil, query.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.Clean(ctx, time.Time{})
	assert.True(t, errors.Is(err, system.ErrValidation))
	_, err = s.Clean(ctx, now.Add(time.Hour))
	assert.True(t, errors.Is(err, system.ErrValidation))
}

func TestAuditLogService_GetDelete(t *testing.T) {
	db := dbtest.New(t)
	s := NewAuditLogService(auditrepo.NewAuditLogRepository(db), 0)
	ctx := context.Background()

	entry := &audit.AuditLog{Username: "alice", Module: "core", Operation: "PUT /api/core/config/1", Method: "PUT", StatusCode: 200, Success: true}
	require.NoError(t, s.Record(ctx, entry))
	require.NotZero(t, entry.ID)

	got, err := s.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "core", got.Module)

	require.NoError(t, s.Delete(ctx, entry.ID))
	_, err = s.Get(ctx, entry.ID)
	assert.True(t, errors.Is(err, system.ErrNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, entry.ID), system.ErrNotFound))
}
