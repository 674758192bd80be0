package database_test

import (
	"context"
	"testing"

	"backoffice/internal/model/hr"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/database"
	"backoffice/internal/pkg/database/dbtest"
	"backoffice/internal/pkg/query"
	"backoffice/internal/pkg/utils"
	"backoffice/internal/repo/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_IsRepeatable(t *testing.T) {
	db := dbtest.New(t)
	_, err := database.Migrate(db)
	require.NoError(t, err, "existing unique indexes are skipped")
	assert.True(t, db.Migrator().HasIndex(&hr.Position{}, "uk_hr_position_code"))
}

// 绕过 service 层的重复校验直接写库，模拟两个请求同时通过校验后的插入
func TestMigrate_DuplicateCodeRejectedByDatabase(t *testing.T) {
	db := dbtest.New(t)
	repo := mysql.NewRepository[hr.Position](db, query.NewSortSpec("sort", nil))
	t1 := utils.WithIdentity(context.Background(), 1, "alice", 1)
	t2 := utils.WithIdentity(context.Background(), 2, "bob", 2)

	first := &hr.Position{PositionName: "研发", PositionCode: "DEV"}
	require.NoError(t, repo.Create(t1, first))
	err := repo.Create(t1, &hr.Position{PositionName: "研发二", PositionCode: "DEV"})
	assert.ErrorIs(t, err, system.ErrConflict)
	require.NoError(t, repo.Create(t2, &hr.Position{PositionName: "研发", PositionCode: "DEV"}), "codes are per tenant")

	// 删除后编码释放，且多条已删除记录可以共存
	require.NoError(t, repo.Delete(t1, first.ID))
	second := &hr.Position{PositionName: "研发", PositionCode: "DEV"}
	require.NoError(t, repo.Create(t1, second))
	require.NoError(t, repo.Delete(t1, second.ID))
	require.NoError(t, repo.Create(t1, &hr.Position{PositionName: "研发", PositionCode: "DEV"}))

	var gone hr.Position
	require.NoError(t, db.Unscoped().First(&gone, first.ID).Error)
	assert.True(t, gone.DeletedAt.Valid)
	assert.Equal(t, first.ID, gone.DeleteMark)

	n, err := repo.Count(t1, query.Where().Eq("position_code", "DEV"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMigrate_UsernameUniqueAcrossTenants(t *testing.T) {
	db := dbtest.New(t)
	repo := mysql.NewRepository[system.User](db, query.NewSortSpec("id", nil))
	t1 := utils.WithIdentity(context.Background(), 1, "alice", 1)
	t2 := utils.WithIdentity(context.Background(), 2, "bob", 2)

	require.NoError(t, repo.Create(t1, &system.User{Username: "carol", PasswordHash: "x"}))
	err := repo.Create(t2, &system.User{Username: "carol", PasswordHash: "x"})
	assert.ErrorIs(t, err, system.ErrConflict)
}
