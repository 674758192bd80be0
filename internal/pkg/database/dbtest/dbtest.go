// Package dbtest 为各层测试提供建好全部表的内存 SQLite 库
package dbtest

import (
	"testing"

	"backoffice/internal/config"
	"backoffice/internal/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New 打开内存库并迁移全部实体，测试结束自动关闭
func New(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteConnection(&config.SQLiteConfig{Path: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	_, err = database.Migrate(db)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
