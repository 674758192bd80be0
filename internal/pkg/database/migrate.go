package database

import (
	"fmt"
	"strings"

	"backoffice/internal/model"
	"backoffice/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate 按实体定义建表或补齐字段，返回处理的表名
func Migrate(db *gorm.DB) ([]string, error) {
	models := model.AllModels()
	tables := make([]string, 0, len(models))
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return tables, fmt.Errorf("auto migrate %T: %w", m, err)
		}
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err == nil {
			tables = append(tables, stmt.Schema.Table)
		}
	}
	if err := ensureUniqueIndexes(db); err != nil {
		return tables, err
	}
	logger.LogSystemEvent("database", "migrate", "schema migrated", logrus.InfoLevel, map[string]interface{}{
		"tables": len(tables),
	})
	return tables, nil
}

// ensureUniqueIndexes 补建编码类唯一索引，已存在的跳过
// 多列索引无法通过共用的 BaseModel 字段标签声明，这里显式创建
func ensureUniqueIndexes(db *gorm.DB) error {
	for _, ix := range model.UniqueIndexes() {
		if db.Migrator().HasIndex(ix.Model, ix.Name) {
			continue
		}
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(ix.Model); err != nil {
			return fmt.Errorf("parse %T: %w", ix.Model, err)
		}
		ddl := fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (%s)", ix.Name, stmt.Schema.Table, strings.Join(ix.Columns, ", "))
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("create index %s: %w", ix.Name, err)
		}
	}
	return nil
}

// DropAll 删除全部实体表(含多对多关联表)
func DropAll(db *gorm.DB) error {
	models := model.AllModels()
	// 逆序删除，先删引用方
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop %T: %w", models[i], err)
		}
	}
	for _, join := range []string{"sys_user_roles", "sys_role_menus"} {
		if err := db.Migrator().DropTable(join); err != nil {
			return fmt.Errorf("drop %s: %w", join, err)
		}
	}
	return nil
}
