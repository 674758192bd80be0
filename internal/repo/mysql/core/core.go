/**
 * 仓库层:核心模块
 * @date: 2026.03.10
 * @description: 参数配置、字典、语言、翻译的仓库与排序白名单
 */
package core

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/core"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/query"
	"backoffice/internal/repo/mysql"

	"gorm.io/gorm"
)

// NewConfigRepository 参数配置仓库
func NewConfigRepository(db *gorm.DB) *mysql.Repository[core.Config] {
	return mysql.NewRepository[core.Config](db, query.NewSortSpec("id", map[string]string{
		"id":          "id",
		"config_name": "config_name",
		"config_key":  "config_key",
		"created_at":  "created_at",
		"updated_at":  "updated_at",
	}))
}

// NewDictTypeRepository 字典类型仓库
func NewDictTypeRepository(db *gorm.DB) *mysql.Repository[core.DictType] {
	return mysql.NewRepository[core.DictType](db, query.NewSortSpec("id", map[string]string{
		"id":         "id",
		"dict_name":  "dict_name",
		"dict_code":  "dict_code",
		"created_at": "created_at",
	}))
}

// DictDataRepository 字典数据仓库
type DictDataRepository struct {
	*mysql.Repository[core.DictData]
}

// NewDictDataRepository 字典数据仓库，默认按 sort 升序
func NewDictDataRepository(db *gorm.DB) *DictDataRepository {
	spec := query.NewSortSpec("sort", map[string]string{
		"id":            "id",
		"sort":          "sort",
		"dict_code":     "dict_code",
		"dict_value":    "dict_value",
		"language_code": "language_code",
		"created_at":    "created_at",
	})
	spec.DefaultDirection = query.Asc
	return &DictDataRepository{Repository: mysql.NewRepository[core.DictData](db, spec)}
}

// ListByCode 某个字典编码下已启用的数据，languageCode 为空时返回全部语言
func (r *DictDataRepository) ListByCode(ctx context.Context, dictCode, languageCode string) ([]core.DictData, error) {
	pred := query.Where().
		Eq("dict_code", dictCode).
		Eq("language_code", languageCode).
		Eq("is_enabled", basemodel.StatusEnabled)
	return r.ListAll(ctx, pred, query.PageRequest{OrderBy: "sort", OrderDirection: query.Asc}, 0)
}

// LanguageRepository 语言仓库
type LanguageRepository struct {
	*mysql.Repository[core.Language]
}

// NewLanguageRepository 语言仓库，默认按 sort 升序
func NewLanguageRepository(db *gorm.DB) *LanguageRepository {
	spec := query.NewSortSpec("sort", map[string]string{
		"id":            "id",
		"sort":          "sort",
		"language_name": "language_name",
		"language_code": "language_code",
		"created_at":    "created_at",
	})
	spec.DefaultDirection = query.Asc
	return &LanguageRepository{Repository: mysql.NewRepository[core.Language](db, spec)}
}

// ErrLanguageDisabled 目标语言已停用，不能设为默认
var ErrLanguageDisabled = errors.New("language is disabled")

// SetDefault 在一个事务内清除全部默认标记并设置目标语言
// 只设置启用中的语言；目标不存在返回 NotFoundError，已停用返回 ErrLanguageDisabled，二者都回滚
func (r *LanguageRepository) SetDefault(ctx context.Context, id uint64) error {
	return r.Transaction(ctx, func(tx *mysql.Repository[core.Language]) error {
		if err := tx.DB(ctx).Model(&core.Language{}).
			Where("is_default = ?", true).
			Update("is_default", false).Error; err != nil {
			return fmt.Errorf("%w: clear default language: %v", system.ErrQueryFailed, err)
		}
		res := tx.DB(ctx).Model(&core.Language{}).
			Where("id = ? AND is_enabled = ?", id, basemodel.StatusEnabled).
			Update("is_default", true)
		if res.Error != nil {
			return fmt.Errorf("%w: set default language: %v", system.ErrQueryFailed, res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}
		// 未更新时区分不存在与已停用，两种情况都回滚清除操作
		var n int64
		if err := tx.DB(ctx).Model(&core.Language{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return fmt.Errorf("%w: check language: %v", system.ErrQueryFailed, err)
		}
		if n == 0 {
			return system.NewNotFoundError("语言", id)
		}
		return ErrLanguageDisabled
	})
}

// GetDefault 当前默认语言，没有默认语言时返回 (nil, nil)
func (r *LanguageRepository) GetDefault(ctx context.Context) (*core.Language, error) {
	return r.First(ctx, query.Where().Eq("is_default", true))
}

// CountDefaults 默认语言数量，用于一致性检查
func (r *LanguageRepository) CountDefaults(ctx context.Context) (int64, error) {
	return r.Count(ctx, query.Where().Eq("is_default", true))
}

// NewTranslateRepository 翻译仓库
func NewTranslateRepository(db *gorm.DB) *mysql.Repository[core.Translate] {
	spec := query.NewSortSpec("translate_key", map[string]string{
		"id":            "id",
		"translate_key": "translate_key",
		"language_code": "language_code",
		"module":        "module",
		"created_at":    "created_at",
	})
	spec.DefaultDirection = query.Asc
	return mysql.NewRepository[core.Translate](db, spec)
}
