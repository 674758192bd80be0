/**
 * 服务层:语言
 * @date: 2026.03.10
 * @description: 语言增删改查与默认语言维护，任一时刻至多一个默认语言
 */
package core

import (
	"context"
	"errors"
	"strings"

	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/core"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/logger"
	"backoffice/internal/pkg/query"
	"backoffice/internal/pkg/utils"
	corerepo "backoffice/internal/repo/mysql/core"
	"backoffice/internal/service/crud"
)

// LanguageService 语言服务
type LanguageService struct {
	*crud.Service[core.Language, core.LanguageQuery, core.LanguageCreateRequest, core.LanguageUpdateRequest]
	repo *corerepo.LanguageRepository
}

// NewLanguageService 创建语言服务
func NewLanguageService(repo *corerepo.LanguageRepository, exportLimit int) *LanguageService {
	def := crud.Definition[core.Language, core.LanguageQuery, core.LanguageCreateRequest, core.LanguageUpdateRequest]{
		Entity:    "语言",
		Operation: "core_language",
		Predicate: func(q *core.LanguageQuery) *query.Predicate {
			return query.Where().
				Contains("language_name", q.LanguageName).
				Contains("language_code", q.LanguageCode).
				Eq("is_enabled", q.IsEnabled)
		},
		New: func(_ context.Context, req *core.LanguageCreateRequest) (*core.Language, error) {
			e := &core.Language{IsEnabled: basemodel.StatusEnabled}
			applyLanguageFields(e, &req.LanguageFields)
			return e, nil
		},
		Apply: func(_ context.Context, e *core.Language, req *core.LanguageUpdateRequest) error {
			applyLanguageFields(e, &req.LanguageFields)
			return nil
		},
		Unique: []crud.UniqueField[core.Language]{
			{Column: "language_code", Label: "语言编码", Value: func(e *core.Language) string { return e.LanguageCode }},
		},
		BeforeDelete: func(_ context.Context, e *core.Language) error {
			if e.IsDefault {
				return system.NewValidationError("is_default", "默认语言不能删除")
			}
			return nil
		},
		BeforeChangeStatus: func(_ context.Context, e *core.Language, status basemodel.Status) error {
			if e.IsDefault && status != basemodel.StatusEnabled {
				return system.NewValidationError("is_enabled", "默认语言不能停用")
			}
			return nil
		},
	}
	return &LanguageService{
		Service: crud.NewService[core.Language](repo.Repository, def, exportLimit),
		repo:    repo,
	}
}

func applyLanguageFields(e *core.Language, f *core.LanguageFields) {
	e.LanguageName = strings.TrimSpace(f.LanguageName)
	e.LanguageCode = strings.TrimSpace(f.LanguageCode)
	e.Sort = f.Sort
	e.Remark = f.Remark
}

// SetDefault 设为默认语言，停用的语言不能设为默认
// 清除与设置在同一事务内完成，并发调用后仍只有一个默认语言
func (s *LanguageService) SetDefault(ctx context.Context, id uint64) error {
	lang, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SetDefault(ctx, id); err != nil {
		if errors.Is(err, corerepo.ErrLanguageDisabled) {
			return system.NewValidationError("is_enabled", "停用的语言不能设为默认")
		}
		return err
	}
	logger.LogBusinessOperation("core_language_set_default",
		utils.GetUserIDFromContext(ctx),
		utils.GetUsernameFromContext(ctx),
		utils.GetClientIPFromContext(ctx),
		utils.GetRequestIDFromContext(ctx),
		"success", "设置默认语言", map[string]interface{}{"id": id, "language_code": lang.LanguageCode})
	return nil
}

// GetDefault 当前默认语言
func (s *LanguageService) GetDefault(ctx context.Context) (*core.Language, error) {
	lang, err := s.repo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if lang == nil {
		return nil, system.NewNotFoundError("默认语言", "default")
	}
	return lang, nil
}
