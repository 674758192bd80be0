/**
 * 服务层:多语言翻译
 * @date: 2026.03.10
 * @description: 翻译词条增删改查与按键转置
 */
package core

import (
	"context"
	"strings"

	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/core"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/query"
	"backoffice/internal/repo/mysql"
	"backoffice/internal/service/crud"
)

// TranslateService 翻译服务
type TranslateService struct {
	*crud.Service[core.Translate, core.TranslateQuery, core.TranslateCreateRequest, core.TranslateUpdateRequest]
}

// NewTranslateService 创建翻译服务
func NewTranslateService(repo *mysql.Repository[core.Translate], exportLimit int) *TranslateService {
	def := crud.Definition[core.Translate, core.TranslateQuery, core.TranslateCreateRequest, core.TranslateUpdateRequest]{
		Entity:    "翻译",
		Operation: "core_translate",
		Predicate: func(q *core.TranslateQuery) *query.Predicate {
			return query.Where().
				Contains("translate_key", q.TranslateKey).
				Eq("language_code", q.LanguageCode).
				Contains("translate_value", q.TranslateValue).
				Eq("module", q.Module).
				Eq("is_enabled", q.IsEnabled)
		},
		// 同一键同一语言只允许一条
		New: func(ctx context.Context, req *core.TranslateCreateRequest) (*core.Translate, error) {
			e := &core.Translate{IsEnabled: basemodel.StatusEnabled}
			applyTranslateFields(e, &req.TranslateFields)
			return e, checkTranslateDuplicate(ctx, repo, e, 0)
		},
		Apply: func(ctx context.Context, e *core.Translate, req *core.TranslateUpdateRequest) error {
			applyTranslateFields(e, &req.TranslateFields)
			return checkTranslateDuplicate(ctx, repo, e, e.ID)
		},
	}
	return &TranslateService{Service: crud.NewService(repo, def, exportLimit)}
}

func applyTranslateFields(e *core.Translate, f *core.TranslateFields) {
	e.TranslateKey = strings.TrimSpace(f.TranslateKey)
	e.LanguageCode = strings.TrimSpace(f.LanguageCode)
	e.TranslateValue = f.TranslateValue
	e.Module = strings.TrimSpace(f.Module)
	e.Remark = f.Remark
}

func checkTranslateDuplicate(ctx context.Context, repo *mysql.Repository[core.Translate], e *core.Translate, excludeID uint64) error {
	exists, err := repo.Exists(ctx, query.Where().Eq("translate_key", e.TranslateKey).Eq("language_code", e.LanguageCode), excludeID)
	if err != nil {
		return err
	}
	if exists {
		return system.NewConflictError("翻译", "翻译键", e.TranslateKey+"/"+e.LanguageCode)
	}
	return nil
}

// Transpose 翻译转置：每个翻译键一行，各语言内容合并为映射
// 读取全部匹配行，不受导出条数上限约束，否则末尾的键会缺失语言
func (s *TranslateService) Transpose(ctx context.Context, q *core.TranslateQuery) ([]core.TranslateTransposed, error) {
	rows, err := s.Repo().ListAll(ctx, s.Predicate(q), query.PageRequest{OrderBy: "translate_key", OrderDirection: query.Asc}, 0)
	if err != nil {
		return nil, err
	}
	return TransposeTranslations(rows), nil
}
