/**
 * 服务层:字典
 * @date: 2026.03.10
 * @description: 字典类型与字典数据，字典数据支持按编码读取和多语言转置
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
	corerepo "backoffice/internal/repo/mysql/core"
	"backoffice/internal/service/crud"
)

// DictTypeService 字典类型服务
type DictTypeService struct {
	*crud.Service[core.DictType, core.DictTypeQuery, core.DictTypeCreateRequest, core.DictTypeUpdateRequest]
}

// NewDictTypeService 创建字典类型服务
// 仍有字典数据引用的类型不允许删除
func NewDictTypeService(repo *mysql.Repository[core.DictType], dataRepo *corerepo.DictDataRepository, exportLimit int) *DictTypeService {
	def := crud.Definition[core.DictType, core.DictTypeQuery, core.DictTypeCreateRequest, core.DictTypeUpdateRequest]{
		Entity:    "字典类型",
		Operation: "core_dict_type",
		Predicate: func(q *core.DictTypeQuery) *query.Predicate {
			return query.Where().
				Contains("dict_name", q.DictName).
				Contains("dict_code", q.DictCode).
				Eq("is_enabled", q.IsEnabled)
		},
		New: func(_ context.Context, req *core.DictTypeCreateRequest) (*core.DictType, error) {
			e := &core.DictType{IsEnabled: basemodel.StatusEnabled}
			applyDictTypeFields(e, &req.DictTypeFields)
			return e, nil
		},
		Apply: func(_ context.Context, e *core.DictType, req *core.DictTypeUpdateRequest) error {
			applyDictTypeFields(e, &req.DictTypeFields)
			return nil
		},
		Unique: []crud.UniqueField[core.DictType]{
			{Column: "dict_code", Label: "字典编码", Value: func(e *core.DictType) string { return e.DictCode }},
		},
		BeforeDelete: func(ctx context.Context, e *core.DictType) error {
			n, err := dataRepo.Count(ctx, query.Where().Eq("dict_code", e.DictCode))
			if err != nil {
				return err
			}
			if n > 0 {
				return system.NewValidationError("dict_code", "该字典类型下仍有字典数据，不能删除")
			}
			return nil
		},
	}
	return &DictTypeService{Service: crud.NewService(repo, def, exportLimit)}
}

func applyDictTypeFields(e *core.DictType, f *core.DictTypeFields) {
	e.DictName = strings.TrimSpace(f.DictName)
	e.DictCode = strings.TrimSpace(f.DictCode)
	e.Remark = f.Remark
}

// DictDataService 字典数据服务
type DictDataService struct {
	*crud.Service[core.DictData, core.DictDataQuery, core.DictDataCreateRequest, core.DictDataUpdateRequest]
	repo *corerepo.DictDataRepository
}

// NewDictDataService 创建字典数据服务
// 同一编码、键值、语言只允许一行
func NewDictDataService(repo *corerepo.DictDataRepository, exportLimit int) *DictDataService {
	s := &DictDataService{repo: repo}
	def := crud.Definition[core.DictData, core.DictDataQuery, core.DictDataCreateRequest, core.DictDataUpdateRequest]{
		Entity:    "字典数据",
		Operation: "core_dict_data",
		Predicate: func(q *core.DictDataQuery) *query.Predicate {
			return query.Where().
				Eq("dict_code", q.DictCode).
				Contains("dict_label", q.DictLabel).
				Eq("language_code", q.LanguageCode).
				Eq("is_enabled", q.IsEnabled)
		},
		New: func(ctx context.Context, req *core.DictDataCreateRequest) (*core.DictData, error) {
			e := &core.DictData{IsEnabled: basemodel.StatusEnabled}
			applyDictDataFields(e, &req.DictDataFields)
			return e, s.checkDuplicate(ctx, e, 0)
		},
		Apply: func(ctx context.Context, e *core.DictData, req *core.DictDataUpdateRequest) error {
			applyDictDataFields(e, &req.DictDataFields)
			return s.checkDuplicate(ctx, e, e.ID)
		},
	}
	s.Service = crud.NewService[core.DictData](repo.Repository, def, exportLimit)
	return s
}

func applyDictDataFields(e *core.DictData, f *core.DictDataFields) {
	e.DictCode = strings.TrimSpace(f.DictCode)
	e.DictLabel = strings.TrimSpace(f.DictLabel)
	e.DictValue = strings.TrimSpace(f.DictValue)
	e.LanguageCode = strings.TrimSpace(f.LanguageCode)
	e.Sort = f.Sort
	e.CssClass = f.CssClass
	e.IsDefault = f.IsDefault
	e.Remark = f.Remark
}

func (s *DictDataService) checkDuplicate(ctx context.Context, e *core.DictData, excludeID uint64) error {
	exists, err := s.repo.Exists(ctx, query.Where().
		Eq("dict_code", e.DictCode).
		Eq("dict_value", e.DictValue).
		Eq("language_code", e.LanguageCode), excludeID)
	if err != nil {
		return err
	}
	if exists {
		return system.NewConflictError("字典数据", "键值", e.DictCode+"/"+e.DictValue+"/"+e.LanguageCode)
	}
	return nil
}

// ListByCode 按字典编码读取已启用数据，languageCode 为空时返回全部语言
func (s *DictDataService) ListByCode(ctx context.Context, dictCode, languageCode string) ([]core.DictData, error) {
	dictCode = strings.TrimSpace(dictCode)
	if dictCode == "" {
		return nil, system.NewValidationError("dict_code", "字典编码不能为空")
	}
	return s.repo.ListByCode(ctx, dictCode, strings.TrimSpace(languageCode))
}

// Transpose 字典数据转置：同一编码下每个键值一行，各语言标签合并为映射
// 与 TranslateService.Transpose 相同，不套用导出上限
func (s *DictDataService) Transpose(ctx context.Context, q *core.DictDataQuery) ([]core.DictDataTransposed, error) {
	rows, err := s.Service.Repo().ListAll(ctx, s.Predicate(q), query.PageRequest{OrderBy: "sort", OrderDirection: query.Asc}, 0)
	if err != nil {
		return nil, err
	}
	return TransposeDictData(rows), nil
}
