/**
 * 服务层:通用增删改查
 * @date: 2026.03.09
 * @description: 各实体共用的业务流程，实体差异由 Definition 提供
 * @func:
 *	1.List / Get / Export
 *	2.Create / Update / Delete / ChangeStatus
 *	3.Import 逐行校验并保存，单行失败不中断
 */
package crud

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/model"
	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/logger"
	"backoffice/internal/pkg/query"
	"backoffice/internal/pkg/utils"
	"backoffice/internal/pkg/validate"
	"backoffice/internal/repo/mysql"
)

// DefaultExportLimit 导出条数上限
const DefaultExportLimit = 10000

// UniqueField 需要唯一的字段
type UniqueField[E any] struct {
	Column string          // 数据库列名
	Label  string          // 提示用字段名
	Value  func(*E) string // 取值，空值不校验
	Global bool            // 跨租户唯一(如登录用户名)
}

// Definition 一个实体的业务差异
type Definition[E, Q, C, U any] struct {
	Entity    string // 实体显示名，用于错误提示
	Operation string // 日志操作前缀，如 core_config

	Predicate func(q *Q) *query.Predicate
	New       func(ctx context.Context, req *C) (*E, error)
	Apply     func(ctx context.Context, entity *E, req *U) error
	Unique    []UniqueField[E]

	// 可选：删除前检查(如存在下级节点时拒绝)
	BeforeDelete func(ctx context.Context, entity *E) error
	// 可选：状态确实变化前检查，status 为目标状态
	BeforeChangeStatus func(ctx context.Context, entity *E, status basemodel.Status) error
}

// Service 通用增删改查服务
type Service[E, Q, C, U any] struct {
	def         Definition[E, Q, C, U]
	repo        *mysql.Repository[E]
	exportLimit int
}

// NewService 创建通用服务，exportLimit<=0 时使用默认上限
func NewService[E, Q, C, U any](repo *mysql.Repository[E], def Definition[E, Q, C, U], exportLimit int) *Service[E, Q, C, U] {
	if exportLimit <= 0 {
		exportLimit = DefaultExportLimit
	}
	return &Service[E, Q, C, U]{def: def, repo: repo, exportLimit: exportLimit}
}

// Repo 底层仓库
func (s *Service[E, Q, C, U]) Repo() *mysql.Repository[E] {
	return s.repo
}

// Entity 实体显示名
func (s *Service[E, Q, C, U]) Entity() string {
	return s.def.Entity
}

// Predicate 查询条件转换，q 为空时返回空条件
func (s *Service[E, Q, C, U]) Predicate(q *Q) *query.Predicate {
	if q == nil || s.def.Predicate == nil {
		return query.Where()
	}
	return s.def.Predicate(q)
}

// List 分页列表
func (s *Service[E, Q, C, U]) List(ctx context.Context, q *Q, page query.PageRequest) (*query.PageResult[E], error) {
	return s.repo.List(ctx, s.Predicate(q), page)
}

// Get 按ID获取，不存在返回 NotFoundError
func (s *Service[E, Q, C, U]) Get(ctx context.Context, id uint64) (*E, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, system.NewNotFoundError(s.def.Entity, id)
	}
	return entity, nil
}

// Create 创建，返回新记录ID
func (s *Service[E, Q, C, U]) Create(ctx context.Context, req *C) (uint64, error) {
	if req == nil {
		return 0, system.NewValidationError("", "请求数据不能为空")
	}
	entity, err := s.def.New(ctx, req)
	if err != nil {
		return 0, err
	}
	if err := s.CheckUnique(ctx, entity, 0); err != nil {
		return 0, err
	}
	if err := s.repo.Create(ctx, entity); err != nil {
		return 0, err
	}
	id := idOf(entity)
	s.logOperation(ctx, "create", map[string]interface{}{"id": id})
	return id, nil
}

// Update 按ID更新，返回更新后的实体
func (s *Service[E, Q, C, U]) Update(ctx context.Context, id uint64, req *U) (*E, error) {
	if req == nil {
		return nil, system.NewValidationError("", "请求数据不能为空")
	}
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.def.Apply(ctx, entity, req); err != nil {
		return nil, err
	}
	if err := s.CheckUnique(ctx, entity, id); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, err
	}
	s.logOperation(ctx, "update", map[string]interface{}{"id": id})
	return entity, nil
}

// Delete 按ID删除
func (s *Service[E, Q, C, U]) Delete(ctx context.Context, id uint64) error {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if s.def.BeforeDelete != nil {
		if err := s.def.BeforeDelete(ctx, entity); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logOperation(ctx, "delete", map[string]interface{}{"id": id})
	return nil
}

// ChangeStatus 修改启用状态，状态未变化时直接返回成功
func (s *Service[E, Q, C, U]) ChangeStatus(ctx context.Context, id uint64, status basemodel.Status) error {
	if !status.Valid() {
		return system.NewValidationError("is_enabled", fmt.Sprintf("非法状态值: %d", status))
	}
	entity, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	same, err := s.repo.Exists(ctx, query.Where().Eq("id", id).Eq("is_enabled", status), 0)
	if err != nil {
		return err
	}
	if same {
		return nil
	}
	if s.def.BeforeChangeStatus != nil {
		if err := s.def.BeforeChangeStatus(ctx, entity, status); err != nil {
			return err
		}
	}
	if err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"is_enabled": status}); err != nil {
		return err
	}
	s.logOperation(ctx, "change_status", map[string]interface{}{"id": id, "is_enabled": status})
	return nil
}

// Export 导出全部匹配记录，最多 exportLimit 条
func (s *Service[E, Q, C, U]) Export(ctx context.Context, q *Q, page query.PageRequest) ([]E, error) {
	return s.repo.ListAll(ctx, s.Predicate(q), page, s.exportLimit)
}

// Import 逐行导入
// 行解析错误、校验错误和保存错误都记入结果，不中断批次；
// 上下文取消时返回已处理部分的结果和取消原因
func (s *Service[E, Q, C, U]) Import(ctx context.Context, rows []model.ImportRow[C]) (*model.ImportResult, error) {
	result := model.NewImportResult(len(rows))
	for i := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		row := &rows[i]
		if row.Err != nil {
			result.AddFailure(row.Line, row.Err)
			continue
		}
		if err := validate.Struct(&row.Data); err != nil {
			result.AddFailure(row.Line, err)
			continue
		}
		if _, err := s.Create(ctx, &row.Data); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return result, err
			}
			result.AddFailure(row.Line, err)
			continue
		}
		result.AddSuccess()
	}
	s.logOperation(ctx, "import", map[string]interface{}{
		"total":   result.Total,
		"success": result.Success,
		"fail":    result.Fail,
	})
	return result, nil
}

// CheckUnique 校验唯一字段，excludeID 为更新时的自身ID
func (s *Service[E, Q, C, U]) CheckUnique(ctx context.Context, entity *E, excludeID uint64) error {
	for _, u := range s.def.Unique {
		value := strings.TrimSpace(u.Value(entity))
		if value == "" {
			continue
		}
		repo := s.repo
		if u.Global {
			repo = repo.Global()
		}
		exists, err := repo.Exists(ctx, query.Where().Eq(u.Column, value), excludeID)
		if err != nil {
			return err
		}
		if exists {
			return system.NewConflictError(s.def.Entity, u.Label, value)
		}
	}
	return nil
}

func (s *Service[E, Q, C, U]) logOperation(ctx context.Context, action string, extra map[string]interface{}) {
	logger.LogBusinessOperation(s.def.Operation+"_"+action,
		utils.GetUserIDFromContext(ctx),
		utils.GetUsernameFromContext(ctx),
		utils.GetClientIPFromContext(ctx),
		utils.GetRequestIDFromContext(ctx),
		"success", s.def.Entity+" "+action, extra)
}

func idOf(entity interface{}) uint64 {
	if e, ok := entity.(interface{ GetID() uint64 }); ok {
		return e.GetID()
	}
	return 0
}
