/**
 * 仓库层:通用仓库
 * @date: 2026.03.04
 * @description: 按实体类型参数化的分页仓库，各业务仓库嵌入后再补充专用查询
 * @func:
 *	1.GetByID / First / Exists / Count
 *	2.List 条件过滤 + 白名单排序 + 分页，返回总数
 *	3.ListAll 不分页导出(带上限)
 *	4.Create / Save / UpdateFields / Delete / Transaction
 * @note: 未找到返回 (nil, nil)，由 service 层决定是否报 NotFound；
 *	存储异常统一包装为 system.ErrQueryFailed
 */
package mysql

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/model/system"
	"backoffice/internal/pkg/logger"
	"backoffice/internal/pkg/query"
	"backoffice/internal/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 通用仓库
type Repository[T any] struct {
	db     *gorm.DB
	sort   query.SortSpec
	global bool
}

// NewRepository 创建通用仓库，sort 为该实体允许排序的字段白名单
func NewRepository[T any](db *gorm.DB, sort query.SortSpec) *Repository[T] {
	return &Repository[T]{db: db, sort: sort}
}

// Global 返回不做租户隔离的副本，平台级数据(租户、菜单)使用
func (r *Repository[T]) Global() *Repository[T] {
	return &Repository[T]{db: r.db, sort: r.sort, global: true}
}

// DB 带上下文和租户隔离的查询句柄
func (r *Repository[T]) DB(ctx context.Context) *gorm.DB {
	if r.global {
		return r.db.WithContext(ctx)
	}
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx))
}

// RawDB 不带租户隔离的句柄，跨租户的维护操作使用
func (r *Repository[T]) RawDB() *gorm.DB {
	return r.db
}

// SortSpec 返回排序白名单
func (r *Repository[T]) SortSpec() query.SortSpec {
	return r.sort
}

// WithTx 基于事务句柄创建临时仓库
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx, sort: r.sort, global: r.global}
}

// Transaction 在事务中执行 fn，fn 返回错误则回滚
func (r *Repository[T]) Transaction(ctx context.Context, fn func(txRepo *Repository[T]) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// TenantScope 上下文中存在租户时只访问本租户数据，租户0为平台级不过滤
func TenantScope(ctx context.Context) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		tenantID := utils.GetTenantIDFromContext(ctx)
		if tenantID == 0 {
			return db
		}
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: "tenant_id"},
			Value:  tenantID,
		})
	}
}

// GetByID 根据主键获取，未找到返回 (nil, nil)
func (r *Repository[T]) GetByID(ctx context.Context, id uint64, preloads ...string) (*T, error) {
	var entity T
	db := r.DB(ctx)
	for _, p := range preloads {
		db = db.Preload(p)
	}
	err := db.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Value: id}).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.fail(ctx, "get_by_id", err, map[string]interface{}{"id": id})
	}
	return &entity, nil
}

// First 返回满足条件的第一条，未找到返回 (nil, nil)
func (r *Repository[T]) First(ctx context.Context, pred *query.Predicate) (*T, error) {
	var entity T
	err := r.DB(ctx).Scopes(pred.Scope()).Order("id").First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.fail(ctx, "first", err, nil)
	}
	return &entity, nil
}

// Count 统计满足条件的记录数
func (r *Repository[T]) Count(ctx context.Context, pred *query.Predicate) (int64, error) {
	var total int64
	var model T
	if err := r.DB(ctx).Model(&model).Scopes(pred.Scope()).Count(&total).Error; err != nil {
		return 0, r.fail(ctx, "count", err, nil)
	}
	return total, nil
}

// Exists 判断是否存在满足条件且 id 不等于 excludeID 的记录，用于唯一性校验
func (r *Repository[T]) Exists(ctx context.Context, pred *query.Predicate, excludeID uint64) (bool, error) {
	var model T
	var total int64
	db := r.DB(ctx).Model(&model).Scopes(pred.Scope())
	if excludeID > 0 {
		db = db.Where("id <> ?", excludeID)
	}
	if err := db.Limit(1).Count(&total).Error; err != nil {
		return false, r.fail(ctx, "exists", err, nil)
	}
	return total > 0, nil
}

// List 分页查询：total 为忽略分页的匹配总数，items 为当前页
func (r *Repository[T]) List(ctx context.Context, pred *query.Predicate, page query.PageRequest, scopes ...func(*gorm.DB) *gorm.DB) (*query.PageResult[T], error) {
	page = page.Normalize()
	var model T
	var total int64

	build := func() *gorm.DB {
		return r.DB(ctx).Model(&model).Scopes(pred.Scope()).Scopes(scopes...)
	}
	if err := build().Count(&total).Error; err != nil {
		return nil, r.fail(ctx, "list_count", err, nil)
	}

	items := make([]T, 0, page.PageSize)
	if total > 0 && int64(page.Offset()) < total {
		err := build().
			Scopes(r.sort.Scope(page)).
			Offset(page.Offset()).
			Limit(page.PageSize).
			Find(&items).Error
		if err != nil {
			return nil, r.fail(ctx, "list", err, map[string]interface{}{"page_num": page.PageNum, "page_size": page.PageSize})
		}
	}
	return query.NewPageResult(items, total, page), nil
}

// ListAll 不分页查询，limit>0 时最多返回 limit 条
func (r *Repository[T]) ListAll(ctx context.Context, pred *query.Predicate, page query.PageRequest, limit int, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	items := make([]T, 0)
	db := r.DB(ctx).Scopes(pred.Scope()).Scopes(scopes...).Scopes(r.sort.Scope(page))
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&items).Error; err != nil {
		return nil, r.fail(ctx, "list_all", err, nil)
	}
	return items, nil
}

// Create 创建记录
func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("entity is nil")
	}
	if err := r.DB(ctx).Create(entity).Error; err != nil {
		return r.fail(ctx, "create", err, nil)
	}
	return nil
}

// Save 全字段保存(含零值)
func (r *Repository[T]) Save(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("entity is nil")
	}
	if err := r.DB(ctx).Save(entity).Error; err != nil {
		return r.fail(ctx, "save", err, nil)
	}
	return nil
}

// UpdateFields 按主键更新指定字段，自动补充 updated_by
func (r *Repository[T]) UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if name := utils.GetUsernameFromContext(ctx); name != "" {
		if _, ok := fields["updated_by"]; !ok {
			fields["updated_by"] = name
		}
	}
	var model T
	if err := r.DB(ctx).Model(&model).Where("id = ?", id).Updates(fields).Error; err != nil {
		return r.fail(ctx, "update_fields", err, map[string]interface{}{"id": id})
	}
	return nil
}

// softDeleter 带删除标记的实体，删除时改为更新 deleted_at 与 delete_mark
type softDeleter interface {
	SoftDeleteColumns() map[string]interface{}
}

// remove 删除 db 条件命中的行；日志类实体无删除标记，物理删除
func (r *Repository[T]) remove(db *gorm.DB) *gorm.DB {
	var model T
	if sd, ok := any(&model).(softDeleter); ok {
		return db.Model(&model).Updates(sd.SoftDeleteColumns())
	}
	return db.Delete(&model)
}

// Delete 按主键删除(业务实体为软删除)
func (r *Repository[T]) Delete(ctx context.Context, id uint64) error {
	if err := r.remove(r.DB(ctx).Where("id = ?", id)).Error; err != nil {
		return r.fail(ctx, "delete", err, map[string]interface{}{"id": id})
	}
	return nil
}

// DeleteWhere 按条件批量删除，条件为空时拒绝执行，返回删除条数
func (r *Repository[T]) DeleteWhere(ctx context.Context, pred *query.Predicate) (int64, error) {
	if pred.IsEmpty() {
		return 0, errors.New("refuse to delete without condition")
	}
	res := r.remove(r.DB(ctx).Scopes(pred.Scope()))
	if res.Error != nil {
		return 0, r.fail(ctx, "delete_where", res.Error, nil)
	}
	return res.RowsAffected, nil
}

// fail 记录仓库错误并包装
// 唯一键冲突映射为 ErrConflict，其余为 ErrQueryFailed
func (r *Repository[T]) fail(ctx context.Context, op string, err error, extra map[string]interface{}) error {
	var model T
	table := fmt.Sprintf("%T", model)
	fields := map[string]interface{}{"operation": op, "entity": table}
	for k, v := range extra {
		fields[k] = v
	}
	logger.LogError(err, utils.GetRequestIDFromContext(ctx), utils.GetUserIDFromContext(ctx), utils.GetClientIPFromContext(ctx), op, "REPO", fields)

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", system.ErrConflict, err)
	}
	return fmt.Errorf("%w: %s %s: %v", system.ErrQueryFailed, table, op, err)
}
