/**
 * 服务层:参数配置
 * @date: 2026.03.10
 * @description: 参数配置增删改查，按键取值时优先读缓存
 */
package core

import (
	"context"
	"fmt"
	"strings"

	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/core"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/logger"
	"backoffice/internal/pkg/query"
	"backoffice/internal/pkg/utils"
	"backoffice/internal/repo/mysql"
	"backoffice/internal/service/crud"

	"github.com/sirupsen/logrus"
)

// ValueCache 参数值缓存，未配置 Redis 时使用 NopCache
type ValueCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// NopCache 不缓存
type NopCache struct{}

func (NopCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (NopCache) Set(context.Context, string, string) error         { return nil }
func (NopCache) Delete(context.Context, string) error              { return nil }

// ConfigService 参数配置服务
type ConfigService struct {
	*crud.Service[core.Config, core.ConfigQuery, core.ConfigCreateRequest, core.ConfigUpdateRequest]
	cache ValueCache
}

// NewConfigService 创建参数配置服务，cache 为空时不缓存
func NewConfigService(repo *mysql.Repository[core.Config], cache ValueCache, exportLimit int) *ConfigService {
	if cache == nil {
		cache = NopCache{}
	}
	def := crud.Definition[core.Config, core.ConfigQuery, core.ConfigCreateRequest, core.ConfigUpdateRequest]{
		Entity:    "参数配置",
		Operation: "core_config",
		Predicate: func(q *core.ConfigQuery) *query.Predicate {
			return query.Where().
				Contains("config_name", q.ConfigName).
				Contains("config_key", q.ConfigKey).
				Eq("config_type", q.ConfigType).
				Eq("is_enabled", q.IsEnabled).
				Between("created_at", q.StartTime, query.DayEnd(q.EndTime))
		},
		New: func(_ context.Context, req *core.ConfigCreateRequest) (*core.Config, error) {
			e := &core.Config{IsEnabled: basemodel.StatusEnabled}
			applyConfigFields(e, &req.ConfigFields)
			return e, nil
		},
		Apply: func(_ context.Context, e *core.Config, req *core.ConfigUpdateRequest) error {
			applyConfigFields(e, &req.ConfigFields)
			return nil
		},
		Unique: []crud.UniqueField[core.Config]{
			{Column: "config_key", Label: "参数键名", Value: func(e *core.Config) string { return e.ConfigKey }},
		},
		BeforeDelete: func(_ context.Context, e *core.Config) error {
			if e.ConfigType == core.ConfigTypeSystem {
				return system.NewValidationError("config_type", "系统内置参数不允许删除")
			}
			return nil
		},
	}
	return &ConfigService{
		Service: crud.NewService(repo, def, exportLimit),
		cache:   cache,
	}
}

func applyConfigFields(e *core.Config, f *core.ConfigFields) {
	e.ConfigName = strings.TrimSpace(f.ConfigName)
	e.ConfigKey = strings.TrimSpace(f.ConfigKey)
	e.ConfigValue = f.ConfigValue
	e.ConfigType = f.ConfigType
	if e.ConfigType == "" {
		e.ConfigType = core.ConfigTypeUser
	}
	e.Remark = f.Remark
}

// GetValueByKey 按键名取已启用参数的值
func (s *ConfigService) GetValueByKey(ctx context.Context, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", system.NewValidationError("config_key", "参数键名不能为空")
	}
	cacheKey := s.cacheKey(ctx, key)
	if v, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
		return v, nil
	} else if err != nil {
		s.cacheWarn(ctx, "get", key, err)
	}

	cfg, err := s.Repo().First(ctx, query.Where().Eq("config_key", key).Eq("is_enabled", basemodel.StatusEnabled))
	if err != nil {
		return "", err
	}
	if cfg == nil {
		return "", system.NewNotFoundError("参数配置", key)
	}
	if err := s.cache.Set(ctx, cacheKey, cfg.ConfigValue); err != nil {
		s.cacheWarn(ctx, "set", key, err)
	}
	return cfg.ConfigValue, nil
}

// Update 更新后清除新旧键的缓存
func (s *ConfigService) Update(ctx context.Context, id uint64, req *core.ConfigUpdateRequest) (*core.Config, error) {
	old, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.Service.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.evict(ctx, old.ConfigKey, updated.ConfigKey)
	return updated, nil
}

// Delete 删除后清除缓存
func (s *ConfigService) Delete(ctx context.Context, id uint64) error {
	old, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Service.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, old.ConfigKey)
	return nil
}

// ChangeStatus 状态变化后清除缓存
func (s *ConfigService) ChangeStatus(ctx context.Context, id uint64, status basemodel.Status) error {
	old, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Service.ChangeStatus(ctx, id, status); err != nil {
		return err
	}
	s.evict(ctx, old.ConfigKey)
	return nil
}

func (s *ConfigService) evict(ctx context.Context, keys ...string) {
	for _, k := range keys {
		if err := s.cache.Delete(ctx, s.cacheKey(ctx, k)); err != nil {
			s.cacheWarn(ctx, "delete", k, err)
		}
	}
}

// cacheKey 缓存键按租户区分
func (s *ConfigService) cacheKey(ctx context.Context, key string) string {
	return fmt.Sprintf("%d:%s", utils.GetTenantIDFromContext(ctx), key)
}

// 缓存异常只记日志，不影响主流程
func (s *ConfigService) cacheWarn(ctx context.Context, op, key string, err error) {
	logger.LogSystemEvent("config_cache", op, err.Error(), logrus.WarnLevel, map[string]interface{}{
		"config_key": key,
		"request_id": utils.GetRequestIDFromContext(ctx),
	})
}
