/**
 * 服务层:租户
 * @date: 2026.03.11
 * @description: 租户增删改查，租户编码全局唯一
 */
package system

import (
	"context"
	"strings"

	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/query"
	"backoffice/internal/repo/mysql"
	"backoffice/internal/service/crud"
)

// TenantService 租户服务
type TenantService struct {
	*crud.Service[system.Tenant, system.TenantQuery, system.TenantCreateRequest, system.TenantUpdateRequest]
}

// NewTenantService 创建租户服务
func NewTenantService(repo *mysql.Repository[system.Tenant], exportLimit int) *TenantService {
	def := crud.Definition[system.Tenant, system.TenantQuery, system.TenantCreateRequest, system.TenantUpdateRequest]{
		Entity:    "租户",
		Operation: "system_tenant",
		Predicate: func(q *system.TenantQuery) *query.Predicate {
			return query.Where().
				Contains("tenant_name", q.TenantName).
				Contains("tenant_code", q.TenantCode).
				Eq("is_enabled", q.IsEnabled)
		},
		New: func(_ context.Context, req *system.TenantCreateRequest) (*system.Tenant, error) {
			e := &system.Tenant{IsEnabled: basemodel.StatusEnabled}
			applyTenantFields(e, &req.TenantFields)
			return e, nil
		},
		Apply: func(_ context.Context, e *system.Tenant, req *system.TenantUpdateRequest) error {
			applyTenantFields(e, &req.TenantFields)
			return nil
		},
		Unique: []crud.UniqueField[system.Tenant]{
			{Column: "tenant_code", Label: "租户编码", Value: func(e *system.Tenant) string { return e.TenantCode }, Global: true},
		},
	}
	return &TenantService{Service: crud.NewService(repo, def, exportLimit)}
}

func applyTenantFields(e *system.Tenant, f *system.TenantFields) {
	e.TenantName = strings.TrimSpace(f.TenantName)
	e.TenantCode = strings.TrimSpace(f.TenantCode)
	e.Contact = f.Contact
	e.Phone = f.Phone
	e.ExpireAt = f.ExpireAt
	e.Remark = f.Remark
}
