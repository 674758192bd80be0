package model

import (
	"backoffice/internal/model/audit"
	"backoffice/internal/model/core"
	"backoffice/internal/model/hr"
	"backoffice/internal/model/logistics"
	"backoffice/internal/model/system"
)

// AllModels 需要建表的全部实体，迁移与测试共用
// 顺序即建表顺序，被多对多引用的表在前
func AllModels() []interface{} {
	return []interface{}{
		&system.Tenant{},
		&system.Dept{},
		&system.Menu{},
		&system.Role{},
		&system.User{},
		&core.Config{},
		&core.DictType{},
		&core.DictData{},
		&core.Language{},
		&core.Translate{},
		&audit.AuditLog{},
		&audit.ErrorLog{},
		&audit.LoginLog{},
		&hr.Position{},
		&hr.Employee{},
		&logistics.Warehouse{},
		&logistics.Material{},
	}
}

// UniqueIndex 编码类字段的唯一索引
// 索引末列为 delete_mark：未删除行恒为 0 互相约束，已删除行各不相同，不再占用编码
type UniqueIndex struct {
	Name    string
	Model   interface{}
	Columns []string
}

// UniqueIndexes 与各 service 的唯一性校验一一对应，并发创建时由数据库兜底
// 部门编码与菜单权限标识允许为空，只在 service 层校验非空值
func UniqueIndexes() []UniqueIndex {
	return []UniqueIndex{
		{"uk_sys_tenant_code", &system.Tenant{}, []string{"tenant_code", "delete_mark"}},
		{"uk_sys_user_username", &system.User{}, []string{"username", "delete_mark"}},
		{"uk_sys_role_code", &system.Role{}, []string{"tenant_id", "role_code", "delete_mark"}},
		{"uk_sys_config_key", &core.Config{}, []string{"tenant_id", "config_key", "delete_mark"}},
		{"uk_sys_dict_type_code", &core.DictType{}, []string{"tenant_id", "dict_code", "delete_mark"}},
		{"uk_sys_dict_data_value", &core.DictData{}, []string{"tenant_id", "dict_code", "dict_value", "language_code", "delete_mark"}},
		{"uk_sys_language_code", &core.Language{}, []string{"tenant_id", "language_code", "delete_mark"}},
		{"uk_sys_translate_key", &core.Translate{}, []string{"tenant_id", "translate_key", "language_code", "delete_mark"}},
		{"uk_hr_position_code", &hr.Position{}, []string{"tenant_id", "position_code", "delete_mark"}},
		{"uk_hr_employee_no", &hr.Employee{}, []string{"tenant_id", "employee_no", "delete_mark"}},
		{"uk_lg_warehouse_code", &logistics.Warehouse{}, []string{"tenant_id", "warehouse_code", "delete_mark"}},
		{"uk_lg_material_code", &logistics.Material{}, []string{"tenant_id", "material_code", "delete_mark"}},
	}
}
