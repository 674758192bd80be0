/**
 * 处理器:人事
 * @date: 2026.03.17
 * @description: 岗位与员工的增删改查、导入导出
 */
package hr

import (
	"backoffice/internal/handler"
	"backoffice/internal/model/hr"
	"backoffice/internal/pkg/excel"
	hrsvc "backoffice/internal/service/hr"
)

var genderLabels = map[hr.Gender]string{
	hr.GenderUnknown: "未知",
	hr.GenderMale:    "男",
	hr.GenderFemale:  "女",
}

var employeeStatusLabels = map[hr.EmployeeStatus]string{
	hr.EmployeeActive:   "在职",
	hr.EmployeeResigned: "离职",
}

// 导入时同时接受中文标签和枚举值
func parseGender(s string) hr.Gender {
	for k, v := range genderLabels {
		if s == v {
			return k
		}
	}
	return hr.Gender(s)
}

func parseEmployeeStatus(s string) hr.EmployeeStatus {
	for k, v := range employeeStatusLabels {
		if s == v {
			return k
		}
	}
	return hr.EmployeeStatus(s)
}

var positionSheet = excel.Sheet[hr.Position]{
	Name: "岗位",
	Columns: []excel.Column[hr.Position]{
		{Header: "ID", Value: func(e *hr.Position) interface{} { return e.ID }},
		{Header: "岗位名称", Width: 20, Value: func(e *hr.Position) interface{} { return e.PositionName }},
		{Header: "岗位编码", Width: 16, Value: func(e *hr.Position) interface{} { return e.PositionCode }},
		{Header: "排序", Value: func(e *hr.Position) interface{} { return e.Sort }},
		{Header: "状态", Value: func(e *hr.Position) interface{} { return excel.FormatStatus(e.IsEnabled) }},
		{Header: "备注", Width: 30, Value: func(e *hr.Position) interface{} { return e.Remark }},
	},
}

var positionImportSheet = excel.Sheet[hr.PositionCreateRequest]{
	Name: "岗位",
	Columns: []excel.Column[hr.PositionCreateRequest]{
		{Header: "岗位名称", Width: 20, Parse: func(r *hr.PositionCreateRequest, s string) error { r.PositionName = s; return nil }},
		{Header: "岗位编码", Width: 16, Parse: func(r *hr.PositionCreateRequest, s string) error { r.PositionCode = s; return nil }},
		{Header: "排序", Parse: func(r *hr.PositionCreateRequest, s string) (err error) { r.Sort, err = excel.ParseInt(s); return }},
		{Header: "备注", Width: 30, Parse: func(r *hr.PositionCreateRequest, s string) error { r.Remark = s; return nil }},
	},
}

var employeeSheet = excel.Sheet[hr.Employee]{
	Name: "员工",
	Columns: []excel.Column[hr.Employee]{
		{Header: "ID", Value: func(e *hr.Employee) interface{} { return e.ID }},
		{Header: "工号", Width: 14, Value: func(e *hr.Employee) interface{} { return e.EmployeeNo }},
		{Header: "姓名", Width: 12, Value: func(e *hr.Employee) interface{} { return e.Name }},
		{Header: "性别", Value: func(e *hr.Employee) interface{} { return genderLabels[e.Gender] }},
		{Header: "部门ID", Value: func(e *hr.Employee) interface{} { return e.DeptID }},
		{Header: "岗位ID", Value: func(e *hr.Employee) interface{} { return e.PositionID }},
		{Header: "手机号", Width: 14, Value: func(e *hr.Employee) interface{} { return e.Phone }},
		{Header: "邮箱", Width: 24, Value: func(e *hr.Employee) interface{} { return e.Email }},
		{Header: "入职日期", Width: 12, Value: func(e *hr.Employee) interface{} { return excel.FormatDate(e.HireDate) }},
		{Header: "在职状态", Value: func(e *hr.Employee) interface{} { return employeeStatusLabels[e.Status] }},
		{Header: "状态", Value: func(e *hr.Employee) interface{} { return excel.FormatStatus(e.IsEnabled) }},
		{Header: "备注", Width: 30, Value: func(e *hr.Employee) interface{} { return e.Remark }},
	},
}

var employeeImportSheet = excel.Sheet[hr.EmployeeCreateRequest]{
	Name: "员工",
	Columns: []excel.Column[hr.EmployeeCreateRequest]{
		{Header: "工号", Width: 14, Parse: func(r *hr.EmployeeCreateRequest, s string) error { r.EmployeeNo = s; return nil }},
		{Header: "姓名", Width: 12, Parse: func(r *hr.EmployeeCreateRequest, s string) error { r.Name = s; return nil }},
		{Header: "性别", Parse: func(r *hr.EmployeeCreateRequest, s string) error { r.Gender = parseGender(s); return nil }},
		{Header: "部门ID", Parse: func(r *hr.EmployeeCreateRequest, s string) (err error) { r.DeptID, err = excel.ParseUint(s); return }},
		{Header: "岗位ID", Parse: func(r *hr.EmployeeCreateRequest, s string) (err error) { r.PositionID, err = excel.ParseUint(s); return }},
		{Header: "手机号", Width: 14, Parse: func(r *hr.EmployeeCreateRequest, s string) error { r.Phone = s; return nil }},
		{Header: "邮箱", Width: 24, Parse: func(r *hr.EmployeeCreateRequest, s string) error { r.Email = s; return nil }},
		{Header: "入职日期", Width: 12, Parse: func(r *hr.EmployeeCreateRequest, s string) (err error) { r.HireDate, err = excel.ParseDate(s); return }},
		{Header: "在职状态", Parse: func(r *hr.EmployeeCreateRequest, s string) error { r.Status = parseEmployeeStatus(s); return nil }},
		{Header: "备注", Width: 30, Parse: func(r *hr.EmployeeCreateRequest, s string) error { r.Remark = s; return nil }},
	},
}

// PositionHandler 岗位处理器
type PositionHandler struct {
	*handler.CRUDHandler[hr.Position, hr.PositionQuery, hr.PositionCreateRequest, hr.PositionUpdateRequest]
}

// NewPositionHandler 创建岗位处理器
func NewPositionHandler(service *hrsvc.PositionService, maxUploadSize int64) *PositionHandler {
	return &PositionHandler{
		CRUDHandler: handler.NewCRUDHandler[hr.Position, hr.PositionQuery, hr.PositionCreateRequest, hr.PositionUpdateRequest](
			service, positionSheet, positionImportSheet, maxUploadSize),
	}
}

// EmployeeHandler 员工处理器
type EmployeeHandler struct {
	*handler.CRUDHandler[hr.Employee, hr.EmployeeQuery, hr.EmployeeCreateRequest, hr.EmployeeUpdateRequest]
}

// NewEmployeeHandler 创建员工处理器
func NewEmployeeHandler(service *hrsvc.EmployeeService, maxUploadSize int64) *EmployeeHandler {
	return &EmployeeHandler{
		CRUDHandler: handler.NewCRUDHandler[hr.Employee, hr.EmployeeQuery, hr.EmployeeCreateRequest, hr.EmployeeUpdateRequest](
			service, employeeSheet, employeeImportSheet, maxUploadSize),
	}
}
