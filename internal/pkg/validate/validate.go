/**
 * 工具类:参数校验
 * @date: 2026.03.09
 * @description: 基于 validator/v10 的结构体校验，与 gin 共用 binding 标签，字段名取 json 标签
 * @func:
 *	1.Struct 校验任意结构体(导入行)
 *	2.Translate 把校验错误转换为 ValidationError 列表
 *	3.UseForGin 让 gin 绑定时使用同一个校验器
 */
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"backoffice/internal/model/system"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator 返回进程内共享的校验器
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.SetTagName("binding")
		v.RegisterTagNameFunc(jsonName)
		instance = v
	})
	return instance
}

// Struct 校验结构体，失败时返回 *system.ValidationError(仅第一个字段)
func Struct(v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	if list := Translate(err); len(list) > 0 {
		return &list[0]
	}
	return fmt.Errorf("%w: %v", system.ErrValidation, err)
}

// Translate 把 validator 的错误转换为字段级错误列表，非校验错误返回 nil
func Translate(err error) []system.ValidationError {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil
	}
	out := make([]system.ValidationError, 0, len(ves))
	for _, fe := range ves {
		out = append(out, system.ValidationError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// UseForGin 替换 gin 的默认校验器，绑定错误的字段名与导入校验一致
func UseForGin() {
	binding.Validator = ginValidator{}
}

type ginValidator struct{}

func (ginValidator) ValidateStruct(obj interface{}) error {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return Validator().Struct(obj)
}

func (ginValidator) Engine() interface{} {
	return Validator()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "不能为空"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("长度不能超过%s", fe.Param())
		}
		return fmt.Sprintf("不能大于%s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("长度不能少于%s", fe.Param())
		}
		return fmt.Sprintf("不能小于%s", fe.Param())
	case "gte":
		return fmt.Sprintf("不能小于%s", fe.Param())
	case "lte":
		return fmt.Sprintf("不能大于%s", fe.Param())
	case "oneof":
		return fmt.Sprintf("必须是[%s]之一", fe.Param())
	case "email":
		return "邮箱格式不正确"
	}
	return fmt.Sprintf("校验失败(%s)", fe.Tag())
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
