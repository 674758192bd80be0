/**
 * 工具类:过滤条件构造器
 * @date: 2026.03.03
 * @description: 按查询 DTO 中提供的字段组合 AND 条件，未提供的字段不参与过滤
 * @func:
 *	1.Eq / Contains / Gte / Lte / Between 条件追加
 *	2.Scope 转换为 gorm 作用域
 * @note: Column 只能来自代码常量，不能来自请求参数
 */
package query

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Kind 条件类型
type Kind string

const (
	Equals         Kind = "eq"
	Contains       Kind = "contains"
	GreaterOrEqual Kind = "gte"
	LessOrEqual    Kind = "lte"
)

// likeEscape LIKE 转义字符，MySQL 与 SQLite 都支持 ESCAPE 子句
const likeEscape = "!"

// Condition 单个字段条件
type Condition struct {
	Column string
	Kind   Kind
	Value  interface{}
}

// Predicate 条件的合取(AND)，零值即"无条件"
type Predicate struct {
	conds []Condition
}

// Where 创建空条件构造器
func Where() *Predicate {
	return &Predicate{}
}

// Eq 等值条件
func (p *Predicate) Eq(column string, value interface{}) *Predicate {
	return p.add(column, Equals, value)
}

// Contains 子串匹配条件，大小写敏感性取决于数据库排序规则
func (p *Predicate) Contains(column string, value interface{}) *Predicate {
	return p.add(column, Contains, value)
}

// Gte 大于等于条件
func (p *Predicate) Gte(column string, value interface{}) *Predicate {
	return p.add(column, GreaterOrEqual, value)
}

// Lte 小于等于条件
func (p *Predicate) Lte(column string, value interface{}) *Predicate {
	return p.add(column, LessOrEqual, value)
}

// Between 闭区间条件，任一端缺省时只追加另一端
func (p *Predicate) Between(column string, start, end interface{}) *Predicate {
	return p.Gte(column, start).Lte(column, end)
}

// If 条件为真时才追加
func (p *Predicate) If(ok bool, column string, kind Kind, value interface{}) *Predicate {
	if !ok {
		return p
	}
	return p.add(column, kind, value)
}

// And 合并另一个条件集合
func (p *Predicate) And(other *Predicate) *Predicate {
	if other != nil {
		p.conds = append(p.conds, other.conds...)
	}
	return p
}

// Conditions 返回已收集的条件副本
func (p *Predicate) Conditions() []Condition {
	if p == nil {
		return nil
	}
	out := make([]Condition, len(p.conds))
	copy(out, p.conds)
	return out
}

// IsEmpty 是否没有任何条件
func (p *Predicate) IsEmpty() bool {
	return p == nil || len(p.conds) == 0
}

// Scope 转换为 gorm 作用域，nil 或空条件不追加 WHERE
func (p *Predicate) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.IsEmpty() {
			return db
		}
		for _, c := range p.conds {
			switch c.Kind {
			case Equals:
				db = db.Where(c.Column+" = ?", c.Value)
			case Contains:
				db = db.Where(c.Column+" LIKE ? ESCAPE '"+likeEscape+"'", "%"+escapeLike(toString(c.Value))+"%")
			case GreaterOrEqual:
				db = db.Where(c.Column+" >= ?", c.Value)
			case LessOrEqual:
				db = db.Where(c.Column+" <= ?", c.Value)
			}
		}
		return db
	}
}

func (p *Predicate) add(column string, kind Kind, value interface{}) *Predicate {
	v, ok := present(value)
	if !ok {
		return p
	}
	p.conds = append(p.conds, Condition{Column: column, Kind: kind, Value: v})
	return p
}

// present 判断值是否"已提供"，并解引用指针
// nil、空指针、空白字符串、零时间、空切片视为未提供
func present(value interface{}) (interface{}, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	v := rv.Interface()
	if tv, ok := v.(time.Time); ok {
		return tv, !tv.IsZero()
	}
	switch rv.Kind() {
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		return s, s != ""
	case reflect.Slice, reflect.Map:
		if rv.Len() == 0 {
			return nil, false
		}
	}
	return v, true
}

// DayEnd 日期区间的结束日取当天最后时刻，零值原样返回
// 只对零点时间生效，带时分秒的结束时间保持不变
func DayEnd(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Add(24*time.Hour - time.Nanosecond)
	}
	return t
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return r.Replace(s)
}
