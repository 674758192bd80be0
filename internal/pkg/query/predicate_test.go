package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type widget struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string
	Code      string
	Qty       int
	CreatedAt time.Time
}

// widgetQuery 模拟列表查询 DTO，可选字段用指针或空串表示未提供
type widgetQuery struct {
	Name  string
	Code  *string
	Qty   *int
	Start *time.Time
	End   *time.Time
}

func (q widgetQuery) predicate() *Predicate {
	return Where().
		Contains("name", q.Name).
		Eq("code", q.Code).
		Gte("qty", q.Qty).
		Between("created_at", q.Start, q.End)
}

func setupWidgets(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []widget{
		{Name: "alpha bolt", Code: "A1", Qty: 5, CreatedAt: base},
		{Name: "beta bolt", Code: "B1", Qty: 15, CreatedAt: base.AddDate(0, 0, 1)},
		{Name: "gamma nut", Code: "C1", Qty: 25, CreatedAt: base.AddDate(0, 0, 2)},
		{Name: "100%_pure", Code: "D1", Qty: 35, CreatedAt: base.AddDate(0, 0, 3)},
	}
	require.NoError(t, db.Create(&rows).Error)
	return db
}

func find(t *testing.T, db *gorm.DB, p *Predicate) []widget {
	t.Helper()
	var out []widget
	require.NoError(t, db.Scopes(p.Scope()).Order("id").Find(&out).Error)
	return out
}

func TestPredicate_OmitsAbsentFields(t *testing.T) {
	db := setupWidgets(t)
	blank := "   "

	p := widgetQuery{Code: &blank}.predicate()
	assert.True(t, p.IsEmpty())
	assert.Len(t, find(t, db, p), 4)

	var nilPred *Predicate
	assert.True(t, nilPred.IsEmpty())
	assert.Len(t, find(t, db, nilPred), 4)
}

func TestPredicate_Conditions(t *testing.T) {
	code := "B1"
	qty := 10
	p := widgetQuery{Name: " bolt ", Code: &code, Qty: &qty}.predicate()

	conds := p.Conditions()
	require.Len(t, conds, 3)
	assert.Equal(t, Condition{Column: "name", Kind: Contains, Value: "bolt"}, conds[0])
	assert.Equal(t, Condition{Column: "code", Kind: Equals, Value: "B1"}, conds[1])
	assert.Equal(t, Condition{Column: "qty", Kind: GreaterOrEqual, Value: 10}, conds[2])
}

func TestPredicate_Filters(t *testing.T) {
	db := setupWidgets(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	qty := 10
	start := base.AddDate(0, 0, 1)
	end := base.AddDate(0, 0, 2)

	tests := []struct {
		name  string
		query widgetQuery
		want  []string
	}{
		{name: "contains", query: widgetQuery{Name: "bolt"}, want: []string{"A1", "B1"}},
		{name: "contains_and_gte", query: widgetQuery{Name: "bolt", Qty: &qty}, want: []string{"B1"}},
		{name: "date_range_inclusive", query: widgetQuery{Start: &start, End: &end}, want: []string{"B1", "C1"}},
		{name: "open_end", query: widgetQuery{Start: &end}, want: []string{"C1", "D1"}},
		{name: "wildcards_are_literal", query: widgetQuery{Name: "%_"}, want: []string{"D1"}},
		{name: "no_match", query: widgetQuery{Name: "washer"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]string, 0)
			for _, w := range find(t, db, tt.query.predicate()) {
				got = append(got, w.Code)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPredicate_IfAndMerge(t *testing.T) {
	p := Where().If(false, "qty", Equals, 1).If(true, "qty", LessOrEqual, 3)
	p.And(Where().Eq("code", "A1")).And(nil)
	assert.Len(t, p.Conditions(), 2)

	var empty []string
	assert.True(t, Where().Eq("code", empty).IsEmpty())
	assert.True(t, Where().Eq("created_at", time.Time{}).IsEmpty())
	assert.False(t, Where().Eq("qty", 0).IsEmpty(), "zero numbers are real values")
}

func TestSortSpec_Resolve(t *testing.T) {
	spec := NewSortSpec("sort", map[string]string{"name": "name", "createdAt": "created_at"})

	col, desc := spec.Resolve(PageRequest{OrderBy: "createdAt", OrderDirection: "ASC"})
	assert.Equal(t, "created_at", col)
	assert.False(t, desc)

	col, desc = spec.Resolve(PageRequest{OrderBy: "name; DROP TABLE widgets"})
	assert.Equal(t, "sort", col)
	assert.True(t, desc)

	spec.DefaultDirection = Asc
	_, desc = spec.Resolve(PageRequest{})
	assert.False(t, desc)

	col, _ = SortSpec{}.Resolve(PageRequest{OrderBy: "qty"})
	assert.Equal(t, "id", col)
}

func TestSortSpec_UnknownFieldDoesNotBreakQuery(t *testing.T) {
	db := setupWidgets(t)
	spec := NewSortSpec("qty", map[string]string{"name": "name"})

	var out []widget
	err := db.Scopes(spec.Scope(PageRequest{OrderBy: "bogus", OrderDirection: Asc})).Find(&out).Error
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, "A1", out[0].Code)
}

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		in   PageRequest
		want PageRequest
	}{
		{in: PageRequest{}, want: PageRequest{PageNum: 1, PageSize: 10, OrderDirection: Desc}},
		{in: PageRequest{PageNum: -3, PageSize: 1000, OrderDirection: "asc"}, want: PageRequest{PageNum: 1, PageSize: 100, OrderDirection: Asc}},
		{in: PageRequest{PageNum: 3, PageSize: 20, OrderBy: " name "}, want: PageRequest{PageNum: 3, PageSize: 20, OrderBy: "name", OrderDirection: Desc}},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
	assert.Equal(t, 40, PageRequest{PageNum: 3, PageSize: 20}.Offset())
}

func TestNewPageResult(t *testing.T) {
	res := NewPageResult([]int{1, 2, 3, 4, 5}, 25, PageRequest{PageNum: 3, PageSize: 10})
	assert.Equal(t, int64(25), res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 3, res.PageNum)

	empty := NewPageResult[int](nil, 0, PageRequest{})
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)

	mapped := MapPage(res, func(i int) string { return fmt.Sprint(i * 2) })
	assert.Equal(t, []string{"2", "4", "6", "8", "10"}, mapped.Items)
	assert.Equal(t, res.Total, mapped.Total)
}

func TestDayEnd(t *testing.T) {
	assert.True(t, DayEnd(time.Time{}).IsZero())

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := DayEnd(day)
	assert.Equal(t, 1, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.Before(day.Add(24*time.Hour)))

	withClock := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, withClock, DayEnd(withClock))
}
