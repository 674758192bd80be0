package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"backoffice/internal/model"
	"backoffice/internal/model/basemodel"
	"backoffice/internal/model/core"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/database/dbtest"
	"backoffice/internal/pkg/query"
	corerepo "backoffice/internal/repo/mysql/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLanguageService(t *testing.T) (*LanguageService, *corerepo.LanguageRepository) {
	db := dbtest.New(t)
	repo := corerepo.NewLanguageRepository(db)
	return NewLanguageService(repo, 0), repo
}

func createLanguage(t *testing.T, s *LanguageService, code string) uint64 {
	t.Helper()
	id, err := s.Create(context.Background(), &core.LanguageCreateRequest{
		LanguageFields: core.LanguageFields{LanguageName: code, LanguageCode: code},
	})
	require.NoError(t, err)
	return id
}

func TestLanguageService_SetDefaultIsExclusive(t *testing.T) {
	s, repo := newLanguageService(t)
	ctx := context.Background()

	id1 := createLanguage(t, s, "zh-CN")
	id2 := createLanguage(t, s, "en-US")
	createLanguage(t, s, "ja-JP")

	require.NoError(t, s.SetDefault(ctx, id1))
	require.NoError(t, s.SetDefault(ctx, id2))

	def, err := s.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, id2, def.ID)

	n, err := repo.CountDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// 重复设置同一语言
	require.NoError(t, s.SetDefault(ctx, id2))
	n, err = repo.CountDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLanguageService_SetDefaultConcurrent(t *testing.T) {
	s, repo := newLanguageService(t)
	ctx := context.Background()

	ids := make([]uint64, 0, 5)
	for _, code := range []string{"zh-CN", "en-US", "ja-JP", "ko-KR", "fr-FR"} {
		ids = append(ids, createLanguage(t, s, code))
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(ids)*4)
	for round := 0; round < 4; round++ {
		for _, id := range ids {
			wg.Add(1)
			go func(id uint64) {
				defer wg.Done()
				errs <- s.SetDefault(ctx, id)
			}(id)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	n, err := repo.CountDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLanguageService_SetDefaultErrors(t *testing.T) {
	s, _ := newLanguageService(t)
	ctx := context.Background()

	err := s.SetDefault(ctx, 999)
	assert.True(t, errors.Is(err, system.ErrNotFound))

	id := createLanguage(t, s, "de-DE")
	require.NoError(t, s.ChangeStatus(ctx, id, basemodel.StatusDisabled))
	err = s.SetDefault(ctx, id)
	assert.True(t, errors.Is(err, system.ErrValidation))

	_, err = s.GetDefault(ctx)
	assert.True(t, errors.Is(err, system.ErrNotFound))
}

func TestLanguageService_DefaultCannotBeDeleted(t *testing.T) {
	s, _ := newLanguageService(t)
	ctx := context.Background()

	id := createLanguage(t, s, "zh-CN")
	require.NoError(t, s.SetDefault(ctx, id))
	assert.True(t, errors.Is(s.Delete(ctx, id), system.ErrValidation))

	other := createLanguage(t, s, "en-US")
	require.NoError(t, s.Delete(ctx, other))
	_, err := s.Get(ctx, other)
	assert.True(t, errors.Is(err, system.ErrNotFound))
}

func TestLanguageService_DefaultCannotBeDisabled(t *testing.T) {
	s, _ := newLanguageService(t)
	ctx := context.Background()

	id := createLanguage(t, s, "zh-CN")
	require.NoError(t, s.SetDefault(ctx, id))

	err := s.ChangeStatus(ctx, id, basemodel.StatusDisabled)
	assert.True(t, errors.Is(err, system.ErrValidation))
	def, err := s.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, def.ID)
	assert.Equal(t, basemodel.StatusEnabled, def.IsEnabled)

	// 启用状态重复设置仍然成功
	require.NoError(t, s.ChangeStatus(ctx, id, basemodel.StatusEnabled))

	other := createLanguage(t, s, "en-US")
	require.NoError(t, s.SetDefault(ctx, other))
	require.NoError(t, s.ChangeStatus(ctx, id, basemodel.StatusDisabled), "former default can be disabled")
}

func TestLanguageService_ChangeStatusIdempotent(t *testing.T) {
	s, _ := newLanguageService(t)
	ctx := context.Background()
	id := createLanguage(t, s, "zh-CN")

	require.NoError(t, s.ChangeStatus(ctx, id, basemodel.StatusEnabled))
	require.NoError(t, s.ChangeStatus(ctx, id, basemodel.StatusEnabled))
	lang, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, basemodel.StatusEnabled, lang.IsEnabled)

	require.NoError(t, s.ChangeStatus(ctx, id, basemodel.StatusDisabled))
	require.NoError(t, s.ChangeStatus(ctx, id, basemodel.StatusDisabled))
	lang, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, basemodel.StatusDisabled, lang.IsEnabled)

	assert.True(t, errors.Is(s.ChangeStatus(ctx, id, basemodel.Status(7)), system.ErrValidation))
	assert.True(t, errors.Is(s.ChangeStatus(ctx, 12345, basemodel.StatusEnabled), system.ErrNotFound))
}

func TestLanguageService_UniqueCode(t *testing.T) {
	s, _ := newLanguageService(t)
	ctx := context.Background()
	createLanguage(t, s, "zh-CN")

	_, err := s.Create(ctx, &core.LanguageCreateRequest{LanguageFields: core.LanguageFields{LanguageName: "中文", LanguageCode: "zh-CN"}})
	assert.True(t, errors.Is(err, system.ErrConflict))
}

func newTranslateService(t *testing.T) (*TranslateService, *gorm.DB) {
	db := dbtest.New(t)
	return NewTranslateService(corerepo.NewTranslateRepository(db), 0), db
}

func TestTranslateService_Transpose(t *testing.T) {
	s, _ := newTranslateService(t)
	ctx := context.Background()

	for _, f := range []core.TranslateFields{
		{TranslateKey: "greeting", LanguageCode: "en", TranslateValue: "Hello", Module: "web"},
		{TranslateKey: "greeting", LanguageCode: "zh", TranslateValue: "你好", Module: "web"},
		{TranslateKey: "farewell", LanguageCode: "en", TranslateValue: "Bye", Module: "app"},
	} {
		_, err := s.Create(ctx, &core.TranslateCreateRequest{TranslateFields: f})
		require.NoError(t, err)
	}

	rows, err := s.Transpose(ctx, &core.TranslateQuery{TranslateKey: "greeting"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "greeting", rows[0].TranslateKey)
	assert.Equal(t, map[string]string{"en": "Hello", "zh": "你好"}, rows[0].Translations)

	rows, err = s.Transpose(ctx, &core.TranslateQuery{Module: "app"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "farewell", rows[0].TranslateKey)

	rows, err = s.Transpose(ctx, &core.TranslateQuery{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestTranslateService_TransposeIgnoresExportLimit(t *testing.T) {
	db := dbtest.New(t)
	s := NewTranslateService(corerepo.NewTranslateRepository(db), 4)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		for _, lang := range []string{"en", "zh"} {
			_, err := s.Create(ctx, &core.TranslateCreateRequest{TranslateFields: core.TranslateFields{
				TranslateKey: key, LanguageCode: lang, TranslateValue: key + "-" + lang,
			}})
			require.NoError(t, err)
		}
	}

	exported, err := s.Export(ctx, &core.TranslateQuery{}, query.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, exported, 4, "export stays capped")

	rows, err := s.Transpose(ctx, &core.TranslateQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Len(t, r.Translations, 2, r.TranslateKey)
	}
	assert.Equal(t, "c-zh", rows[2].Translations["zh"])
}

func TestTranslateService_DuplicateKeyLanguage(t *testing.T) {
	s, _ := newTranslateService(t)
	ctx := context.Background()
	req := &core.TranslateCreateRequest{TranslateFields: core.TranslateFields{TranslateKey: "k", LanguageCode: "en", TranslateValue: "v"}}
	_, err := s.Create(ctx, req)
	require.NoError(t, err)
	_, err = s.Create(ctx, req)
	assert.True(t, errors.Is(err, system.ErrConflict))
}

func TestTranslateService_ImportPartialFailure(t *testing.T) {
	s, _ := newTranslateService(t)
	ctx := context.Background()

	rows := model.RowsOf([]core.TranslateCreateRequest{
		{TranslateFields: core.TranslateFields{TranslateKey: "a", LanguageCode: "en", TranslateValue: "A"}},
		{TranslateFields: core.TranslateFields{TranslateKey: "", LanguageCode: "en", TranslateValue: "missing key"}},
		{TranslateFields: core.TranslateFields{TranslateKey: "c", LanguageCode: "en", TranslateValue: "C"}},
	})
	res, err := s.Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Success)
	assert.Equal(t, 1, res.Fail)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "第2行")
	assert.Contains(t, res.Errors[0], "translate_key")

	page, err := s.List(ctx, nil, query.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
}

func TestTranslateService_ImportStopsOnCancel(t *testing.T) {
	s, _ := newTranslateService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := model.RowsOf([]core.TranslateCreateRequest{
		{TranslateFields: core.TranslateFields{TranslateKey: "a", LanguageCode: "en"}},
	})
	res, err := s.Import(ctx, rows)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Success+res.Fail)
}

func TestDictServices(t *testing.T) {
	db := dbtest.New(t)
	dataRepo := corerepo.NewDictDataRepository(db)
	types := NewDictTypeService(corerepo.NewDictTypeRepository(db), dataRepo, 0)
	data := NewDictDataService(dataRepo, 0)
	ctx := context.Background()

	typeID, err := types.Create(ctx, &core.DictTypeCreateRequest{DictTypeFields: core.DictTypeFields{DictName: "性别", DictCode: "sys_gender"}})
	require.NoError(t, err)

	for _, f := range []core.DictDataFields{
		{DictCode: "sys_gender", DictValue: "1", DictLabel: "男", LanguageCode: "zh-CN", Sort: 1},
		{DictCode: "sys_gender", DictValue: "1", DictLabel: "Male", LanguageCode: "en-US", Sort: 1},
		{DictCode: "sys_gender", DictValue: "2", DictLabel: "女", LanguageCode: "zh-CN", Sort: 2},
		{DictCode: "sys_gender", DictValue: "2", DictLabel: "Female", LanguageCode: "en-US", Sort: 2},
	} {
		_, err := data.Create(ctx, &core.DictDataCreateRequest{DictDataFields: f})
		require.NoError(t, err)
	}

	_, err = data.Create(ctx, &core.DictDataCreateRequest{DictDataFields: core.DictDataFields{
		DictCode: "sys_gender", DictValue: "1", DictLabel: "dup", LanguageCode: "en-US",
	}})
	assert.True(t, errors.Is(err, system.ErrConflict))

	zh, err := data.ListByCode(ctx, "sys_gender", "zh-CN")
	require.NoError(t, err)
	require.Len(t, zh, 2)
	assert.Equal(t, "男", zh[0].DictLabel)

	rows, err := data.Transpose(ctx, &core.DictDataQuery{DictCode: "sys_gender"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].DictValue)
	assert.Equal(t, map[string]string{"zh-CN": "男", "en-US": "Male"}, rows[0].Labels)
	assert.Equal(t, map[string]string{"zh-CN": "女", "en-US": "Female"}, rows[1].Labels)

	capped := NewDictDataService(dataRepo, 1)
	rows, err = capped.Transpose(ctx, &core.DictDataQuery{DictCode: "sys_gender"})
	require.NoError(t, err)
	require.Len(t, rows, 2, "transpose is not limited by the export cap")
	assert.Len(t, rows[1].Labels, 2)

	// 仍有数据的类型不能删除
	assert.True(t, errors.Is(types.Delete(ctx, typeID), system.ErrValidation))

	_, err = data.ListByCode(ctx, " ", "")
	assert.True(t, errors.Is(err, system.ErrValidation))
}

func TestTransposeTranslations_KeepsFirstSeenOrder(t *testing.T) {
	rows := TransposeTranslations([]core.Translate{
		{TranslateKey: "b", LanguageCode: "en", TranslateValue: "B"},
		{TranslateKey: "a", LanguageCode: "en", TranslateValue: "A"},
		{TranslateKey: "b", LanguageCode: "zh", TranslateValue: "乙"},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].TranslateKey)
	assert.Equal(t, map[string]string{"en": "B", "zh": "乙"}, rows[0].Translations)
	assert.Empty(t, TransposeTranslations(nil))
}

type memCache struct {
	mu   sync.Mutex
	data map[string]string
	gets int
}

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func TestConfigService_GetValueByKeyUsesCache(t *testing.T) {
	db := dbtest.New(t)
	cache := &memCache{data: map[string]string{}}
	s := NewConfigService(corerepo.NewConfigRepository(db), cache, 0)
	ctx := context.Background()

	id, err := s.Create(ctx, &core.ConfigCreateRequest{ConfigFields: core.ConfigFields{
		ConfigName: "站点名称", ConfigKey: "site.name", ConfigValue: "Backoffice",
	}})
	require.NoError(t, err)

	v, err := s.GetValueByKey(ctx, "site.name")
	require.NoError(t, err)
	assert.Equal(t, "Backoffice", v)
	assert.Equal(t, "Backoffice", cache.data["0:site.name"])

	_, err = s.Update(ctx, id, &core.ConfigUpdateRequest{ConfigFields: core.ConfigFields{
		ConfigName: "站点名称", ConfigKey: "site.name", ConfigValue: "Admin",
	}})
	require.NoError(t, err)
	_, cached := cache.data["0:site.name"]
	assert.False(t, cached, "update evicts cached value")

	v, err = s.GetValueByKey(ctx, "site.name")
	require.NoError(t, err)
	assert.Equal(t, "Admin", v)

	require.NoError(t, s.ChangeStatus(ctx, id, basemodel.StatusDisabled))
	_, err = s.GetValueByKey(ctx, "site.name")
	assert.True(t, errors.Is(err, system.ErrNotFound))

	_, err = s.GetValueByKey(ctx, "")
	assert.True(t, errors.Is(err, system.ErrValidation))
}

func TestConfigService_SystemConfigCannotBeDeleted(t *testing.T) {
	db := dbtest.New(t)
	s := NewConfigService(corerepo.NewConfigRepository(db), nil, 0)
	ctx := context.Background()

	id, err := s.Create(ctx, &core.ConfigCreateRequest{ConfigFields: core.ConfigFields{
		ConfigName: "初始密码", ConfigKey: "user.init_password", ConfigValue: "x", ConfigType: core.ConfigTypeSystem,
	}})
	require.NoError(t, err)
	assert.True(t, errors.Is(s.Delete(ctx, id), system.ErrValidation))

	_, err = s.Create(ctx, &core.ConfigCreateRequest{ConfigFields: core.ConfigFields{ConfigName: "dup", ConfigKey: "user.init_password"}})
	assert.True(t, errors.Is(err, system.ErrConflict))
}
