package setup

import (
	"backoffice/internal/config"
	coreHandler "backoffice/internal/handler/core"
	"backoffice/internal/pkg/logger"
	coreRepo "backoffice/internal/repo/mysql/core"
	redisRepo "backoffice/internal/repo/redis"
	coreService "backoffice/internal/service/core"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// BuildCoreModule 构建基础数据模块（参数配置、字典、语言、翻译）
// Redis 可用时参数配置按键读取走 Redis 缓存
func BuildCoreModule(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CoreModule {
	logger.WithFields(stepLog("core.BuildCoreModule", "setup.core.begin", nil)).Info("开始构建基础数据模块")

	limit := cfg.App.ExportLimit
	upload := cfg.Server.MaxUploadSize

	var cache coreService.ValueCache
	if redisClient != nil {
		cache = redisRepo.NewConfigCache(redisClient, cfg.Database.Redis.KeyPrefix, cfg.App.CacheTTL)
	}
	configService := coreService.NewConfigService(coreRepo.NewConfigRepository(db), cache, limit)

	dictDataRepo := coreRepo.NewDictDataRepository(db)
	dictTypeService := coreService.NewDictTypeService(coreRepo.NewDictTypeRepository(db), dictDataRepo, limit)
	dictDataService := coreService.NewDictDataService(dictDataRepo, limit)
	languageService := coreService.NewLanguageService(coreRepo.NewLanguageRepository(db), limit)
	translateService := coreService.NewTranslateService(coreRepo.NewTranslateRepository(db), limit)

	module := &CoreModule{
		ConfigHandler:    coreHandler.NewConfigHandler(configService, upload),
		DictTypeHandler:  coreHandler.NewDictTypeHandler(dictTypeService, upload),
		DictDataHandler:  coreHandler.NewDictDataHandler(dictDataService, upload),
		LanguageHandler:  coreHandler.NewLanguageHandler(languageService, upload),
		TranslateHandler: coreHandler.NewTranslateHandler(translateService, upload),
		ConfigService:    configService,
		LanguageService:  languageService,
	}

	logger.WithFields(stepLog("core.BuildCoreModule", "setup.core.done", map[string]interface{}{
		"config_cache": redisClient != nil,
	})).Info("基础数据模块构建完成")
	return module
}
