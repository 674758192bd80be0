package setup

import (
	"backoffice/internal/config"
	hrHandler "backoffice/internal/handler/hr"
	logisticsHandler "backoffice/internal/handler/logistics"
	"backoffice/internal/pkg/logger"
	hrRepo "backoffice/internal/repo/mysql/hr"
	logisticsRepo "backoffice/internal/repo/mysql/logistics"
	hrService "backoffice/internal/service/hr"
	logisticsService "backoffice/internal/service/logistics"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// BuildHRModule 构建人事模块（岗位、员工）
// 岗位与员工互相引用：删除岗位前检查员工，保存员工时校验岗位
func BuildHRModule(db *gorm.DB, cfg *config.Config) *HRModule {
	limit := cfg.App.ExportLimit
	upload := cfg.Server.MaxUploadSize

	positions := hrRepo.NewPositionRepository(db)
	employees := hrRepo.NewEmployeeRepository(db)

	module := &HRModule{
		PositionHandler: hrHandler.NewPositionHandler(hrService.NewPositionService(positions, employees, limit), upload),
		EmployeeHandler: hrHandler.NewEmployeeHandler(hrService.NewEmployeeService(employees, positions, limit), upload),
	}
	logger.WithFields(stepLog("business.BuildHRModule", "setup.hr.done", nil)).Info("人事模块构建完成")
	return module
}

// BuildLogisticsModule 构建物流模块（仓库、物料）
func BuildLogisticsModule(db *gorm.DB, cfg *config.Config) *LogisticsModule {
	limit := cfg.App.ExportLimit
	upload := cfg.Server.MaxUploadSize

	warehouses := logisticsRepo.NewWarehouseRepository(db)
	materials := logisticsRepo.NewMaterialRepository(db)

	module := &LogisticsModule{
		WarehouseHandler: logisticsHandler.NewWarehouseHandler(logisticsService.NewWarehouseService(warehouses, materials, limit), upload),
		MaterialHandler:  logisticsHandler.NewMaterialHandler(logisticsService.NewMaterialService(materials, warehouses, limit), upload),
	}
	logger.WithFields(stepLog("business.BuildLogisticsModule", "setup.logistics.done", nil)).Info("物流模块构建完成")
	return module
}

// BuildModules 按依赖顺序构建全部模块：审计 → 认证 → 系统 → 基础数据 → 人事 → 物流
func BuildModules(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) (*Modules, error) {
	auditModule := BuildAuditModule(db, cfg)
	authModule, err := BuildAuthModule(db, redisClient, cfg, auditModule.LoginLogService)
	if err != nil {
		return nil, err
	}
	return &Modules{
		Audit:     auditModule,
		Auth:      authModule,
		System:    BuildSystemModule(db, cfg, authModule.PasswordManager, authModule.SessionService),
		Core:      BuildCoreModule(db, redisClient, cfg),
		HR:        BuildHRModule(db, cfg),
		Logistics: BuildLogisticsModule(db, cfg),
	}, nil
}
