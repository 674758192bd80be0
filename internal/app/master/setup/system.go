package setup

import (
	"backoffice/internal/config"
	systemHandler "backoffice/internal/handler/system"
	"backoffice/internal/pkg/auth"
	"backoffice/internal/pkg/logger"
	systemRepo "backoffice/internal/repo/mysql/system"
	systemService "backoffice/internal/service/system"

	"gorm.io/gorm"
)

// BuildSystemModule 构建系统管理模块（租户、部门、菜单、角色、用户）
// 参数说明：
// - passwords：与认证模块共用的密码哈希工具
// - sessions：停用、删除用户及重置密码后踢下线
func BuildSystemModule(db *gorm.DB, cfg *config.Config, passwords *auth.PasswordManager, sessions systemHandler.SessionRevoker) *SystemModule {
	logger.WithFields(stepLog("system.BuildSystemModule", "setup.system.begin", nil)).Info("开始构建系统管理模块")

	limit := cfg.App.ExportLimit
	upload := cfg.Server.MaxUploadSize

	userService := systemService.NewUserService(systemRepo.NewUserRepository(db), passwords, limit)
	module := &SystemModule{
		TenantHandler: systemHandler.NewTenantHandler(systemService.NewTenantService(systemRepo.NewTenantRepository(db), limit), upload),
		DeptHandler:   systemHandler.NewDeptHandler(systemService.NewDeptService(systemRepo.NewDeptRepository(db), limit), upload),
		MenuHandler:   systemHandler.NewMenuHandler(systemService.NewMenuService(systemRepo.NewMenuRepository(db), limit), upload),
		RoleHandler:   systemHandler.NewRoleHandler(systemService.NewRoleService(systemRepo.NewRoleRepository(db), limit), upload),
		UserHandler:   systemHandler.NewUserHandler(userService, sessions, upload),
		UserService:   userService,
	}

	logger.WithFields(stepLog("system.BuildSystemModule", "setup.system.done", nil)).Info("系统管理模块构建完成")
	return module
}
