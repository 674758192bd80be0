package setup

import (
	"time"

	"backoffice/internal/config"
	authHandler "backoffice/internal/handler/auth"
	authPkg "backoffice/internal/pkg/auth"
	"backoffice/internal/pkg/logger"
	memoryRepo "backoffice/internal/repo/memory"
	systemRepo "backoffice/internal/repo/mysql/system"
	redisRepo "backoffice/internal/repo/redis"
	authService "backoffice/internal/service/auth"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// memorySessionCleanup 内存会话过期清理间隔
const memorySessionCleanup = time.Minute

// stepLog 记录模块装配步骤
func stepLog(funcName, option string, extra map[string]interface{}) map[string]interface{} {
	fields := map[string]interface{}{
		"path":      "internal.app.master.setup." + funcName,
		"operation": "setup",
		"option":    option,
		"func_name": "setup." + funcName,
	}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}

// BuildAuthModule 构建认证模块（Auth）
// 责任边界：
// - 初始化 JWT、密码哈希工具与会话存储
// - 初始化会话服务与认证处理器
//
// 参数说明：
// - db：数据库连接，用于构建用户、租户仓库
// - redisClient：Redis 客户端，未配置 Redis 时为 nil
// - cfg：全局配置
// - loginLogs：登录日志写入方(来自审计模块)
//
// 会话存储：session.store=redis 且 Redis 可用时使用 Redis，否则退回内存实现
func BuildAuthModule(
	db *gorm.DB,
	redisClient *redis.Client,
	cfg *config.Config,
	loginLogs authService.LoginRecorder,
) (*AuthModule, error) {
	logger.WithFields(stepLog("auth.BuildAuthModule", "setup.auth.begin", nil)).Info("开始构建认证模块")

	// 1) 初始化工具：JWTManager 与 PasswordManager
	jwtCfg := cfg.Security.JWT
	jwtManager := authPkg.NewJWTManager(jwtCfg.Secret, jwtCfg.Issuer, jwtCfg.AccessTokenExpire)
	passwordManager := authPkg.NewPasswordManager(&cfg.Security.Password)

	// 2) 会话存储
	module := &AuthModule{PasswordManager: passwordManager}
	if cfg.Session.Store == "redis" && redisClient != nil {
		module.SessionStore = redisRepo.NewSessionRepository(redisClient, cfg.Database.Redis.KeyPrefix)
		logger.WithFields(stepLog("auth.BuildAuthModule", "setup.auth.repo.session.redis", nil)).Info("会话存储使用 Redis 实现")
	} else {
		if cfg.Session.Store == "redis" {
			logger.WithFields(stepLog("auth.BuildAuthModule", "setup.auth.repo.session.fallback", nil)).Warn("未配置 Redis，会话存储退回内存实现")
		}
		store := memoryRepo.NewSessionRepository(memorySessionCleanup)
		module.SessionStore = store
		module.closeStore = store.Close
		logger.WithFields(stepLog("auth.BuildAuthModule", "setup.auth.repo.session.memory", nil)).Info("会话存储使用内存实现")
	}

	// 3) 会话服务与处理器
	module.SessionService = authService.NewSessionService(
		systemRepo.NewUserRepository(db),
		systemRepo.NewTenantRepository(db),
		passwordManager,
		jwtManager,
		module.SessionStore,
		loginLogs,
	)
	module.AuthHandler = authHandler.NewAuthHandler(module.SessionService)

	logger.WithFields(stepLog("auth.BuildAuthModule", "setup.auth.done", nil)).Info("认证模块构建完成")
	return module, nil
}
