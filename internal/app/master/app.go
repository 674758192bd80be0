/**
 * 应用程序
 * @date: 2026.03.20
 * @description: master 程序的依赖装配与生命周期
 * @func:
 * 1.加载配置、初始化日志、连接数据库与 Redis、建表
 * 2.构建业务模块、中间件与路由
 * 3.配置热加载(日志级别)
 * 4.启动 HTTP 服务与优雅关闭
 */
package master

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"backoffice/internal/app/master/middleware"
	"backoffice/internal/app/master/router"
	"backoffice/internal/app/master/setup"
	"backoffice/internal/config"
	"backoffice/internal/pkg/database"
	"backoffice/internal/pkg/logger"
	"backoffice/internal/pkg/validate"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App 应用程序结构体
type App struct {
	config            *config.Config
	loggerManager     *logger.LoggerManager
	db                *gorm.DB
	redisClient       *redis.Client
	modules           *setup.Modules
	middlewareManager *middleware.MiddlewareManager
	router            *router.Router
	watcher           *config.ConfigWatcher
	server            *http.Server
	stopOnce          sync.Once
}

// NewApp 创建新的应用程序实例
// configPath 为配置目录，env 为环境标识，均可为空
func NewApp(configPath, env string) (*App, error) {
	cfg, err := config.LoadConfig(configPath, env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	loggerManager, err := logger.InitLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	validate.UseForGin()

	app := &App{config: cfg, loggerManager: loggerManager}
	if err := app.initStores(); err != nil {
		app.closeStores()
		return nil, err
	}

	modules, err := setup.BuildModules(app.db, app.redisClient, cfg)
	if err != nil {
		app.closeStores()
		return nil, fmt.Errorf("build modules: %w", err)
	}
	app.modules = modules
	app.middlewareManager = middleware.NewMiddlewareManager(
		modules.Auth.SessionService,
		modules.Audit.AuditLogService,
		modules.Audit.ErrorLogService,
		&cfg.Security,
	)

	app.router = router.NewRouter(cfg, modules, app.middlewareManager, app.readinessChecks())
	app.router.SetupRoutes()

	app.server = &http.Server{
		Addr:           cfg.Server.GetAddress(),
		Handler:        app.router.GetEngine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	app.watchConfig(configPath, env)
	return app, nil
}

// initStores 连接数据库、同步表结构，配置了 Redis 时连接 Redis
func (a *App) initStores() error {
	db, err := database.NewConnection(&a.config.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	a.db = db

	tables, err := database.Migrate(db)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	logger.LogSystemEvent("app", "migrate", "database schema synced", logrus.InfoLevel, map[string]interface{}{
		"driver": a.config.Database.Driver,
		"tables": len(tables),
	})

	if a.config.Database.Redis.Enabled() {
		client, err := database.NewRedisConnection(&a.config.Database.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		a.redisClient = client
	}
	return nil
}

// readinessChecks 就绪检查项
func (a *App) readinessChecks() map[string]router.ReadinessCheck {
	checks := map[string]router.ReadinessCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := a.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if a.redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.redisClient.Ping(ctx).Err()
		}
	}
	return checks
}

// watchConfig 配置文件变更后热更新日志配置，其余配置需重启生效
func (a *App) watchConfig(configPath, env string) {
	watcher, err := config.NewConfigWatcher(configPath, env, a.config, a.loggerManager.GetLogger())
	if err != nil {
		logger.LogSystemEvent("app", "config_watch", err.Error(), logrus.WarnLevel, nil)
		return
	}
	watcher.AddCallback(func(oldConfig, newConfig *config.Config) error {
		if oldConfig.Log == newConfig.Log {
			return nil
		}
		return a.loggerManager.UpdateConfig(&newConfig.Log)
	})
	if err := watcher.Start(); err != nil {
		_ = watcher.Stop()
		logger.LogSystemEvent("app", "config_watch", err.Error(), logrus.WarnLevel, nil)
		return
	}
	a.watcher = watcher
}

// GetConfig 获取配置
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetRouter 获取路由器实例
func (a *App) GetRouter() *router.Router {
	return a.router
}

// Start 启动 HTTP 服务，阻塞直到服务关闭
func (a *App) Start() error {
	logger.LogSystemEvent("app", "start", "HTTP server listening", logrus.InfoLevel, map[string]interface{}{
		"addr":        a.server.Addr,
		"environment": a.config.App.Environment,
		"version":     a.config.App.Version,
	})
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Stop 优雅关闭：先停止接收请求并等待在途请求，再释放后台任务与连接
func (a *App) Stop(ctx context.Context) error {
	var err error
	a.stopOnce.Do(func() {
		if a.server != nil {
			err = a.server.Shutdown(ctx)
		}
		if a.watcher != nil {
			_ = a.watcher.Stop()
		}
		if a.middlewareManager != nil {
			a.middlewareManager.Close()
		}
		if a.modules != nil {
			_ = a.modules.Close()
		}
		a.closeStores()
		logger.LogSystemEvent("app", "stop", "application stopped", logrus.InfoLevel, nil)
	})
	return err
}

func (a *App) closeStores() {
	if a.redisClient != nil {
		_ = a.redisClient.Close()
	}
	if a.db != nil {
		_ = database.Close(a.db)
	}
}
