package main

import (
	"context"
	"fmt"
	"os"

	"backoffice/internal/config"
	"backoffice/internal/pkg/database"
	"backoffice/internal/pkg/logger"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	configPath  string
	environment string
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "backoffice 数据库迁移工具",
	Long: `backoffice 数据库迁移工具，按配置连接 MySQL 或 SQLite。

示例:
  1.同步表结构
	migrate up
  2.同步表结构并写入初始化数据
	migrate seed --file configs/seed.yaml
  3.删除全部表
	migrate drop --force
`,
	SilenceUsage: true,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "配置目录 (默认: BACKOFFICE_CONFIG_PATH 或 ./configs)")
	rootCmd.PersistentFlags().StringVar(&environment, "env", "", "环境标识 (development, test, production)")

	rootCmd.AddCommand(newUpCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newDropCmd())
}

// openDatabase 加载配置、初始化日志并连接数据库
func openDatabase() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig(configPath, environment)
	if err != nil {
		return nil, nil, fmt.Errorf("配置加载失败: %w", err)
	}
	if _, err := logger.InitLogger(&cfg.Log); err != nil {
		return nil, nil, fmt.Errorf("日志初始化失败: %w", err)
	}
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("数据库连接失败: %w", err)
	}
	pterm.Info.Printfln("已连接数据库 (driver=%s)", driverName(cfg))
	return cfg, db, nil
}

func driverName(cfg *config.Config) string {
	if cfg.Database.Driver == "" {
		return "mysql"
	}
	return cfg.Database.Driver
}

// renderTable 渲染表格
func renderTable(headers []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	tableData := pterm.TableData{headers}
	tableData = append(tableData, rows...)
	if err := pterm.DefaultTable.
		WithHasHeader(true).
		WithBoxed(false).
		WithData(tableData).
		Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
