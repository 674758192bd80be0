package main

import (
	"strconv"

	"backoffice/internal/pkg/auth"
	"backoffice/internal/pkg/database"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "同步表结构并写入初始化数据，已存在的记录不覆盖",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if file == "" {
				file = cfg.App.SeedFile
			}
			if file == "" {
				file = "configs/seed.yaml"
			}
			data, err := database.LoadSeedFile(file)
			if err != nil {
				return err
			}
			if _, err := database.Migrate(db); err != nil {
				return err
			}

			spinner, _ := pterm.DefaultSpinner.Start("写入初始化数据 " + file)
			report, err := database.Seed(cmd.Context(), db, data, auth.NewPasswordManager(&cfg.Security.Password))
			if err != nil {
				if spinner != nil {
					spinner.Fail(err.Error())
				}
				return err
			}
			if spinner != nil {
				spinner.Success("初始化数据写入完成")
			}

			rows := make([][]string, 0, len(report.Counts))
			for _, table := range report.Tables() {
				rows = append(rows, []string{table, strconv.Itoa(report.Counts[table])})
			}
			if len(rows) == 0 {
				pterm.Info.Println("没有新增记录")
				return nil
			}
			return renderTable([]string{"Table", "Inserted"}, rows)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "种子文件路径 (默认: app.seed_file 或 configs/seed.yaml)")
	return cmd
}
