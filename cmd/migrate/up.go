package main

import (
	"strconv"

	"backoffice/internal/pkg/database"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "按实体定义建表或补齐字段",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			tables, err := database.Migrate(db)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(tables))
			for i, t := range tables {
				rows = append(rows, []string{strconv.Itoa(i + 1), t})
			}
			if err := renderTable([]string{"#", "Table"}, rows); err != nil {
				return err
			}
			pterm.Success.Printfln("表结构同步完成，共 %d 张表", len(tables))
			return nil
		},
	}
}
