package main

import (
	"errors"

	"backoffice/internal/pkg/database"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newDropCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "删除全部表（危险操作，需 --force）",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("drop 会删除全部数据，确认请加 --force")
			}
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if cfg.App.IsProduction() {
				pterm.Warning.Println("当前为生产环境")
			}
			if err := database.DropAll(db); err != nil {
				return err
			}
			pterm.Success.Println("全部表已删除")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "确认删除")
	return cmd
}
