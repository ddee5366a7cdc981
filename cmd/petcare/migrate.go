package main

import (
	"fmt"

	"petcare/internal/adapters/docstore/sqldoc"
	"petcare/internal/platform/config"

	"github.com/spf13/cobra"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply document store migrations (sqlite/postgres drivers)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			d, err := sqldoc.DialectByName(cfg.DocStore.Driver)
			if err != nil {
				return fmt.Errorf("migrate requires a sql docstore driver: %w", err)
			}

			db, err := sqldoc.Open(d, cfg.DocStore.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := sqldoc.Migrate(cmd.Context(), db, d); err != nil {
				return err
			}
			version, err := sqldoc.MigrationVersion(cmd.Context(), db, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s docstore to version %d\n", d.Name, version)
			return nil
		},
	}
}
