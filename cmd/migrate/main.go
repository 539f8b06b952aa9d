package main

// Run database migrations:
//   go run ./cmd/migrate up

import (
	"context"
	"database/sql"
	"os"

	"github.com/spf13/cobra"

	"codenote-backend/internal/shared/config"
	"codenote-backend/internal/shared/storage/db"
	"codenote-backend/internal/shared/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the study note schema",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		migrationCmd("up", "Apply all pending migrations", db.RunMigrations),
		migrationCmd("down", "Roll back the most recent migration", db.RollbackMigration),
		migrationCmd("status", "Print applied and pending migrations", db.MigrationStatus),
	)
	return root
}

func migrationCmd(use, short string, action func(context.Context, *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if err := telemetry.Init(cfg.Env, cfg.LogLevel); err != nil {
				return err
			}
			defer telemetry.Sync()

			ctx := cmd.Context()
			sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := action(ctx, sqlDB); err != nil {
				return err
			}
			telemetry.Info("migrate."+use+".done", nil)
			return nil
		},
	}
}
