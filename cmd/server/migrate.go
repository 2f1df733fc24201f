package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	ports "kaizen-board/internal/domain/ports/output"
	"kaizen-board/internal/infrastructure/config"
	"kaizen-board/internal/infrastructure/logger"
	"kaizen-board/internal/infrastructure/outbound/repository/postgres/migrations"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Apply or roll back the posts schema",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrations(cmd, (*migrations.Migrator).Up)
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrations(cmd, (*migrations.Migrator).Down)
		},
	})

	return migrateCmd
}

func runMigrations(cmd *cobra.Command, step func(*migrations.Migrator) error) error {
	configDir, err := cmd.Flags().GetString(configDirFlag)
	if err != nil {
		return err
	}
	cfg := config.MustLoad(configDir)
	log := logger.New(cfg.Env)

	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations need database.driver %q, got %q", config.DriverPostgres, cfg.Database.Driver)
	}

	return applyMigrations(cfg.Database.DSN(), log, step)
}

// applyMigrations opens a migrator on dsn, runs step and always closes it.
func applyMigrations(dsn string, log ports.Logger, step func(*migrations.Migrator) error) error {
	migrator, err := migrations.New(dsn, log)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Warn("Failed to close migrator", slog.String("error", err.Error()))
		}
	}()

	return step(migrator)
}
