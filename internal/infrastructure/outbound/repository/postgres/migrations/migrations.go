package migrations

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	ports "kaizen-board/internal/domain/ports/output"
)

//go:embed *.sql
var files embed.FS

type Migrator struct {
	m   *migrate.Migrate
	log ports.Logger
}

// New opens a migrator against dsn. postgres:// and postgresql:// schemes are
// rewritten to the pgx5:// scheme the driver registers.
func New(dsn string, log ports.Logger) (*Migrator, error) {
	source, err := iofs.New(files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, pgx5URL(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return &Migrator{m: m, log: log}, nil
}

func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme)
		}
	}
	return dsn
}

func (m *Migrator) Up() error {
	err := m.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.log.Info("Migrations are up to date")
		return nil
	}
	if err != nil {
		m.log.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	m.logVersion("Migrations applied")
	return nil
}

func (m *Migrator) Down() error {
	err := m.m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		m.log.Info("Nothing to roll back")
		return nil
	}
	if err != nil {
		m.log.Error("Failed to roll back migrations", slog.String("error", err.Error()))
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	m.log.Info("Migrations rolled back")
	return nil
}

func (m *Migrator) logVersion(msg string) {
	version, dirty, err := m.m.Version()
	if err != nil {
		m.log.Info(msg)
		return
	}
	m.log.Info(msg, slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
}

func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}
