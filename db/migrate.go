package db

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	// Registers the postgres:// database driver (backed by lib/pq).
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/user/finstarter-go/apperror"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// newMigrator builds a migrator over the embedded SQL files.
func newMigrator(databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, apperror.NewMigrationError("failed to open embedded migrations", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, apperror.NewMigrationError("failed to create migrator", err)
	}
	return m, nil
}

// RunMigrations applies any pending migrations. It is idempotent:
// an up-to-date schema is not an error.
func RunMigrations(databaseURL string) error {
	m, err := newMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewMigrationError("failed to run migrations", err)
	}
	return nil
}

// RollbackMigrations reverts the most recent migration step.
func RollbackMigrations(databaseURL string) error {
	m, err := newMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil {
		return apperror.NewMigrationError("failed to roll back migration", err)
	}
	return nil
}
