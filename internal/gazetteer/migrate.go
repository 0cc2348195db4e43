package gazetteer

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewMigrator builds a migrate instance over an open handle. Closing the
// returned Migrate also closes db.
func NewMigrator(db *sqlx.DB, driver string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	var target database.Driver
	switch driver {
	case DriverSQLite:
		target, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	case DriverPostgres:
		target, err = postgres.WithInstance(db.DB, &postgres.Config{})
	default:
		return nil, fmt.Errorf("unsupported gazetteer driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to init migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

// Migrate applies every pending up migration. db stays open.
func Migrate(db *sqlx.DB, driver string) error {
	m, err := NewMigrator(db, driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}
