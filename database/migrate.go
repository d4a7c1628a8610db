package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// LatestSchemaVersion is the highest schema version the embedded migrations know
const LatestSchemaVersion = 1

// Migrate brings the schema up to version. Existing rows are never rewritten:
// migrations only create the notes table and its indexes when absent.
func (db *DB) Migrate(version uint) error {
	if version == 0 {
		return errors.New("schema version must be positive")
	}
	if version > LatestSchemaVersion {
		return fmt.Errorf("unknown schema version %d (latest is %d)", version, LatestSchemaVersion)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}

	// Closing m would close the shared *sql.DB, so only the source is released
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		src.Close()
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}
	defer src.Close()

	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema version %d is dirty", current)
	}
	if current > version {
		return fmt.Errorf("schema version %d on disk is newer than requested %d", current, version)
	}

	if err := m.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
