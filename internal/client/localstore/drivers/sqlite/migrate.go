package sqlite

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/healthmate/internal/client/localstore/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ApplyMigrations creates or upgrades the kv and event tables. Several CLI
// processes may open the same file, so a concurrent upgrade that finds
// nothing left to do is not an error.
func (s *Store) ApplyMigrations() error {
	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return fmt.Errorf("local store: migrations: %w", err)
	}
	db, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{MigrationsTable: "local_schema"})
	if err != nil {
		return fmt.Errorf("local store: migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", db)
	if err != nil {
		return fmt.Errorf("local store: migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("local store: migrate up: %w", err)
	}
	return nil
}
