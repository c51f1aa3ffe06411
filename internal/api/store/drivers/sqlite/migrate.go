package sqlite

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/healthmate/internal/api/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// schemaTable records the applied migration version for the API database.
const schemaTable = "healthmate_schema"

// ApplyMigrations runs the embedded up migrations that have not been applied
// yet. A database left dirty by a crashed migration is reported, not repaired.
func (s *Store) ApplyMigrations() error {
	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return fmt.Errorf("migrations: open source: %w", err)
	}
	db, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{MigrationsTable: schemaTable})
	if err != nil {
		return fmt.Errorf("migrations: bind database: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", db)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		version, dirty, _ := m.Version()
		return fmt.Errorf("migrations: up from version %d (dirty=%t): %w", version, dirty, err)
	}
	return nil
}
