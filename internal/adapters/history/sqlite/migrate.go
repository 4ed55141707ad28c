package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var historySchema embed.FS

const historyMigrationsTable = "history_schema_migrations"

// MigrateHistory brings the switch-history schema up to date. Running it on a
// current database is a no-op.
func MigrateHistory(db *sql.DB) error {
	source, err := iofs.New(historySchema, "migrations")
	if err != nil {
		return fmt.Errorf("load history schema: %w", err)
	}

	target, err := migratesqlite.WithInstance(db, &migratesqlite.Config{MigrationsTable: historyMigrationsTable})
	if err != nil {
		return fmt.Errorf("prepare history database for migration: %w", err)
	}

	migrator, err := migrate.NewWithInstance("history-schema", source, "history-db", target)
	if err != nil {
		return fmt.Errorf("set up history migration: %w", err)
	}

	err = migrator.Up()
	switch {
	case err == nil, errors.Is(err, migrate.ErrNoChange):
		return nil
	default:
		return fmt.Errorf("migrate history schema: %w", err)
	}
}
