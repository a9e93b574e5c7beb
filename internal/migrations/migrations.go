// Package migrations holds the embedded schema migrations for the article
// store.
package migrations

import (
	"embed"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed *.sql
var fs embed.FS

// Run brings the database up to the latest embedded schema version.
// Already-applied migrations are a no-op.
func Run(dbx *sqlx.DB) error {
	src, err := iofs.New(fs, ".")
	if err != nil {
		return fmt.Errorf("error opening migrations source: %w", err)
	}
	instance, err := sqlite.WithInstance(dbx.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("error wrapping db for migration: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", instance)
	if err != nil {
		return fmt.Errorf("error creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("error reading schema version: %w", err)
	}
	slog.Info("schema migrated", "version", version, "dirty", dirty)

	return nil
}
