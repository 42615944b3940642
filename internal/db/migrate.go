package db

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// runMigrations applies every pending up migration for driver over a
// dedicated connection that is closed before returning.
func runMigrations(driver, dsn string) error {
	dir, err := fs.Sub(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("failed to locate %s migrations: %w", driver, err)
	}
	src, err := iofs.New(dir, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	conn, err := rawOpen(driver, dsn)
	if err != nil {
		return err
	}

	var target database.Driver
	switch driver {
	case SQLite:
		target, err = migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	case Postgres:
		target, err = migratepostgres.WithInstance(conn, &migratepostgres.Config{})
	default:
		err = fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to prepare migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		_ = target.Close()
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	upErr := m.Up()
	srcErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}
	if srcErr != nil {
		return fmt.Errorf("failed to close migration source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close migration connection: %w", dbErr)
	}
	return nil
}
