package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Driver names double as database/sql driver names.
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
)

const busyTimeout = 5 * time.Second

// Open connects to the configured backend and applies pending migrations.
// For SQLite source is a file path; for Postgres it is a connection URL.
func Open(driver, source string) (*sqlx.DB, error) {
	dsn, err := dataSource(driver, source)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), busyTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(driver, dsn); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("failed to run migrations: %w (also failed to close db: %v)", err, cerr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// OpenForTesting opens a fresh SQLite database inside dir.
func OpenForTesting(dir string) (*sqlx.DB, error) {
	return Open(SQLite, filepath.Join(dir, "planttracker.db"))
}

func dataSource(driver, source string) (string, error) {
	switch driver {
	case SQLite:
		if dir := filepath.Dir(source); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return "", fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		// _txlock=immediate takes the write lock at BEGIN, so concurrent
		// transactions serialise instead of failing to upgrade a read lock.
		return fmt.Sprintf(
			"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_txlock=immediate",
			source, busyTimeout.Milliseconds(),
		), nil
	case Postgres:
		if source == "" {
			return "", fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		return source, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// rawOpen opens a plain database/sql handle; migrations own and close it.
func rawOpen(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}
	return db, nil
}
