package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx, so every repository works
// the same inside or outside a transaction.
type DBTX interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// Store groups the repositories that share one database handle.
type Store struct {
	db *sqlx.DB // nil when the store is bound to a transaction

	Plants     *PlantStore
	Pots       *PotStore
	Soils      *SoilStore
	Placements *PlacementStore
}

func New(db *sqlx.DB) *Store {
	return bind(db, db)
}

func bind(db *sqlx.DB, q DBTX) *Store {
	return &Store{
		db:         db,
		Plants:     NewPlantStore(q),
		Pots:       NewPotStore(q),
		Soils:      NewSoilStore(q),
		Placements: NewPlacementStore(q),
	}
}

// InTx runs fn against a store bound to a new transaction. The transaction
// commits when fn returns nil and rolls back on any error or panic. Calling
// InTx on a store that is already transactional reuses that transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) (err error) {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
				slog.Error("failed to roll back transaction", "error", rerr)
			}
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cerr)
		}
	}()

	return fn(bind(nil, tx))
}

// get scans a single row into a new T, returning (nil, nil) when no row
// matches.
func get[T any](ctx context.Context, q DBTX, query string, args ...any) (*T, error) {
	v := new(T)
	err := q.GetContext(ctx, v, q.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func list[T any](ctx context.Context, q DBTX, query string, args ...any) ([]*T, error) {
	out := []*T{}
	if err := q.SelectContext(ctx, &out, q.Rebind(query), args...); err != nil {
		return nil, err
	}
	return out, nil
}

func insert(ctx context.Context, q DBTX, query string, args ...any) (int64, error) {
	var id int64
	if err := q.QueryRowxContext(ctx, q.Rebind(query), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// exec runs a statement and reports how many rows it touched.
func exec(ctx context.Context, q DBTX, query string, args ...any) (int64, error) {
	result, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// lockRow takes a row lock for the rest of the transaction. SQLite
// transactions already hold the database write lock from BEGIN IMMEDIATE, so
// only Postgres needs an explicit lock.
func lockRow(ctx context.Context, q DBTX, table string, id int64) error {
	if q.DriverName() != "postgres" {
		return nil
	}
	var locked int64
	err := q.QueryRowxContext(ctx, q.Rebind("SELECT id FROM "+table+" WHERE id = ? FOR UPDATE"), id).Scan(&locked)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to lock %s %d: %w", table, id, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE"))
	}
	return false
}
