package db

import (
	"context"
	"database/sql"
)

// DBTX is the query surface repositories need. Services hand repositories
// either the shared *sql.DB for reads or the *sql.Tx of a WithinTx call for
// writes that must land with the item recompute.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
