package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/codelog/internal/db"
)

// FaultyUoW is a test UnitOfWork that injects Err into a transaction, either
// on the FailExecOn-th ExecContext call (counted from 1, 0 disables) or on any
// QueryContext whose SQL contains FailQueryContaining.
//
// Failures roll the transaction back, so tests can assert that nothing from a
// multi-write operation was persisted.
type FaultyUoW struct {
	DB                  *sql.DB
	FailExecOn          int32
	FailQueryContaining string
	Err                 error
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &faultyTx{DBTX: tx, u: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type faultyTx struct {
	db.DBTX
	u     *FaultyUoW
	execs atomic.Int32
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.execs.Add(1)
	if f.u.FailExecOn > 0 && n == f.u.FailExecOn {
		return nil, f.u.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func (f *faultyTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if f.u.FailQueryContaining != "" && strings.Contains(query, f.u.FailQueryContaining) {
		return nil, f.u.Err
	}
	return f.DBTX.QueryContext(ctx, query, args...)
}
