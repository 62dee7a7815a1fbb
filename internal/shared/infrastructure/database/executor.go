package database

import (
	"context"
	"database/sql"
)

// Row is a single-row query result.
type Row interface {
	Scan(dest ...any) error
}

// Rows is a multi-row query result.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// Result reports the outcome of a statement.
type Result interface {
	RowsAffected() (int64, error)
}

// Executor runs queries and statements. Both connections and transactions
// satisfy it, so repositories can run inside or outside a transaction
// without knowing which.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

// Transaction is an executor with commit and rollback.
type Transaction interface {
	Executor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Connection is an open database handle.
type Connection interface {
	Executor
	Begin(ctx context.Context) (Transaction, error)
	Close() error
	Driver() Driver
	Ping(ctx context.Context) error
}

// WrapSQLResult adapts a database/sql result.
func WrapSQLResult(r sql.Result) Result { return sqlResult{r} }

type sqlResult struct{ r sql.Result }

func (w sqlResult) RowsAffected() (int64, error) { return w.r.RowsAffected() }

// WrapSQLRows adapts database/sql rows.
func WrapSQLRows(r *sql.Rows) Rows { return sqlRows{r} }

type sqlRows struct{ r *sql.Rows }

func (w sqlRows) Next() bool             { return w.r.Next() }
func (w sqlRows) Scan(dest ...any) error { return w.r.Scan(dest...) }
func (w sqlRows) Close() error           { return w.r.Close() }
func (w sqlRows) Err() error             { return w.r.Err() }
