package repository

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB used by the persistence adapters.
// It is satisfied by *sql.DB, *sql.Tx and the database circuit breaker.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
