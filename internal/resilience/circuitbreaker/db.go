package circuitbreaker

import (
	"context"
	"database/sql"
	"time"

	"github.com/sony/gobreaker"

	"notify-svc/internal/observability/metrics"
)

// Conn is the subset of *sql.DB used by the repositories.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DBCircuitBreaker wraps a database connection with circuit breaker protection.
// It satisfies repository.DBTX, so repositories can be built on top of it.
type DBCircuitBreaker struct {
	cb   *CircuitBreaker
	conn Conn
}

// DBConfig returns configuration optimized for database circuit breakers.
// Opens after 5 consecutive failures, 30 second timeout.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3, // Allow 3 test requests in half-open state
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0, // Open on 100% failure (5+ consecutive failures)
		MinRequests:      5,   // Require 5 failures before tripping
	}
}

// NewDBCircuitBreaker creates a new database circuit breaker.
func NewDBCircuitBreaker(conn Conn) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(conn, DBConfig())
}

// NewDBCircuitBreakerWithConfig creates a new database circuit breaker with custom configuration.
func NewDBCircuitBreakerWithConfig(conn Conn, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{
		cb:   New(cfg),
		conn: conn,
	}
}

// QueryContext executes a query with circuit breaker protection.
// If the circuit is open, it returns ErrOpenState immediately without hitting the database.
func (dcb *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	result, err := dcb.cb.Execute(func() (interface{}, error) {
		return dcb.conn.QueryContext(ctx, query, args...)
	})
	metrics.RecordOperationDuration("query", time.Since(start))
	if err != nil {
		return nil, err
	}
	return result.(*sql.Rows), nil
}

// ExecContext executes a statement with circuit breaker protection.
// If the circuit is open, it returns ErrOpenState immediately without hitting the database.
func (dcb *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := dcb.cb.Execute(func() (interface{}, error) {
		return dcb.conn.ExecContext(ctx, query, args...)
	})
	metrics.RecordOperationDuration("exec", time.Since(start))
	if err != nil {
		return nil, err
	}
	return result.(sql.Result), nil
}

// QueryRowContext passes through to the wrapped connection.
// *sql.Row defers its error until Scan, so the breaker cannot observe it.
func (dcb *DBCircuitBreaker) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	defer func(start time.Time) {
		metrics.RecordOperationDuration("query_row", time.Since(start))
	}(time.Now())
	return dcb.conn.QueryRowContext(ctx, query, args...)
}

// State returns the current state of the circuit breaker.
func (dcb *DBCircuitBreaker) State() gobreaker.State {
	return dcb.cb.State()
}

// IsOpen returns true if the circuit breaker is in the open state.
func (dcb *DBCircuitBreaker) IsOpen() bool {
	return dcb.cb.IsOpen()
}
