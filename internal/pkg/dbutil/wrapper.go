package dbutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// DB interface for database operations (allows for easy testing)
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	PingContext(ctx context.Context) error
}

// TxFunc represents a function that operates within a transaction
type TxFunc func(tx *sql.Tx) error

// Wrapper bounds database operations with a per-call timeout and provides
// transaction plumbing for the storage adapter.
type Wrapper struct {
	db      DB
	timeout time.Duration
}

// NewWrapper creates a new database wrapper
func NewWrapper(db DB, timeout time.Duration) *Wrapper {
	return &Wrapper{
		db:      db,
		timeout: timeout,
	}
}

// WithTransaction executes a function within a database transaction
func (w *Wrapper) WithTransaction(ctx context.Context, fn TxFunc) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	tx, err := w.db.BeginTx(ctxWithTimeout, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("transaction failed with error: %v, rollback also failed: %w", err, rollbackErr)
		}
		return fmt.Errorf("transaction rolled back due to error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ExecQuery executes a write query with the wrapper's timeout
func (w *Wrapper) ExecQuery(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	return w.db.ExecContext(ctxWithTimeout, query, args...)
}

// QueryRow executes a query that returns a single row
func (w *Wrapper) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	return w.db.QueryRowContext(ctxWithTimeout, query, args...)
}

// QueryRows executes a query that returns multiple rows
func (w *Wrapper) QueryRows(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	return w.db.QueryContext(ctxWithTimeout, query, args...)
}

// PingWithTimeout checks database connectivity
func (w *Wrapper) PingWithTimeout(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	return w.db.PingContext(ctxWithTimeout)
}

// ExecWithRetry retries a write when SQLite reports the database as busy.
func (w *Wrapper) ExecWithRetry(ctx context.Context, maxRetries int, fn TxFunc) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := w.WithTransaction(ctx, fn)
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return err
		}

		if attempt < maxRetries {
			waitTime := time.Duration(attempt+1) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitTime):
			}
		}
	}

	return fmt.Errorf("operation failed after %d retries, last error: %w", maxRetries, lastErr)
}

// isRetryableError determines if a database error is retryable
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	retryableErrors := []string{
		"database is locked",
		"database is busy",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}
	return false
}
