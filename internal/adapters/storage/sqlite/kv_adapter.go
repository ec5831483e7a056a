package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"replymate/internal/pkg/constants"
	"replymate/internal/pkg/dbutil"
)

// Adapter implements the StoragePort interface using SQLite as a durable
// key-value slot store. Each slot holds one whole JSON collection; writers
// replace the slot atomically.
type Adapter struct {
	db      *sql.DB
	wrapper *dbutil.Wrapper
}

// NewAdapter creates a new SQLite storage adapter
func NewAdapter(dbPath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=1&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One foreground writer; no need for a pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Adapter{
		db:      db,
		wrapper: dbutil.NewWrapper(db, constants.StorageTimeout),
	}, nil
}

// Migrate bootstraps the slot table.
func (a *Adapter) Migrate(ctx context.Context) error {
	_, err := a.wrapper.ExecQuery(ctx, `
		CREATE TABLE IF NOT EXISTS kv_slots (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create kv_slots table: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (a *Adapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	row := a.wrapper.QueryRow(ctx, "SELECT value FROM kv_slots WHERE key = ?", key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes value under key, replacing any previous value.
func (a *Adapter) Set(ctx context.Context, key string, value []byte) error {
	err := a.wrapper.ExecWithRetry(ctx, 3, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kv_slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`, key, value)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// Delete removes the slot. Deleting an absent key is not an error.
func (a *Adapter) Delete(ctx context.Context, key string) error {
	if _, err := a.wrapper.ExecQuery(ctx, "DELETE FROM kv_slots WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

// Ping checks database connectivity
func (a *Adapter) Ping(ctx context.Context) error {
	return a.wrapper.PingWithTimeout(ctx)
}

// Close closes the database connection
func (a *Adapter) Close() error {
	return a.db.Close()
}
