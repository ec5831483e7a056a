package ports

import (
	"context"
)

// StoragePort defines the interface for the durable key-value slot store
// backing the conversation cache. Keys are opaque to the adapter; the
// conversation store is the only intended consumer and owns the key layout.
type StoragePort interface {
	// Get returns the value stored under key. found is false when the slot
	// has never been written (not an error).
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set writes value under key, replacing any previous value atomically.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the slot. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Health check
	Ping(ctx context.Context) error

	// Close releases the underlying storage handle.
	Close() error
}
