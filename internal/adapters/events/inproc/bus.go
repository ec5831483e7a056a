package inproc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"replymate/internal/domain/ports"
)

// Adapter implements the EventBusPort interface with in-process fan-out. The
// whole application lives in one process driven by a single foreground UI, so
// there is no broker; handlers run synchronously on the publisher's goroutine.
type Adapter struct {
	mu       sync.RWMutex
	handlers map[string][]handlerEntry
	closed   bool
}

type handlerEntry struct {
	fn ports.EventHandler
}

// WildcardSubject subscribes a handler to every published subject.
const WildcardSubject = "*"

// NewAdapter creates an empty in-process event bus.
func NewAdapter() *Adapter {
	return &Adapter{
		handlers: make(map[string][]handlerEntry),
	}
}

// Publish delivers data to every handler subscribed to the subject or the
// wildcard. Handler errors are collected but do not stop delivery.
func (a *Adapter) Publish(ctx context.Context, subject string, data []byte) error {
	a.mu.RLock()
	if a.closed {
		a.mu.RUnlock()
		return fmt.Errorf("event bus is closed")
	}
	entries := make([]handlerEntry, 0, len(a.handlers[subject])+len(a.handlers[WildcardSubject]))
	entries = append(entries, a.handlers[subject]...)
	entries = append(entries, a.handlers[WildcardSubject]...)
	a.mu.RUnlock()

	var firstErr error
	for _, entry := range entries {
		if err := entry.fn(ctx, subject, data); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("handler for %s failed: %w", subject, err)
		}
	}
	return firstErr
}

// PublishJSON publishes a JSON-serializable object to the subject.
func (a *Adapter) PublishJSON(ctx context.Context, subject string, obj interface{}) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return a.Publish(ctx, subject, data)
}

// Subscribe registers a handler for a subject. Pass WildcardSubject to
// receive everything.
func (a *Adapter) Subscribe(ctx context.Context, subject string, handler ports.EventHandler) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return fmt.Errorf("event bus is closed")
	}
	a.handlers[subject] = append(a.handlers[subject], handlerEntry{fn: handler})
	return nil
}

// Close drops all subscriptions and rejects further publishes.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	a.handlers = make(map[string][]handlerEntry)
	return nil
}
