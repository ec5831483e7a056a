package ports

import (
	"context"
)

// EventHandler defines a function type for handling published events
type EventHandler func(ctx context.Context, subject string, data []byte) error

// EventBusPort defines the interface for in-process event fan-out. Store
// mutations are published here so connected UIs can refresh their snapshots.
type EventBusPort interface {
	// Publish sends raw data to the specified subject
	Publish(ctx context.Context, subject string, data []byte) error

	// PublishJSON publishes a JSON-serializable object to the subject
	PublishJSON(ctx context.Context, subject string, obj interface{}) error

	// Subscribe registers a handler for a subject; "*" receives everything
	Subscribe(ctx context.Context, subject string, handler EventHandler) error

	// Close stops delivery and releases subscriptions
	Close() error
}

// Standard subjects used across the system
const (
	SubjectConversationAdded   = "conversation.added"
	SubjectConversationUpdated = "conversation.updated"
	SubjectConversationDeleted = "conversation.deleted"
	SubjectStoreLoaded         = "store.loaded"
	SubjectSessionChanged      = "session.changed"
)
