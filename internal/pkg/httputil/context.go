package httputil

import (
	"context"
	"time"

	"replymate/internal/pkg/constants"
)

// TimeoutConfig holds timeout configurations for different operations
type TimeoutConfig struct {
	Storage time.Duration
	Backend time.Duration
	Health  time.Duration
}

// DefaultTimeouts provides sensible default timeout values
var DefaultTimeouts = TimeoutConfig{
	Storage: constants.StorageTimeout,
	Backend: constants.BackendTimeout,
	Health:  constants.HealthCheckTimeout,
}

// WithTimeout creates a context with the specified timeout duration
func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

// WithStorageTimeout creates a context bounded for local storage operations
func WithStorageTimeout() (context.Context, context.CancelFunc) {
	return WithTimeout(DefaultTimeouts.Storage)
}

// WithBackendTimeout creates a context bounded for remote backend calls
func WithBackendTimeout() (context.Context, context.CancelFunc) {
	return WithTimeout(DefaultTimeouts.Backend)
}

// WithHealthTimeout creates a context bounded for health checks
func WithHealthTimeout() (context.Context, context.CancelFunc) {
	return WithTimeout(DefaultTimeouts.Health)
}
