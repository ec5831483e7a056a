package constants

import "time"

// Application constants
const (
	// Service identification
	ServiceName    = "replymate"
	ServiceVersion = "v1.0.0"
	APIVersion     = "v1"
)

// Default timeouts
const (
	DefaultHTTPTimeout      = 10 * time.Second
	ShortHTTPTimeout        = 5 * time.Second
	BackendTimeout          = 30 * time.Second
	StorageTimeout          = 10 * time.Second
	HealthCheckTimeout      = 5 * time.Second
	GracefulShutdownTimeout = 30 * time.Second
)

// Storage layout
const (
	// ConversationKeyPrefix namespaces the per-user conversation slot.
	// The full key is ConversationKeyPrefix + userID.
	ConversationKeyPrefix = "conversations_"
)

// HTTP status messages
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Error messages
const (
	ErrMsgConversationNotFound = "conversation not found"
	ErrMsgNoActiveSession      = "no active session"
	ErrMsgInvalidRequest       = "invalid request"
	ErrMsgInternalServer       = "internal server error"
	ErrMsgServiceUnavailable   = "service unavailable"
)

// Log levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// HTTP headers
const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"
)

// Content types
const (
	ContentTypeJSON = "application/json"
)

// WebSocket configuration
const (
	WebSocketWriteWait      = 10 * time.Second
	WebSocketPongWait       = 60 * time.Second
	WebSocketPingPeriod     = (WebSocketPongWait * 9) / 10
	WebSocketMaxMessageSize = 512
)

// File and directory paths
const (
	DefaultDBPath = "./data/replymate.db"
)

// Validation constraints
const (
	MinContextLength         = 1
	MaxContextLength         = 10000
	MinPersonalityNameLength = 1
	MaxPersonalityNameLength = 100
)
