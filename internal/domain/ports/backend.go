package ports

import (
	"context"

	"replymate/internal/domain/entities"
)

// ThreadReply is the backend's answer to a thread start or continuation. The
// thread identifier on a continuation may differ from the one sent; callers
// must adopt the returned value.
type ThreadReply struct {
	AssistantResponse string `json:"assistantResponse"`
	ThreadID          string `json:"threadId"`
}

// BackendPort defines the interface to the remote generation service. It is a
// pure request/response mapper: no retries, no caching, resilience is the
// caller's concern.
type BackendPort interface {
	// User account operations
	CreateUser(ctx context.Context, name, userID string) error
	FetchUserProfile(ctx context.Context, userID string) (*entities.UserProfile, error)
	UpdateUserName(ctx context.Context, userID, name string) error

	// Thread generation operations
	StartThread(ctx context.Context, userID, contextMessage, extraInfo, personalityKey string) (*ThreadReply, error)
	ContinueThread(ctx context.Context, userID, instruction, contextMessage, personalityKey, threadID string) (*ThreadReply, error)

	// Personality operations
	FetchPersonalityDescription(ctx context.Context, userID, name string) (string, error)
	UpdatePersonalityDescription(ctx context.Context, userID, name, newDescription string) error
	CreatePersonality(ctx context.Context, userID, name, description string) error
	DeletePersonality(ctx context.Context, userID, name string) error

	// Health check
	Ping(ctx context.Context) error
}
