package ports

import (
	"errors"
	"fmt"
)

// Resource identifies what a NotFoundError refers to. The backend reports
// missing resources through sentinel strings in its error body; this is the
// closed enumeration those strings map onto.
type Resource string

const (
	ResourceUser        Resource = "user"
	ResourcePersonality Resource = "personality"
)

// Known sentinel error strings returned by the backend.
const (
	SentinelUserNotFound        = "User not found"
	SentinelPersonalityNotFound = "Personality not found"
)

// ResourceForSentinel maps a backend error string to a Resource. The second
// return is false for anything unrecognized, which callers must treat as a
// generic failure rather than a miss.
func ResourceForSentinel(serverError string) (Resource, bool) {
	switch serverError {
	case SentinelUserNotFound:
		return ResourceUser, true
	case SentinelPersonalityNotFound:
		return ResourcePersonality, true
	default:
		return "", false
	}
}

// PersistenceError reports a failed read or write against local durable
// storage. The triggering mutation is guaranteed not to have been applied.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed for key %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// GenerationError reports a failed thread start or continuation. Transport
// and server failures carry different wrapped causes but surface as one kind.
type GenerationError struct {
	Op      string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("generation %s failed: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("generation %s failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ProfileFetchError reports a failed user or personality request.
type ProfileFetchError struct {
	Op      string
	Message string
	Err     error
}

func (e *ProfileFetchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("profile %s failed: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("profile %s failed: %v", e.Op, e.Err)
}

func (e *ProfileFetchError) Unwrap() error { return e.Err }

// NotFoundError reports that the backend explicitly said the resource does
// not exist, as opposed to a generic failure.
type NotFoundError struct {
	Resource Resource
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
