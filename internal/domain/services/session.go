package services

import (
	"sync"

	"replymate/internal/domain/entities"
)

// Session holds the active user identity and the cached profile fetched at
// sign-in. It is passed by handle into the services that need identity; there
// is no ambient global state.
type Session struct {
	mu      sync.RWMutex
	userID  string
	profile *entities.UserProfile
}

// NewSession creates an empty, signed-out session.
func NewSession() *Session {
	return &Session{}
}

// Establish records a signed-in identity and its fetched profile.
func (s *Session) Establish(userID string, profile *entities.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.profile = profile
}

// Reset clears the session on sign-out.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.profile = nil
}

// UserID returns the active user identifier, or "" when signed out.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Active reports whether a user is signed in.
func (s *Session) Active() bool {
	return s.UserID() != ""
}

// Profile returns the cached user profile, or nil when signed out.
func (s *Session) Profile() *entities.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// SetProfile replaces the cached profile after a refresh.
func (s *Session) SetProfile(profile *entities.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
}
