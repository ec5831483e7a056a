package services

import (
	"context"
	"time"

	"replymate/internal/domain/entities"
	"replymate/internal/domain/metrics"
	"replymate/internal/domain/ports"
)

// AccountService owns the session lifecycle and the user/personality surface
// of the backend. Sign-in fetches the profile and swaps the conversation
// cache to the new identity; sign-out resets both.
type AccountService struct {
	backend   ports.BackendPort
	store     *ConversationStore
	session   *Session
	bus       ports.EventBusPort
	collector *metrics.Collector
}

// NewAccountService creates an account service. Bus and collector are optional.
func NewAccountService(backend ports.BackendPort, store *ConversationStore, session *Session, bus ports.EventBusPort, collector *metrics.Collector) *AccountService {
	return &AccountService{
		backend:   backend,
		store:     store,
		session:   session,
		bus:       bus,
		collector: collector,
	}
}

// SignIn establishes a session for the given user: the profile is fetched
// from the backend and the conversation cache is reloaded from that user's
// persisted slot. A failed profile fetch leaves the previous session intact.
func (a *AccountService) SignIn(ctx context.Context, userID string) (profile *entities.UserProfile, err error) {
	defer a.record("sign_in", time.Now(), &err)

	profile, err = a.backend.FetchUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err = a.store.Load(ctx, userID); err != nil {
		return nil, err
	}

	a.session.Establish(userID, profile)
	a.announce(ctx, userID)
	return profile, nil
}

// SignOut resets the session and clears the in-memory cache. The persisted
// collection is left in place for the next sign-in.
func (a *AccountService) SignOut(ctx context.Context) (err error) {
	defer a.record("sign_out", time.Now(), &err)

	a.session.Reset()
	if err = a.store.Load(ctx, ""); err != nil {
		return err
	}
	a.announce(ctx, "")
	return nil
}

// Register creates the backend account record for a new user and signs in.
func (a *AccountService) Register(ctx context.Context, name, userID string) (profile *entities.UserProfile, err error) {
	defer a.record("register", time.Now(), &err)

	if err = a.backend.CreateUser(ctx, name, userID); err != nil {
		return nil, err
	}
	return a.SignIn(ctx, userID)
}

// UpdateName changes the account display name and refreshes the cached profile.
func (a *AccountService) UpdateName(ctx context.Context, name string) (err error) {
	defer a.record("update_name", time.Now(), &err)

	userID := a.session.UserID()
	if userID == "" {
		return ErrNoActiveSession
	}
	if err = a.backend.UpdateUserName(ctx, userID, name); err != nil {
		return err
	}
	return a.refreshProfile(ctx, userID)
}

// PersonalityDescription fetches the full description of one personality.
func (a *AccountService) PersonalityDescription(ctx context.Context, name string) (description string, err error) {
	defer a.record("personality_description", time.Now(), &err)

	userID := a.session.UserID()
	if userID == "" {
		return "", ErrNoActiveSession
	}
	return a.backend.FetchPersonalityDescription(ctx, userID, name)
}

// CreatePersonality creates a named personality and refreshes the cached
// profile so the new entry shows up in pickers immediately.
func (a *AccountService) CreatePersonality(ctx context.Context, name, description string) (err error) {
	defer a.record("create_personality", time.Now(), &err)

	userID := a.session.UserID()
	if userID == "" {
		return ErrNoActiveSession
	}
	if err = a.backend.CreatePersonality(ctx, userID, name, description); err != nil {
		return err
	}
	return a.refreshProfile(ctx, userID)
}

// UpdatePersonality rewrites a personality description and refreshes the
// cached profile.
func (a *AccountService) UpdatePersonality(ctx context.Context, name, newDescription string) (err error) {
	defer a.record("update_personality", time.Now(), &err)

	userID := a.session.UserID()
	if userID == "" {
		return ErrNoActiveSession
	}
	if err = a.backend.UpdatePersonalityDescription(ctx, userID, name, newDescription); err != nil {
		return err
	}
	return a.refreshProfile(ctx, userID)
}

// DeletePersonality removes a personality and refreshes the cached profile.
func (a *AccountService) DeletePersonality(ctx context.Context, name string) (err error) {
	defer a.record("delete_personality", time.Now(), &err)

	userID := a.session.UserID()
	if userID == "" {
		return ErrNoActiveSession
	}
	if err = a.backend.DeletePersonality(ctx, userID, name); err != nil {
		return err
	}
	return a.refreshProfile(ctx, userID)
}

func (a *AccountService) refreshProfile(ctx context.Context, userID string) error {
	profile, err := a.backend.FetchUserProfile(ctx, userID)
	if err != nil {
		return err
	}
	a.session.SetProfile(profile)
	return nil
}

type sessionEvent struct {
	UserID string `json:"userId"`
}

func (a *AccountService) announce(ctx context.Context, userID string) {
	if a.bus == nil {
		return
	}
	_ = a.bus.PublishJSON(ctx, ports.SubjectSessionChanged, sessionEvent{UserID: userID})
}

func (a *AccountService) record(op string, start time.Time, err *error) {
	if a.collector == nil {
		return
	}
	a.collector.Record(op, time.Since(start), *err)
}
