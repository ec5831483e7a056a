package services

import (
	"context"
	"errors"
	"testing"

	"replymate/internal/domain/entities"
	"replymate/internal/domain/ports"
)

func accountFixture(backend *fakeBackend, storage *fakeStorage) (*AccountService, *ConversationStore, *Session) {
	store := NewConversationStore(storage, nil)
	session := NewSession()
	return NewAccountService(backend, store, session, nil, nil), store, session
}

func TestAccountService_SignInLoadsProfileAndCache(t *testing.T) {
	storage := newFakeStorage()

	// Seed userA's slot through a separate store instance, the way a
	// previous run of the app would have.
	seed := loadedStore(t, storage, "userA")
	if err := seed.Add(context.Background(), testConversation("tA", "userA")); err != nil {
		t.Fatalf("seed Add() error = %v", err)
	}

	backend := &fakeBackend{
		profile: &entities.UserProfile{
			Name: "Alice",
			Personalities: map[string]entities.Personality{
				"Professional": {Personality: "formal and concise"},
			},
		},
	}
	accounts, store, session := accountFixture(backend, storage)

	profile, err := accounts.SignIn(context.Background(), "userA")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if profile.Name != "Alice" {
		t.Errorf("Profile name = %q, want Alice", profile.Name)
	}
	if !session.Active() || session.UserID() != "userA" {
		t.Errorf("Session not established: active=%v user=%q", session.Active(), session.UserID())
	}
	if _, ok := store.GetByThreadID("tA"); !ok {
		t.Error("Sign-in must load the user's persisted conversations")
	}
}

func TestAccountService_SignInProfileFailureKeepsSession(t *testing.T) {
	backend := &fakeBackend{
		profile: &entities.UserProfile{Name: "Alice"},
	}
	accounts, store, session := accountFixture(backend, newFakeStorage())
	if _, err := accounts.SignIn(context.Background(), "userA"); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	backend.profileErr = &ports.NotFoundError{Resource: ports.ResourceUser}
	_, err := accounts.SignIn(context.Background(), "userB")
	if !ports.IsNotFound(err) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
	if session.UserID() != "userA" {
		t.Errorf("Failed sign-in must keep the previous session, got user %q", session.UserID())
	}
	if store.UserID() != "userA" {
		t.Errorf("Failed sign-in must keep the previous cache, got user %q", store.UserID())
	}
}

func TestAccountService_SignOutClearsSessionAndCache(t *testing.T) {
	backend := &fakeBackend{profile: &entities.UserProfile{Name: "Alice"}}
	storage := newFakeStorage()
	accounts, store, session := accountFixture(backend, storage)
	if _, err := accounts.SignIn(context.Background(), "userA"); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if err := store.Add(context.Background(), testConversation("tA", "userA")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := accounts.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if session.Active() {
		t.Error("Session must be inactive after sign-out")
	}
	if store.Len() != 0 {
		t.Errorf("Cache must be empty after sign-out, got %d entries", store.Len())
	}

	// The persisted slot survives for the next sign-in.
	if got := persistedFor(t, storage, "userA"); len(got) != 1 {
		t.Errorf("Sign-out must not erase the persisted collection, got %v", got)
	}
}

func TestAccountService_RegisterCreatesAndSignsIn(t *testing.T) {
	backend := &fakeBackend{profile: &entities.UserProfile{Name: "Bob"}}
	accounts, _, session := accountFixture(backend, newFakeStorage())

	profile, err := accounts.Register(context.Background(), "Bob", "userB")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if backend.createCalls != 1 {
		t.Errorf("Expected one CreateUser call, got %d", backend.createCalls)
	}
	if profile.Name != "Bob" || session.UserID() != "userB" {
		t.Errorf("Register did not establish the session: profile=%+v user=%q", profile, session.UserID())
	}
}

func TestAccountService_PersonalityMutationsRefreshProfile(t *testing.T) {
	backend := &fakeBackend{profile: &entities.UserProfile{Name: "Alice"}}
	accounts, _, session := accountFixture(backend, newFakeStorage())
	if _, err := accounts.SignIn(context.Background(), "userA"); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	fetchesAfterSignIn := backend.profileCalls

	if err := accounts.CreatePersonality(context.Background(), "Witty", "jokes allowed"); err != nil {
		t.Fatalf("CreatePersonality() error = %v", err)
	}
	if err := accounts.UpdatePersonality(context.Background(), "Witty", "more jokes"); err != nil {
		t.Fatalf("UpdatePersonality() error = %v", err)
	}
	if err := accounts.DeletePersonality(context.Background(), "Witty"); err != nil {
		t.Fatalf("DeletePersonality() error = %v", err)
	}

	if got := backend.profileCalls - fetchesAfterSignIn; got != 3 {
		t.Errorf("Each mutation must refresh the profile, got %d refreshes", got)
	}
	if session.Profile() == nil {
		t.Error("Session profile must stay populated after refresh")
	}
}

func TestAccountService_MutationsRequireSession(t *testing.T) {
	backend := &fakeBackend{}
	accounts, _, _ := accountFixture(backend, newFakeStorage())

	calls := []struct {
		name string
		call func() error
	}{
		{"update_name", func() error { return accounts.UpdateName(context.Background(), "X") }},
		{"create_personality", func() error { return accounts.CreatePersonality(context.Background(), "P", "d") }},
		{"update_personality", func() error { return accounts.UpdatePersonality(context.Background(), "P", "d") }},
		{"delete_personality", func() error { return accounts.DeletePersonality(context.Background(), "P") }},
		{"personality_description", func() error {
			_, err := accounts.PersonalityDescription(context.Background(), "P")
			return err
		}},
	}
	for _, c := range calls {
		t.Run(c.name, func(t *testing.T) {
			if err := c.call(); !errors.Is(err, ErrNoActiveSession) {
				t.Errorf("Expected ErrNoActiveSession, got %v", err)
			}
		})
	}
}
