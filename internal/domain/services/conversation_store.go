package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"replymate/internal/domain/entities"
	"replymate/internal/domain/ports"
	"replymate/internal/pkg/constants"
)

// ErrNoActiveSession is returned by mutations attempted without a loaded user.
var ErrNoActiveSession = errors.New("no active user session")

// ErrWrongOwner is returned when a conversation's owner does not match the
// user the store is currently loaded for.
var ErrWrongOwner = errors.New("conversation does not belong to the active user")

// ConversationStore maintains the authoritative client-side view of one
// user's conversation threads. The in-memory collection and its persisted
// representation are kept equal after every successful mutation: the full
// collection is written to the user's storage slot first, and memory is
// updated only once that write succeeds.
type ConversationStore struct {
	storage ports.StoragePort
	bus     ports.EventBusPort

	mu            sync.RWMutex
	userID        string
	conversations []entities.Conversation
}

// NewConversationStore creates a store over the given storage slot. The event
// bus is optional; when present, successful mutations are announced on it.
func NewConversationStore(storage ports.StoragePort, bus ports.EventBusPort) *ConversationStore {
	return &ConversationStore{
		storage: storage,
		bus:     bus,
	}
}

// storageKey returns the per-user slot key. Callers outside the store must
// treat it as opaque.
func storageKey(userID string) string {
	return constants.ConversationKeyPrefix + userID
}

// Load replaces the in-memory collection with the persisted collection for
// the given user. An empty userID clears the store without touching storage.
// Load is idempotent: repeated calls re-read storage and yield the same
// result unless storage changed externally.
func (s *ConversationStore) Load(ctx context.Context, userID string) error {
	if userID == "" {
		s.mu.Lock()
		s.userID = ""
		s.conversations = nil
		s.mu.Unlock()
		s.publish(ctx, ports.SubjectStoreLoaded, storeEvent{UserID: "", Count: 0})
		return nil
	}

	key := storageKey(userID)
	data, found, err := s.storage.Get(ctx, key)
	if err != nil {
		return &ports.PersistenceError{Op: "read", Key: key, Err: err}
	}

	var conversations []entities.Conversation
	if found {
		if err := json.Unmarshal(data, &conversations); err != nil {
			return &ports.PersistenceError{Op: "decode", Key: key, Err: err}
		}
	}

	s.mu.Lock()
	s.userID = userID
	s.conversations = conversations
	count := len(conversations)
	s.mu.Unlock()

	s.publish(ctx, ports.SubjectStoreLoaded, storeEvent{UserID: userID, Count: count})
	return nil
}

// Add inserts a conversation at the head of the collection (most recent
// first). The updated collection is persisted before memory is touched; on a
// failed persist the caller sees a PersistenceError and no state change.
func (s *ConversationStore) Add(ctx context.Context, conversation entities.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return ErrNoActiveSession
	}
	if !conversation.BelongsTo(s.userID) {
		return ErrWrongOwner
	}

	updated := make([]entities.Conversation, 0, len(s.conversations)+1)
	updated = append(updated, conversation)
	updated = append(updated, s.conversations...)

	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	s.conversations = updated

	s.publish(ctx, ports.SubjectConversationAdded, conversationEvent{UserID: s.userID, ThreadID: conversation.ThreadID})
	return nil
}

// GetByThreadID is a pure lookup over the in-memory collection. It never
// touches storage.
func (s *ConversationStore) GetByThreadID(threadID string) (entities.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conversation := range s.conversations {
		if conversation.ThreadID == threadID {
			return conversation, true
		}
	}
	return entities.Conversation{}, false
}

// List returns a snapshot copy of the collection in most-recent-first order.
func (s *ConversationStore) List() []entities.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]entities.Conversation, len(s.conversations))
	copy(snapshot, s.conversations)
	return snapshot
}

// Len returns the number of cached conversations.
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

// UserID returns the identity the store is currently loaded for.
func (s *ConversationStore) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Update replaces the entry whose thread id matches the given conversation.
// A miss is a silent no-op that still succeeds and still rewrites the slot,
// matching the persisted-equals-memory invariant.
func (s *ConversationStore) Update(ctx context.Context, conversation entities.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return ErrNoActiveSession
	}

	updated := make([]entities.Conversation, len(s.conversations))
	matched := false
	for i, existing := range s.conversations {
		if existing.ThreadID == conversation.ThreadID {
			updated[i] = conversation
			matched = true
		} else {
			updated[i] = existing
		}
	}

	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	s.conversations = updated

	if matched {
		s.publish(ctx, ports.SubjectConversationUpdated, conversationEvent{UserID: s.userID, ThreadID: conversation.ThreadID})
	}
	return nil
}

// Replace swaps the entry stored under oldThreadID for the given conversation
// while preserving its position. Regeneration goes through here when the
// backend rotates the thread identifier; Update alone would miss the entry
// under its new id. A miss is the same silent no-op as Update.
func (s *ConversationStore) Replace(ctx context.Context, oldThreadID string, conversation entities.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return ErrNoActiveSession
	}

	updated := make([]entities.Conversation, len(s.conversations))
	matched := false
	for i, existing := range s.conversations {
		if existing.ThreadID == oldThreadID {
			updated[i] = conversation
			matched = true
		} else {
			updated[i] = existing
		}
	}

	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	s.conversations = updated

	if matched {
		s.publish(ctx, ports.SubjectConversationUpdated, conversationEvent{UserID: s.userID, ThreadID: conversation.ThreadID})
	}
	return nil
}

// Delete removes the entry with the given thread id, preserving the relative
// order of the remainder. Deleting an absent id succeeds as a no-op.
func (s *ConversationStore) Delete(ctx context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return ErrNoActiveSession
	}

	updated := make([]entities.Conversation, 0, len(s.conversations))
	removed := false
	for _, existing := range s.conversations {
		if existing.ThreadID == threadID {
			removed = true
			continue
		}
		updated = append(updated, existing)
	}

	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	s.conversations = updated

	if removed {
		s.publish(ctx, ports.SubjectConversationDeleted, conversationEvent{UserID: s.userID, ThreadID: threadID})
	}
	return nil
}

// persist writes the whole collection to the active user's slot. Callers hold
// the write lock and must only mutate memory after persist returns nil.
func (s *ConversationStore) persist(ctx context.Context, conversations []entities.Conversation) error {
	key := storageKey(s.userID)

	data, err := json.Marshal(conversations)
	if err != nil {
		return &ports.PersistenceError{Op: "encode", Key: key, Err: err}
	}
	if err := s.storage.Set(ctx, key, data); err != nil {
		return &ports.PersistenceError{Op: "write", Key: key, Err: err}
	}
	return nil
}

type conversationEvent struct {
	UserID   string `json:"userId"`
	ThreadID string `json:"threadId"`
}

type storeEvent struct {
	UserID string `json:"userId"`
	Count  int    `json:"count"`
}

// publish announces a completed mutation. Event delivery is best-effort and
// never fails the mutation that triggered it.
func (s *ConversationStore) publish(ctx context.Context, subject string, event interface{}) {
	if s.bus == nil {
		return
	}
	_ = s.bus.PublishJSON(ctx, subject, event)
}
