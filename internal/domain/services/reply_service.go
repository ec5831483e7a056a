package services

import (
	"context"
	"errors"
	"time"

	"replymate/internal/domain/entities"
	"replymate/internal/domain/metrics"
	"replymate/internal/domain/ports"
)

// ErrConversationNotFound is returned when a regenerate or lookup targets a
// thread id that is not in the cache.
var ErrConversationNotFound = errors.New("conversation not found")

// ReplyService drives the generate / regenerate / delete flows: one backend
// call, then one store mutation. No retries; a failed backend call leaves the
// cache untouched and the caller decides whether to try again.
type ReplyService struct {
	backend   ports.BackendPort
	store     *ConversationStore
	session   *Session
	collector *metrics.Collector
}

// NewReplyService creates a reply service. The collector is optional.
func NewReplyService(backend ports.BackendPort, store *ConversationStore, session *Session, collector *metrics.Collector) *ReplyService {
	return &ReplyService{
		backend:   backend,
		store:     store,
		session:   session,
		collector: collector,
	}
}

// GenerateReply starts a new thread for the active user and caches the
// resulting conversation at the head of the collection.
func (r *ReplyService) GenerateReply(ctx context.Context, contextMessage, extraInfo, personalityKey string) (conv entities.Conversation, err error) {
	defer r.record("generate_reply", time.Now(), &err)

	userID := r.session.UserID()
	if userID == "" {
		return entities.Conversation{}, ErrNoActiveSession
	}

	reply, err := r.backend.StartThread(ctx, userID, contextMessage, extraInfo, personalityKey)
	if err != nil {
		return entities.Conversation{}, err
	}

	conversation := entities.NewConversation(reply.ThreadID, reply.AssistantResponse, personalityKey, userID, contextMessage)
	if err := r.store.Add(ctx, conversation); err != nil {
		return entities.Conversation{}, err
	}
	return conversation, nil
}

// RegenerateReply continues an existing thread with a free-form instruction.
// The stored context is the required regeneration input. When the backend
// rotates the thread id the cached entry is replaced in place under its old
// id; otherwise it is updated.
func (r *ReplyService) RegenerateReply(ctx context.Context, threadID, instruction string) (conv entities.Conversation, err error) {
	defer r.record("regenerate_reply", time.Now(), &err)

	userID := r.session.UserID()
	if userID == "" {
		return entities.Conversation{}, ErrNoActiveSession
	}

	existing, ok := r.store.GetByThreadID(threadID)
	if !ok {
		return entities.Conversation{}, ErrConversationNotFound
	}

	reply, err := r.backend.ContinueThread(ctx, userID, instruction, existing.Context, existing.PersonalityName, threadID)
	if err != nil {
		return entities.Conversation{}, err
	}

	updated := existing.WithReply(reply.ThreadID, reply.AssistantResponse)
	if reply.ThreadID == threadID {
		err = r.store.Update(ctx, updated)
	} else {
		err = r.store.Replace(ctx, threadID, updated)
	}
	if err != nil {
		return entities.Conversation{}, err
	}
	return updated, nil
}

// DeleteThread removes a conversation from the cache. Removal is immediate
// and persisted; an absent id is a no-op.
func (r *ReplyService) DeleteThread(ctx context.Context, threadID string) (err error) {
	defer r.record("delete_thread", time.Now(), &err)

	return r.store.Delete(ctx, threadID)
}

func (r *ReplyService) record(op string, start time.Time, err *error) {
	if r.collector == nil {
		return
	}
	r.collector.Record(op, time.Since(start), *err)
}
