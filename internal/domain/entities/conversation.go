package entities

import (
	"time"
)

// Conversation is the locally cached record of one reply thread: the latest
// assistant output plus everything needed to regenerate it.
type Conversation struct {
	ThreadID        string `json:"threadId"`
	LastMessage     string `json:"lastMessage"`
	Timestamp       int64  `json:"timestamp"`
	PersonalityName string `json:"personalityName"`
	UserID          string `json:"userId"`
	Context         string `json:"context"`
}

// NewConversation creates a conversation record for a freshly started thread.
// The thread identifier comes from the backend; it is never minted locally.
func NewConversation(threadID, lastMessage, personalityName, userID, contextMessage string) Conversation {
	return Conversation{
		ThreadID:        threadID,
		LastMessage:     lastMessage,
		Timestamp:       time.Now().UnixMilli(),
		PersonalityName: personalityName,
		UserID:          userID,
		Context:         contextMessage,
	}
}

// WithReply returns a copy carrying a regenerated reply. The backend may hand
// back a rotated thread identifier for the same logical thread.
func (c Conversation) WithReply(threadID, lastMessage string) Conversation {
	updated := c
	updated.ThreadID = threadID
	updated.LastMessage = lastMessage
	updated.Timestamp = time.Now().UnixMilli()
	return updated
}

// BelongsTo reports whether the conversation is owned by the given user.
func (c Conversation) BelongsTo(userID string) bool {
	return c.UserID == userID
}
