package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a conversation log record.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one record of the locally persisted conversation log.
// ID is a local UUID, not the transport's message identifier: the log
// also holds records that never touched the transport (inline errors,
// stripped assistant text).
type ChatMessage struct {
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
}

// NewChatMessage creates a log record stamped with the current time.
func NewChatMessage(role Role, content string) ChatMessage {
	return ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}
