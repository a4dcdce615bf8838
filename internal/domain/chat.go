package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ChatRole identifies the author of a chat message.
type ChatRole string

// Possible chat roles
const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// Common validation errors for chat entities
var (
	ErrEmptyChatSessionID = errors.New("chat session ID cannot be empty")
	ErrEmptyChatMessageID = errors.New("chat message ID cannot be empty")
	ErrEmptyChatContent   = errors.New("chat message content cannot be empty")
	ErrInvalidChatRole    = errors.New("invalid chat role")
)

// ChatSession groups the messages of one coaching conversation.
type ChatSession struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChatSession creates a new ChatSession for the given user.
func NewChatSession(userID uuid.UUID) (*ChatSession, error) {
	if userID == uuid.Nil {
		return nil, ErrEmptyUserID
	}

	return &ChatSession{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ChatMessage is a single turn in a coaching conversation.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Provider  string    `json:"provider,omitempty"` // set on assistant messages
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChatMessage creates a new ChatMessage within the given session.
func NewChatMessage(sessionID uuid.UUID, role ChatRole, content string) (*ChatMessage, error) {
	message := &ChatMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := message.Validate(); err != nil {
		return nil, err
	}

	return message, nil
}

// Validate checks if the ChatMessage has valid data.
func (m *ChatMessage) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyChatMessageID
	}
	if m.SessionID == uuid.Nil {
		return ErrEmptyChatSessionID
	}
	if m.Content == "" {
		return ErrEmptyChatContent
	}
	switch m.Role {
	case ChatRoleUser, ChatRoleAssistant:
	default:
		return ErrInvalidChatRole
	}
	return nil
}
