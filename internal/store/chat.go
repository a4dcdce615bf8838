package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
)

// ChatStore defines the interface for chat assistant persistence.
type ChatStore interface {
	// CreateSession saves a new chat session.
	CreateSession(ctx context.Context, session *domain.ChatSession) error

	// GetSession retrieves a chat session by ID.
	// Returns ErrChatSessionNotFound if it does not exist.
	GetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error)

	// AppendMessage saves a message to a session.
	// Returns ErrInvalidEntity if the session does not exist.
	AppendMessage(ctx context.Context, message *domain.ChatMessage) error

	// ListMessages retrieves the messages of a session in chronological
	// order, capped at limit (0 means no cap).
	ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]*domain.ChatMessage, error)
}
