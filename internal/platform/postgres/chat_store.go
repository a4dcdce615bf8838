package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/store"
)

// PostgresChatStore implements the store.ChatStore interface using a
// PostgreSQL database.
type PostgresChatStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Compile-time check
var _ store.ChatStore = (*PostgresChatStore)(nil)

// NewPostgresChatStore creates a new PostgresChatStore.
func NewPostgresChatStore(db store.DBTX, logger *slog.Logger) *PostgresChatStore {
	return &PostgresChatStore{
		db:     db,
		logger: logger.With(slog.String("component", "chat_store")),
	}
}

// CreateSession saves a new chat session.
func (s *PostgresChatStore) CreateSession(ctx context.Context, session *domain.ChatSession) error {
	query := `
		INSERT INTO chat_sessions (id, user_id, created_at)
		VALUES ($1, $2, $3)`

	_, err := s.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.CreatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetSession retrieves a chat session by ID.
func (s *PostgresChatStore) GetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	query := `
		SELECT id, user_id, created_at
		FROM chat_sessions
		WHERE id = $1`

	var session domain.ChatSession
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.UserID, &session.CreatedAt)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrChatSessionNotFound
		}
		return nil, mapped
	}

	return &session, nil
}

// AppendMessage saves a message to a session.
func (s *PostgresChatStore) AppendMessage(ctx context.Context, message *domain.ChatMessage) error {
	if err := message.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO chat_messages (id, session_id, role, content, provider,
			model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		message.ID, message.SessionID, message.Role, message.Content,
		message.Provider, message.Model, message.CreatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// ListMessages retrieves the most recent messages of a session in
// chronological order. A limit of 0 returns the full history.
func (s *PostgresChatStore) ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]*domain.ChatMessage, error) {
	// Select the newest rows, then flip them back into chronological
	// order. Selecting ASC with LIMIT would drop the newest turns instead
	// of the oldest.
	query := `
		SELECT id, session_id, role, content, provider, model, created_at
		FROM (
			SELECT id, session_id, role, content, provider, model, created_at
			FROM chat_messages
			WHERE session_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC`

	var rowLimit any
	if limit > 0 {
		rowLimit = limit
	}
	// LIMIT NULL means no limit in PostgreSQL.

	rows, err := s.db.QueryContext(ctx, query, sessionID, rowLimit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	messages := []*domain.ChatMessage{}
	for rows.Next() {
		var message domain.ChatMessage
		err := rows.Scan(&message.ID, &message.SessionID, &message.Role,
			&message.Content, &message.Provider, &message.Model,
			&message.CreatedAt)
		if err != nil {
			return nil, MapError(err)
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return messages, nil
}
