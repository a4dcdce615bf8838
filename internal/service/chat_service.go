package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/generation"
	"github.com/careergenie/careergenie-api/internal/store"
)

// chatHistoryLimit caps how many prior messages are replayed into the
// coaching prompt.
const chatHistoryLimit = 20

// CoachGenerator is the slice of the content generator the chat service
// depends on.
type CoachGenerator interface {
	CoachReply(ctx context.Context, profile *domain.Profile, history []*domain.ChatMessage) (string, generation.Provenance, error)
}

// ChatService provides the conversational career coach.
type ChatService interface {
	// StartSession creates a new empty coaching conversation.
	StartSession(ctx context.Context, userID uuid.UUID) (*domain.ChatSession, error)

	// SendMessage appends the user's message to a session, generates the
	// coach's reply, stores both, and returns the reply.
	// Returns ErrNotOwned if the session belongs to another user and
	// ErrGenerationUnavailable when every provider failed.
	SendMessage(ctx context.Context, userID, sessionID uuid.UUID, content string) (*domain.ChatMessage, error)

	// History retrieves the messages of a session in chronological order.
	// Returns ErrNotOwned if the session belongs to another user.
	History(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.ChatMessage, error)
}

// ChatServiceImpl implements the ChatService interface
type ChatServiceImpl struct {
	chatStore    store.ChatStore
	profileStore store.ProfileStore
	generator    CoachGenerator
	logger       *slog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	chatStore store.ChatStore,
	profileStore store.ProfileStore,
	generator CoachGenerator,
	logger *slog.Logger,
) ChatService {
	return &ChatServiceImpl{
		chatStore:    chatStore,
		profileStore: profileStore,
		generator:    generator,
		logger:       logger.With("component", "chat_service"),
	}
}

// StartSession creates a new empty coaching conversation.
func (s *ChatServiceImpl) StartSession(ctx context.Context, userID uuid.UUID) (*domain.ChatSession, error) {
	session, err := domain.NewChatSession(userID)
	if err != nil {
		return nil, err
	}

	if err := s.chatStore.CreateSession(ctx, session); err != nil {
		s.logger.Error("failed to save chat session",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to save chat session: %w", err)
	}

	s.logger.Info("chat session created",
		"session_id", session.ID,
		"user_id", userID)

	return session, nil
}

// SendMessage appends the user's message, generates and stores the coach's
// reply.
func (s *ChatServiceImpl) SendMessage(ctx context.Context, userID, sessionID uuid.UUID, content string) (*domain.ChatMessage, error) {
	session, err := s.chatStore.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve chat session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrNotOwned
	}

	userMessage, err := domain.NewChatMessage(sessionID, domain.ChatRoleUser, content)
	if err != nil {
		return nil, err
	}
	if err := s.chatStore.AppendMessage(ctx, userMessage); err != nil {
		s.logger.Error("failed to save chat message",
			"error", err,
			"session_id", sessionID)
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}

	history, err := s.chatStore.ListMessages(ctx, sessionID, chatHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve chat history: %w", err)
	}

	// The profile is optional context for more personal coaching.
	var profile *domain.Profile
	if p, err := s.profileStore.GetByUserID(ctx, userID); err == nil {
		profile = p
	} else if !errors.Is(err, store.ErrProfileNotFound) {
		s.logger.Warn("failed to load profile for chat",
			"error", err,
			"user_id", userID)
	}

	replyText, prov, err := s.generator.CoachReply(ctx, profile, history)
	if err != nil {
		s.logger.Warn("coach reply generation failed",
			"error", err,
			"session_id", sessionID)
		if errors.Is(err, generation.ErrGenerationFailed) {
			return nil, fmt.Errorf("%w: %w", ErrGenerationUnavailable, err)
		}
		return nil, fmt.Errorf("failed to generate reply: %w", err)
	}

	reply, err := domain.NewChatMessage(sessionID, domain.ChatRoleAssistant, replyText)
	if err != nil {
		return nil, err
	}
	reply.Provider = prov.Provider
	reply.Model = prov.Model

	if err := s.chatStore.AppendMessage(ctx, reply); err != nil {
		s.logger.Error("failed to save coach reply",
			"error", err,
			"session_id", sessionID)
		return nil, fmt.Errorf("failed to save coach reply: %w", err)
	}

	s.logger.Info("coach reply generated",
		"session_id", sessionID,
		"provider", prov.Provider)

	return reply, nil
}

// History retrieves the messages of a session, enforcing ownership.
func (s *ChatServiceImpl) History(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.ChatMessage, error) {
	session, err := s.chatStore.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve chat session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrNotOwned
	}

	messages, err := s.chatStore.ListMessages(ctx, sessionID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve chat history: %w", err)
	}
	return messages, nil
}
