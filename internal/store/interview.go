package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
)

// InterviewStore defines the interface for interview practice persistence:
// sessions, their questions, and the evaluations of submitted answers.
type InterviewStore interface {
	// CreateSession saves a new interview session together with its
	// questions in a single transaction.
	CreateSession(ctx context.Context, session *domain.InterviewSession, questions []*domain.Question) error

	// GetSession retrieves a session by ID including its questions, in
	// position order. Returns ErrSessionNotFound if it does not exist.
	GetSession(ctx context.Context, id uuid.UUID) (*domain.InterviewSession, []*domain.Question, error)

	// GetQuestion retrieves a single question by ID.
	// Returns ErrQuestionNotFound if it does not exist.
	GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error)

	// CreateEvaluation saves the evaluation of an answer to a question.
	// Returns ErrInvalidEntity if the question does not exist.
	CreateEvaluation(ctx context.Context, evaluation *domain.Evaluation) error

	// ListEvaluationsBySession retrieves all evaluations for questions
	// belonging to the given session.
	ListEvaluationsBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Evaluation, error)
}
