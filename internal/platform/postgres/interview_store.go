package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/store"
)

// PostgresInterviewStore implements the store.InterviewStore interface
// using a PostgreSQL database. It holds a *sql.DB rather than a DBTX
// because CreateSession spans multiple statements and manages its own
// transaction.
type PostgresInterviewStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Compile-time check
var _ store.InterviewStore = (*PostgresInterviewStore)(nil)

// NewPostgresInterviewStore creates a new PostgresInterviewStore.
func NewPostgresInterviewStore(db *sql.DB, logger *slog.Logger) *PostgresInterviewStore {
	return &PostgresInterviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "interview_store")),
	}
}

// CreateSession saves the session and its questions atomically. A partial
// session with some questions missing is never visible to readers.
func (s *PostgresInterviewStore) CreateSession(ctx context.Context, session *domain.InterviewSession, questions []*domain.Question) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	for _, question := range questions {
		if err := question.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		sessionQuery := `
			INSERT INTO interview_sessions (id, user_id, role, difficulty,
				provider, model, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`

		_, err := tx.ExecContext(ctx, sessionQuery,
			session.ID, session.UserID, session.Role, session.Difficulty,
			session.Provider, session.Model, session.CreatedAt)
		if err != nil {
			return MapError(err)
		}

		questionQuery := `
			INSERT INTO questions (id, session_id, position, text, category,
				source, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`

		for _, question := range questions {
			_, err := tx.ExecContext(ctx, questionQuery,
				question.ID, question.SessionID, question.Position,
				question.Text, question.Category, question.Source,
				question.CreatedAt)
			if err != nil {
				return MapError(err)
			}
		}

		return nil
	})
}

// GetSession retrieves a session by ID together with its questions in
// position order.
func (s *PostgresInterviewStore) GetSession(ctx context.Context, id uuid.UUID) (*domain.InterviewSession, []*domain.Question, error) {
	sessionQuery := `
		SELECT id, user_id, role, difficulty, provider, model, created_at
		FROM interview_sessions
		WHERE id = $1`

	var session domain.InterviewSession
	err := s.db.QueryRowContext(ctx, sessionQuery, id).Scan(
		&session.ID, &session.UserID, &session.Role, &session.Difficulty,
		&session.Provider, &session.Model, &session.CreatedAt)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, nil, store.ErrSessionNotFound
		}
		return nil, nil, mapped
	}

	questionQuery := `
		SELECT id, session_id, position, text, category, source, created_at
		FROM questions
		WHERE session_id = $1
		ORDER BY position ASC`

	rows, err := s.db.QueryContext(ctx, questionQuery, id)
	if err != nil {
		return nil, nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var questions []*domain.Question
	for rows.Next() {
		var question domain.Question
		err := rows.Scan(&question.ID, &question.SessionID, &question.Position,
			&question.Text, &question.Category, &question.Source,
			&question.CreatedAt)
		if err != nil {
			return nil, nil, MapError(err)
		}
		questions = append(questions, &question)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, MapError(err)
	}

	return &session, questions, nil
}

// GetQuestion retrieves a single question by ID.
func (s *PostgresInterviewStore) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	query := `
		SELECT id, session_id, position, text, category, source, created_at
		FROM questions
		WHERE id = $1`

	var question domain.Question
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&question.ID, &question.SessionID, &question.Position, &question.Text,
		&question.Category, &question.Source, &question.CreatedAt)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrQuestionNotFound
		}
		return nil, mapped
	}

	return &question, nil
}

// CreateEvaluation saves the evaluation of an answer. Strengths and
// improvements are stored as jsonb.
func (s *PostgresInterviewStore) CreateEvaluation(ctx context.Context, evaluation *domain.Evaluation) error {
	if err := evaluation.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	strengths, err := json.Marshal(evaluation.Strengths)
	if err != nil {
		return fmt.Errorf("failed to marshal strengths: %w", err)
	}
	improvements, err := json.Marshal(evaluation.Improvements)
	if err != nil {
		return fmt.Errorf("failed to marshal improvements: %w", err)
	}

	query := `
		INSERT INTO evaluations (id, question_id, answer, score, strengths,
			improvements, provider, model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.db.ExecContext(ctx, query,
		evaluation.ID, evaluation.QuestionID, evaluation.Answer,
		evaluation.Score, strengths, improvements, evaluation.Provider,
		evaluation.Model, evaluation.CreatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// ListEvaluationsBySession retrieves all evaluations for questions in the
// given session, oldest first.
func (s *PostgresInterviewStore) ListEvaluationsBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Evaluation, error) {
	query := `
		SELECT e.id, e.question_id, e.answer, e.score, e.strengths,
			e.improvements, e.provider, e.model, e.created_at
		FROM evaluations e
		JOIN questions q ON q.id = e.question_id
		WHERE q.session_id = $1
		ORDER BY e.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var evaluations []*domain.Evaluation
	for rows.Next() {
		var (
			evaluation   domain.Evaluation
			strengths    []byte
			improvements []byte
		)
		err := rows.Scan(&evaluation.ID, &evaluation.QuestionID,
			&evaluation.Answer, &evaluation.Score, &strengths, &improvements,
			&evaluation.Provider, &evaluation.Model, &evaluation.CreatedAt)
		if err != nil {
			return nil, MapError(err)
		}
		if err := json.Unmarshal(strengths, &evaluation.Strengths); err != nil {
			return nil, fmt.Errorf("failed to unmarshal strengths: %w", err)
		}
		if err := json.Unmarshal(improvements, &evaluation.Improvements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal improvements: %w", err)
		}
		evaluations = append(evaluations, &evaluation)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return evaluations, nil
}
