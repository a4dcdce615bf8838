package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/store"
)

// PostgresResumeStore implements the store.ResumeStore interface using a
// PostgreSQL database. The analysis result is stored as a nullable jsonb
// column that stays NULL until analysis completes.
type PostgresResumeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Compile-time check
var _ store.ResumeStore = (*PostgresResumeStore)(nil)

// NewPostgresResumeStore creates a new PostgresResumeStore.
func NewPostgresResumeStore(db store.DBTX, logger *slog.Logger) *PostgresResumeStore {
	return &PostgresResumeStore{
		db:     db,
		logger: logger.With(slog.String("component", "resume_store")),
	}
}

// Create saves a new resume in pending state.
func (s *PostgresResumeStore) Create(ctx context.Context, resume *domain.Resume) error {
	if err := resume.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO resumes (id, user_id, title, text, target_role, status,
			provider, model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(ctx, query,
		resume.ID, resume.UserID, resume.Title, resume.Text,
		resume.TargetRole, resume.Status, resume.Provider, resume.Model,
		resume.CreatedAt, resume.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByID retrieves a resume by its unique ID, including any stored
// analysis.
func (s *PostgresResumeStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resume, error) {
	query := `
		SELECT id, user_id, title, text, target_role, status, analysis,
			provider, model, created_at, updated_at
		FROM resumes
		WHERE id = $1`

	var (
		resume   domain.Resume
		analysis []byte
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&resume.ID, &resume.UserID, &resume.Title, &resume.Text,
		&resume.TargetRole, &resume.Status, &analysis, &resume.Provider,
		&resume.Model, &resume.CreatedAt, &resume.UpdatedAt)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrResumeNotFound
		}
		return nil, mapped
	}

	if len(analysis) > 0 {
		resume.Analysis = &domain.ResumeAnalysis{}
		if err := json.Unmarshal(analysis, resume.Analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
		}
	}

	return &resume, nil
}

// UpdateStatus updates the analysis status of a resume.
func (s *PostgresResumeStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ResumeStatus) error {
	query := `
		UPDATE resumes
		SET status = $1, updated_at = $2
		WHERE id = $3`

	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrResumeNotFound
	}

	return nil
}

// SaveAnalysis stores the analysis result and marks the resume completed.
func (s *PostgresResumeStore) SaveAnalysis(ctx context.Context, id uuid.UUID, analysis *domain.ResumeAnalysis, provider, model string) error {
	encoded, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	query := `
		UPDATE resumes
		SET analysis = $1, provider = $2, model = $3, status = $4,
			updated_at = $5
		WHERE id = $6`

	result, err := s.db.ExecContext(ctx, query,
		encoded, provider, model, domain.ResumeStatusCompleted,
		time.Now().UTC(), id)
	if err != nil {
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrResumeNotFound
	}

	return nil
}
