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

// PostgresRecommendationStore implements the store.RecommendationStore
// interface using a PostgreSQL database. It holds a *sql.DB because
// CreateBatch manages its own transaction.
type PostgresRecommendationStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Compile-time check
var _ store.RecommendationStore = (*PostgresRecommendationStore)(nil)

// NewPostgresRecommendationStore creates a new PostgresRecommendationStore.
func NewPostgresRecommendationStore(db *sql.DB, logger *slog.Logger) *PostgresRecommendationStore {
	return &PostgresRecommendationStore{
		db:     db,
		logger: logger.With(slog.String("component", "recommendation_store")),
	}
}

// CreateBatch saves one generation call's recommendations atomically, so a
// partially stored batch is never visible.
func (s *PostgresRecommendationStore) CreateBatch(ctx context.Context, recommendations []*domain.Recommendation) error {
	if len(recommendations) == 0 {
		return nil
	}
	for _, rec := range recommendations {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		query := `
			INSERT INTO recommendations (id, user_id, title, fit_score,
				reasoning, suggested_skills, provider, model, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

		for _, rec := range recommendations {
			skills, err := json.Marshal(rec.SuggestedSkills)
			if err != nil {
				return fmt.Errorf("failed to marshal suggested skills: %w", err)
			}

			_, err = tx.ExecContext(ctx, query,
				rec.ID, rec.UserID, rec.Title, rec.FitScore, rec.Reasoning,
				skills, rec.Provider, rec.Model, rec.CreatedAt)
			if err != nil {
				return MapError(err)
			}
		}

		return nil
	})
}

// ListByUserID retrieves the user's recommendations, newest first.
func (s *PostgresRecommendationStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Recommendation, error) {
	query := `
		SELECT id, user_id, title, fit_score, reasoning, suggested_skills,
			provider, model, created_at
		FROM recommendations
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	recommendations := []*domain.Recommendation{}
	for rows.Next() {
		var (
			rec    domain.Recommendation
			skills []byte
		)
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.FitScore,
			&rec.Reasoning, &skills, &rec.Provider, &rec.Model, &rec.CreatedAt)
		if err != nil {
			return nil, MapError(err)
		}
		if err := json.Unmarshal(skills, &rec.SuggestedSkills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal suggested skills: %w", err)
		}
		recommendations = append(recommendations, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return recommendations, nil
}
