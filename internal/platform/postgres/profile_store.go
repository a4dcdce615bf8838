package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/store"
)

// PostgresProfileStore implements the store.ProfileStore interface using a
// PostgreSQL database. Skills are stored as a jsonb column.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Compile-time check
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// NewPostgresProfileStore creates a new PostgresProfileStore.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Upsert creates the user's profile or replaces it if one exists. The
// profile row is keyed by user_id, so repeated updates keep the original
// profile ID.
func (s *PostgresProfileStore) Upsert(ctx context.Context, profile *domain.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	skills, err := json.Marshal(profile.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	query := `
		INSERT INTO profiles (id, user_id, full_name, headline, skills,
			experience_years, education, target_role, bio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			headline = EXCLUDED.headline,
			skills = EXCLUDED.skills,
			experience_years = EXCLUDED.experience_years,
			education = EXCLUDED.education,
			target_role = EXCLUDED.target_role,
			bio = EXCLUDED.bio,
			updated_at = EXCLUDED.updated_at`

	_, err = s.db.ExecContext(ctx, query,
		profile.ID, profile.UserID, profile.FullName, profile.Headline, skills,
		profile.ExperienceYears, profile.Education, profile.TargetRole,
		profile.Bio, profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByUserID retrieves the profile owned by the given user.
func (s *PostgresProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT id, user_id, full_name, headline, skills, experience_years,
			education, target_role, bio, created_at, updated_at
		FROM profiles
		WHERE user_id = $1`

	var (
		profile domain.Profile
		skills  []byte
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.FullName, &profile.Headline,
		&skills, &profile.ExperienceYears, &profile.Education,
		&profile.TargetRole, &profile.Bio, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrProfileNotFound
		}
		return nil, mapped
	}

	if err := json.Unmarshal(skills, &profile.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}

	return &profile, nil
}
