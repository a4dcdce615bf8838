package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
)

// ProfileStore defines the interface for career profile persistence.
// There is at most one profile per user.
type ProfileStore interface {
	// Upsert creates the user's profile or replaces it if one exists.
	// Returns ErrInvalidEntity if the owning user does not exist.
	// Returns validation errors from the domain Profile if data is invalid.
	Upsert(ctx context.Context, profile *domain.Profile) error

	// GetByUserID retrieves the profile owned by the given user.
	// Returns ErrProfileNotFound if the user has no profile yet.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}
