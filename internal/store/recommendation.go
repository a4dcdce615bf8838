package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
)

// RecommendationStore defines the interface for career recommendation
// persistence.
type RecommendationStore interface {
	// CreateBatch saves a set of recommendations produced by one
	// generation call in a single transaction.
	CreateBatch(ctx context.Context, recommendations []*domain.Recommendation) error

	// ListByUserID retrieves the user's recommendations, newest first.
	// Returns an empty slice when the user has none.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Recommendation, error)
}
