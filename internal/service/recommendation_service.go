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

// DefaultRecommendationCount is how many career paths one generation
// request asks for.
const DefaultRecommendationCount = 3

// RecommendationGenerator is the slice of the content generator the
// recommendation service depends on.
type RecommendationGenerator interface {
	Recommendations(ctx context.Context, profile *domain.Profile, count int) ([]generation.RecommendationDraft, generation.Provenance, error)
}

// RecommendationService provides AI career recommendations derived from the
// user's stored profile.
type RecommendationService interface {
	// Generate produces and stores a fresh batch of recommendations.
	// Returns store.ErrProfileNotFound when the user has no profile to
	// derive them from, and ErrGenerationUnavailable when every provider
	// failed.
	Generate(ctx context.Context, userID uuid.UUID) ([]*domain.Recommendation, error)

	// List retrieves the user's stored recommendations, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Recommendation, error)
}

// RecommendationServiceImpl implements the RecommendationService interface
type RecommendationServiceImpl struct {
	recommendationStore store.RecommendationStore
	profileStore        store.ProfileStore
	generator           RecommendationGenerator
	logger              *slog.Logger
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(
	recommendationStore store.RecommendationStore,
	profileStore store.ProfileStore,
	generator RecommendationGenerator,
	logger *slog.Logger,
) RecommendationService {
	return &RecommendationServiceImpl{
		recommendationStore: recommendationStore,
		profileStore:        profileStore,
		generator:           generator,
		logger:              logger.With("component", "recommendation_service"),
	}
}

// Generate produces and stores a fresh batch of recommendations.
func (s *RecommendationServiceImpl) Generate(ctx context.Context, userID uuid.UUID) ([]*domain.Recommendation, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrProfileNotFound) {
			s.logger.Error("failed to retrieve profile for recommendations",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve profile: %w", err)
	}

	drafts, prov, err := s.generator.Recommendations(ctx, profile, DefaultRecommendationCount)
	if err != nil {
		s.logger.Warn("recommendation generation failed",
			"error", err,
			"user_id", userID)
		if errors.Is(err, generation.ErrGenerationFailed) {
			return nil, fmt.Errorf("%w: %w", ErrGenerationUnavailable, err)
		}
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}

	recommendations := make([]*domain.Recommendation, 0, len(drafts))
	for _, draft := range drafts {
		rec, err := domain.NewRecommendation(userID, draft.Title, draft.FitScore, draft.Reasoning, draft.SuggestedSkills)
		if err != nil {
			return nil, fmt.Errorf("failed to build recommendation: %w", err)
		}
		rec.Provider = prov.Provider
		rec.Model = prov.Model
		recommendations = append(recommendations, rec)
	}

	if err := s.recommendationStore.CreateBatch(ctx, recommendations); err != nil {
		s.logger.Error("failed to save recommendations",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to save recommendations: %w", err)
	}

	s.logger.Info("recommendations generated",
		"user_id", userID,
		"count", len(recommendations),
		"provider", prov.Provider)

	return recommendations, nil
}

// List retrieves the user's stored recommendations, newest first.
func (s *RecommendationServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]*domain.Recommendation, error) {
	recommendations, err := s.recommendationStore.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list recommendations",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recommendations, nil
}
