package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/store"
)

// ProfileUpdate carries the caller-editable fields of a career profile.
type ProfileUpdate struct {
	FullName        string
	Headline        string
	Skills          []string
	ExperienceYears int
	Education       string
	TargetRole      string
	Bio             string
}

// ProfileService provides career profile operations. Each user has at most
// one profile; updating a missing profile creates it.
type ProfileService interface {
	// Get retrieves the user's profile.
	// Returns store.ErrProfileNotFound when none exists yet.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// Update creates or replaces the user's profile with the given fields.
	Update(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.Profile, error)
}

// ProfileServiceImpl implements the ProfileService interface
type ProfileServiceImpl struct {
	profileStore store.ProfileStore
	logger       *slog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileStore store.ProfileStore, logger *slog.Logger) ProfileService {
	return &ProfileServiceImpl{
		profileStore: profileStore,
		logger:       logger.With("component", "profile_service"),
	}
}

// Get retrieves the user's profile.
func (s *ProfileServiceImpl) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrProfileNotFound) {
			s.logger.Error("failed to retrieve profile",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve profile: %w", err)
	}
	return profile, nil
}

// Update creates or replaces the user's profile. The profile keeps its
// identity and creation time across updates.
func (s *ProfileServiceImpl) Update(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrProfileNotFound) {
			s.logger.Error("failed to retrieve profile for update",
				"error", err,
				"user_id", userID)
			return nil, fmt.Errorf("failed to retrieve profile: %w", err)
		}
		profile, err = domain.NewProfile(userID, update.FullName)
		if err != nil {
			return nil, err
		}
	}

	profile.FullName = update.FullName
	profile.Headline = update.Headline
	profile.Skills = update.Skills
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	profile.ExperienceYears = update.ExperienceYears
	profile.Education = update.Education
	profile.TargetRole = update.TargetRole
	profile.Bio = update.Bio
	profile.Touch()

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	if err := s.profileStore.Upsert(ctx, profile); err != nil {
		s.logger.Error("failed to save profile",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info("profile updated",
		"user_id", userID,
		"profile_id", profile.ID)

	return profile, nil
}
