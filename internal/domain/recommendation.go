package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Recommendation
var (
	ErrEmptyRecommendationID    = errors.New("recommendation ID cannot be empty")
	ErrEmptyRecommendationTitle = errors.New("recommendation title cannot be empty")
	ErrFitScoreOutOfRange       = errors.New("fit score must be between 0 and 100")
)

// Recommendation is a single AI-generated career suggestion for a user,
// derived from their stored profile.
type Recommendation struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Title           string    `json:"title"`
	FitScore        int       `json:"fit_score"` // 0-100
	Reasoning       string    `json:"reasoning"`
	SuggestedSkills []string  `json:"suggested_skills"`
	Provider        string    `json:"provider,omitempty"`
	Model           string    `json:"model,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewRecommendation creates a new Recommendation for the given user.
func NewRecommendation(userID uuid.UUID, title string, fitScore int, reasoning string, suggestedSkills []string) (*Recommendation, error) {
	rec := &Recommendation{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           title,
		FitScore:        fitScore,
		Reasoning:       reasoning,
		SuggestedSkills: suggestedSkills,
		CreatedAt:       time.Now().UTC(),
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Validate checks if the Recommendation has valid data.
func (r *Recommendation) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyRecommendationID
	}
	if r.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}
	if r.Title == "" {
		return ErrEmptyRecommendationTitle
	}
	if r.FitScore < 0 || r.FitScore > 100 {
		return ErrFitScoreOutOfRange
	}
	return nil
}
