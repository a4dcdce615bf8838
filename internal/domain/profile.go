package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Profile
var (
	ErrEmptyProfileID     = errors.New("profile ID cannot be empty")
	ErrEmptyProfileUserID = errors.New("profile user ID cannot be empty")
	ErrEmptyFullName      = errors.New("full name cannot be empty")
	ErrNegativeExperience = errors.New("experience years cannot be negative")
)

// Profile holds the career details a user maintains about themselves.
// It is the primary input for career recommendations and resume analysis.
type Profile struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	FullName        string    `json:"full_name"`
	Headline        string    `json:"headline"`
	Skills          []string  `json:"skills"`
	ExperienceYears int       `json:"experience_years"`
	Education       string    `json:"education"`
	TargetRole      string    `json:"target_role"`
	Bio             string    `json:"bio"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewProfile creates a new Profile owned by the given user.
// Returns an error if validation fails.
func NewProfile(userID uuid.UUID, fullName string) (*Profile, error) {
	profile := &Profile{
		ID:        uuid.New(),
		UserID:    userID,
		FullName:  fullName,
		Skills:    []string{},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the Profile has valid data.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProfileID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}
	if p.FullName == "" {
		return ErrEmptyFullName
	}
	if p.ExperienceYears < 0 {
		return ErrNegativeExperience
	}
	return nil
}

// Touch updates the UpdatedAt timestamp after a mutation.
func (p *Profile) Touch() {
	p.UpdatedAt = time.Now().UTC()
}
