package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
)

// ResumeStore defines the interface for resume persistence.
type ResumeStore interface {
	// Create saves a new resume in pending state.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, resume *domain.Resume) error

	// GetByID retrieves a resume by its unique ID, including any stored
	// analysis. Returns ErrResumeNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resume, error)

	// UpdateStatus updates the analysis status of a resume.
	// Returns ErrResumeNotFound if it does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ResumeStatus) error

	// SaveAnalysis stores the analysis result, the provider/model that
	// produced it, and marks the resume completed.
	// Returns ErrResumeNotFound if it does not exist.
	SaveAnalysis(ctx context.Context, id uuid.UUID, analysis *domain.ResumeAnalysis, provider, model string) error
}
