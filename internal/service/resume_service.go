package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/store"
)

// AnalysisScheduler queues a resume for background analysis. The task
// package provides the production implementation backed by the task runner.
type AnalysisScheduler interface {
	ScheduleResumeAnalysis(ctx context.Context, resumeID uuid.UUID) error
}

// ResumeService provides resume submission and retrieval. Analysis runs
// asynchronously: Submit returns a pending resume immediately and the
// stored analysis appears once the background task completes.
type ResumeService interface {
	// Submit stores a new resume and schedules its analysis.
	Submit(ctx context.Context, userID uuid.UUID, title, text, targetRole string) (*domain.Resume, error)

	// Get retrieves a resume with any stored analysis.
	// Returns ErrNotOwned if the resume belongs to another user.
	Get(ctx context.Context, userID, resumeID uuid.UUID) (*domain.Resume, error)
}

// ResumeServiceImpl implements the ResumeService interface
type ResumeServiceImpl struct {
	resumeStore store.ResumeStore
	scheduler   AnalysisScheduler
	logger      *slog.Logger
}

// NewResumeService creates a new ResumeService
func NewResumeService(resumeStore store.ResumeStore, scheduler AnalysisScheduler, logger *slog.Logger) ResumeService {
	return &ResumeServiceImpl{
		resumeStore: resumeStore,
		scheduler:   scheduler,
		logger:      logger.With("component", "resume_service"),
	}
}

// Submit stores a new resume and schedules its background analysis.
func (s *ResumeServiceImpl) Submit(ctx context.Context, userID uuid.UUID, title, text, targetRole string) (*domain.Resume, error) {
	resume, err := domain.NewResume(userID, title, text, targetRole)
	if err != nil {
		return nil, err
	}

	if err := s.resumeStore.Create(ctx, resume); err != nil {
		s.logger.Error("failed to save resume",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}

	if err := s.scheduler.ScheduleResumeAnalysis(ctx, resume.ID); err != nil {
		// The resume is stored; mark it failed rather than losing it.
		s.logger.Error("failed to schedule resume analysis",
			"error", err,
			"resume_id", resume.ID)
		if updateErr := s.resumeStore.UpdateStatus(ctx, resume.ID, domain.ResumeStatusFailed); updateErr != nil {
			s.logger.Error("failed to mark resume as failed",
				"error", updateErr,
				"resume_id", resume.ID)
		}
		return nil, fmt.Errorf("failed to schedule resume analysis: %w", err)
	}

	s.logger.Info("resume submitted for analysis",
		"resume_id", resume.ID,
		"user_id", userID)

	return resume, nil
}

// Get retrieves a resume with any stored analysis, enforcing ownership.
func (s *ResumeServiceImpl) Get(ctx context.Context, userID, resumeID uuid.UUID) (*domain.Resume, error) {
	resume, err := s.resumeStore.GetByID(ctx, resumeID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve resume: %w", err)
	}
	if resume.UserID != userID {
		return nil, ErrNotOwned
	}
	return resume, nil
}
