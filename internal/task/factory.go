package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/store"
)

// Submitter queues a task for background execution. The Runner is the
// production implementation.
type Submitter interface {
	Submit(ctx context.Context, task Task) error
}

// Factory builds executable tasks, both for new submissions and for
// rehydrating persisted task rows during recovery.
type Factory struct {
	resumeStore store.ResumeStore
	analyzer    ResumeAnalyzer
	logger      *slog.Logger
}

// NewFactory creates a task Factory over the task dependencies.
func NewFactory(resumeStore store.ResumeStore, analyzer ResumeAnalyzer, logger *slog.Logger) *Factory {
	return &Factory{
		resumeStore: resumeStore,
		analyzer:    analyzer,
		logger:      logger,
	}
}

// NewResumeAnalysis creates a fresh resume analysis task.
func (f *Factory) NewResumeAnalysis(resumeID uuid.UUID) (Task, error) {
	return NewResumeAnalysisTask(resumeID, f.resumeStore, f.analyzer, f.logger)
}

// Rehydrate rebuilds an executable task from its persisted row. The store
// implementations use this when loading unfinished tasks.
func (f *Factory) Rehydrate(id uuid.UUID, taskType string, payload []byte) (Task, error) {
	switch taskType {
	case TypeResumeAnalysis:
		return newResumeAnalysisTaskFromRow(id, payload, f.resumeStore, f.analyzer, f.logger)
	default:
		return nil, fmt.Errorf("unknown task type %q", taskType)
	}
}

// Scheduler submits domain operations as background tasks. It implements
// the service layer's scheduling interfaces.
type Scheduler struct {
	factory   *Factory
	submitter Submitter
}

// NewScheduler creates a Scheduler over the given factory and submitter.
func NewScheduler(factory *Factory, submitter Submitter) *Scheduler {
	return &Scheduler{factory: factory, submitter: submitter}
}

// ScheduleResumeAnalysis queues background analysis of the given resume.
func (s *Scheduler) ScheduleResumeAnalysis(ctx context.Context, resumeID uuid.UUID) error {
	t, err := s.factory.NewResumeAnalysis(resumeID)
	if err != nil {
		return fmt.Errorf("failed to build resume analysis task: %w", err)
	}
	return s.submitter.Submit(ctx, t)
}
