package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/generation"
	"github.com/careergenie/careergenie-api/internal/store"
)

// ResumeAnalyzer is the slice of the content generator the analysis task
// depends on.
type ResumeAnalyzer interface {
	AnalyzeResume(ctx context.Context, text, targetRole string) (*domain.ResumeAnalysis, generation.Provenance, error)
}

// resumeAnalysisPayload is the persisted task payload. It carries only the
// resume ID; everything else is reloaded at execution time so a recovered
// task sees current data.
type resumeAnalysisPayload struct {
	ResumeID uuid.UUID `json:"resume_id"`
}

// ResumeAnalysisTask analyzes one submitted resume and stores the result.
type ResumeAnalysisTask struct {
	id          uuid.UUID
	resumeID    uuid.UUID
	payload     []byte
	resumeStore store.ResumeStore
	analyzer    ResumeAnalyzer
	logger      *slog.Logger
}

var _ Task = (*ResumeAnalysisTask)(nil)

// NewResumeAnalysisTask creates a task that will analyze the given resume.
func NewResumeAnalysisTask(resumeID uuid.UUID, resumeStore store.ResumeStore, analyzer ResumeAnalyzer, logger *slog.Logger) (*ResumeAnalysisTask, error) {
	if resumeID == uuid.Nil {
		return nil, fmt.Errorf("resume ID cannot be empty")
	}
	if resumeStore == nil {
		return nil, fmt.Errorf("resume store cannot be nil")
	}
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer cannot be nil")
	}

	payload, err := json.Marshal(resumeAnalysisPayload{ResumeID: resumeID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode task payload: %w", err)
	}

	return &ResumeAnalysisTask{
		id:          uuid.New(),
		resumeID:    resumeID,
		payload:     payload,
		resumeStore: resumeStore,
		analyzer:    analyzer,
		logger:      logger.With("component", "resume_analysis_task"),
	}, nil
}

// newResumeAnalysisTaskFromRow rehydrates a persisted task during recovery.
func newResumeAnalysisTaskFromRow(id uuid.UUID, payload []byte, resumeStore store.ResumeStore, analyzer ResumeAnalyzer, logger *slog.Logger) (*ResumeAnalysisTask, error) {
	var decoded resumeAnalysisPayload
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode task payload: %w", err)
	}
	if decoded.ResumeID == uuid.Nil {
		return nil, fmt.Errorf("task payload has no resume ID")
	}

	return &ResumeAnalysisTask{
		id:          id,
		resumeID:    decoded.ResumeID,
		payload:     payload,
		resumeStore: resumeStore,
		analyzer:    analyzer,
		logger:      logger.With("component", "resume_analysis_task"),
	}, nil
}

// ID implements Task.
func (t *ResumeAnalysisTask) ID() uuid.UUID { return t.id }

// Type implements Task.
func (t *ResumeAnalysisTask) Type() string { return TypeResumeAnalysis }

// Payload implements Task.
func (t *ResumeAnalysisTask) Payload() []byte { return t.payload }

// Execute implements Task. The resume's own status tracks the analysis
// lifecycle independently of the task row, since it is what API clients
// poll.
func (t *ResumeAnalysisTask) Execute(ctx context.Context) error {
	log := t.logger.With("resume_id", t.resumeID, "task_id", t.id)

	resume, err := t.resumeStore.GetByID(ctx, t.resumeID)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	if resume.Status == domain.ResumeStatusCompleted {
		log.Info("resume already analyzed, skipping")
		return nil
	}

	if err := t.resumeStore.UpdateStatus(ctx, t.resumeID, domain.ResumeStatusProcessing); err != nil {
		return fmt.Errorf("failed to mark resume as processing: %w", err)
	}

	analysis, prov, err := t.analyzer.AnalyzeResume(ctx, resume.Text, resume.TargetRole)
	if err != nil {
		log.Error("resume analysis failed", "error", err)
		if updateErr := t.resumeStore.UpdateStatus(ctx, t.resumeID, domain.ResumeStatusFailed); updateErr != nil {
			log.Error("failed to mark resume as failed", "error", updateErr)
		}
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	if err := t.resumeStore.SaveAnalysis(ctx, t.resumeID, analysis, prov.Provider, prov.Model); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	log.Info("resume analyzed",
		"overall_score", analysis.OverallScore,
		"provider", prov.Provider)

	return nil
}
