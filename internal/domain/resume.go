package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ResumeStatus represents the analysis state of an uploaded resume.
type ResumeStatus string

// Possible resume status values
const (
	ResumeStatusPending    ResumeStatus = "pending"
	ResumeStatusProcessing ResumeStatus = "processing"
	ResumeStatusCompleted  ResumeStatus = "completed"
	ResumeStatusFailed     ResumeStatus = "failed"
)

// Common validation errors for Resume
var (
	ErrEmptyResumeID     = errors.New("resume ID cannot be empty")
	ErrEmptyResumeUserID = errors.New("resume user ID cannot be empty")
	ErrEmptyResumeText   = errors.New("resume text cannot be empty")
	ErrInvalidResumeStat = errors.New("invalid resume status")
)

// ResumeAnalysis is the structured result of analyzing a resume against a
// target role. It is stored as JSON alongside the resume.
type ResumeAnalysis struct {
	OverallScore    int      `json:"overall_score"` // 0-100
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	MissingKeywords []string `json:"missing_keywords"`
	Summary         string   `json:"summary"`
}

// Resume is a user-submitted resume text, tracked through its background
// analysis lifecycle via Status.
type Resume struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Title      string          `json:"title"`
	Text       string          `json:"text"`
	TargetRole string          `json:"target_role"`
	Status     ResumeStatus    `json:"status"`
	Analysis   *ResumeAnalysis `json:"analysis,omitempty"`
	Provider   string          `json:"provider,omitempty"`
	Model      string          `json:"model,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewResume creates a new Resume with the given owner and text.
// The status starts as pending; analysis happens asynchronously.
func NewResume(userID uuid.UUID, title, text, targetRole string) (*Resume, error) {
	resume := &Resume{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		Text:       text,
		TargetRole: targetRole,
		Status:     ResumeStatusPending,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := resume.Validate(); err != nil {
		return nil, err
	}

	return resume, nil
}

// Validate checks if the Resume has valid data.
func (r *Resume) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyResumeID
	}
	if r.UserID == uuid.Nil {
		return ErrEmptyResumeUserID
	}
	if r.Text == "" {
		return ErrEmptyResumeText
	}
	if !isValidResumeStatus(r.Status) {
		return ErrInvalidResumeStat
	}
	return nil
}

// UpdateStatus updates the resume's status and the UpdatedAt timestamp.
// Returns an error if the new status is invalid.
func (r *Resume) UpdateStatus(status ResumeStatus) error {
	if !isValidResumeStatus(status) {
		return ErrInvalidResumeStat
	}

	r.Status = status
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// isValidResumeStatus checks if the given status is a valid ResumeStatus.
func isValidResumeStatus(status ResumeStatus) bool {
	switch status {
	case ResumeStatusPending, ResumeStatusProcessing, ResumeStatusCompleted, ResumeStatusFailed:
		return true
	default:
		return false
	}
}
