package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status represents the current state of a task
type Status string

// Possible task status values
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Task type constants
const (
	// TypeResumeAnalysis is the task type for analyzing a submitted resume.
	TypeResumeAnalysis = "resume_analysis"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Payload returns the task data as a byte slice
	Payload() []byte

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// Store defines the interface for persisting tasks. Persisting before
// queueing is what makes recovery after a crash possible.
type Store interface {
	// Save persists a new task in pending state.
	Save(ctx context.Context, task Task) error

	// UpdateStatus updates the status of a task, recording an error
	// message for failed tasks.
	UpdateStatus(ctx context.Context, taskID uuid.UUID, status Status, errorMsg string) error

	// ListPending retrieves all tasks with "pending" status.
	ListPending(ctx context.Context) ([]Task, error)

	// ListProcessing retrieves tasks with "processing" status. If olderThan
	// is non-zero, only tasks that entered that state longer ago are
	// returned.
	ListProcessing(ctx context.Context, olderThan time.Duration) ([]Task, error)
}
