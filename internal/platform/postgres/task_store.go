package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/store"
	"github.com/careergenie/careergenie-api/internal/task"
)

// TaskRehydrator rebuilds an executable task from its stored row.
// It is implemented by task.Factory.
type TaskRehydrator interface {
	Rehydrate(id uuid.UUID, taskType string, payload []byte) (task.Task, error)
}

// PostgresTaskStore implements the task.Store interface using a PostgreSQL
// database. Rows recovered at startup are turned back into executable
// tasks through the rehydrator.
type PostgresTaskStore struct {
	db         store.DBTX
	rehydrator TaskRehydrator
	logger     *slog.Logger
}

// Compile-time check
var _ task.Store = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a new PostgresTaskStore.
func NewPostgresTaskStore(db store.DBTX, rehydrator TaskRehydrator, logger *slog.Logger) *PostgresTaskStore {
	return &PostgresTaskStore{
		db:         db,
		rehydrator: rehydrator,
		logger:     logger.With(slog.String("component", "task_store")),
	}
}

// Save persists a new task in pending status.
func (s *PostgresTaskStore) Save(ctx context.Context, t task.Task) error {
	now := time.Now().UTC()

	query := `
		INSERT INTO tasks (id, type, payload, status, error_message,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, '', $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		t.ID(), t.Type(), t.Payload(), task.StatusPending, now, now)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// UpdateStatus updates the status and error message of a task.
func (s *PostgresTaskStore) UpdateStatus(ctx context.Context, taskID uuid.UUID, status task.Status, errorMsg string) error {
	query := `
		UPDATE tasks
		SET status = $1, error_message = $2, updated_at = $3
		WHERE id = $4`

	_, err := s.db.ExecContext(ctx, query,
		status, errorMsg, time.Now().UTC(), taskID)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// ListPending retrieves all pending tasks, rehydrated into executable
// form, oldest first.
func (s *PostgresTaskStore) ListPending(ctx context.Context) ([]task.Task, error) {
	query := `
		SELECT id, type, payload
		FROM tasks
		WHERE status = $1
		ORDER BY created_at ASC`

	return s.listTasks(ctx, query, task.StatusPending)
}

// ListProcessing retrieves tasks that have been in processing status for
// longer than olderThan, rehydrated into executable form.
func (s *PostgresTaskStore) ListProcessing(ctx context.Context, olderThan time.Duration) ([]task.Task, error) {
	query := `
		SELECT id, type, payload
		FROM tasks
		WHERE status = $1 AND updated_at < $2
		ORDER BY created_at ASC`

	cutoff := time.Now().UTC().Add(-olderThan)
	return s.listTasks(ctx, query, task.StatusProcessing, cutoff)
}

func (s *PostgresTaskStore) listTasks(ctx context.Context, query string, args ...any) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []task.Task
	for rows.Next() {
		var (
			id       uuid.UUID
			taskType string
			payload  []byte
		)
		if err := rows.Scan(&id, &taskType, &payload); err != nil {
			return nil, MapError(err)
		}

		rebuilt, err := s.rehydrator.Rehydrate(id, taskType, payload)
		if err != nil {
			// A row we cannot rebuild (unknown type, corrupt payload)
			// should not block recovery of the rest.
			s.logger.WarnContext(ctx, "skipping unrecoverable task row",
				slog.String("task_id", id.String()),
				slog.String("task_type", taskType),
				slog.String("error", err.Error()))
			continue
		}
		tasks = append(tasks, rebuilt)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}
