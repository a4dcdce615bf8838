package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RunnerConfig holds configuration for the task runner
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// StuckTaskAge defines how long a task can sit in processing state
	// before it's considered stuck and reset
	StuckTaskAge time.Duration

	// StuckTaskCheckInterval defines how often to check for stuck tasks.
	// If zero, defaults to 5 minutes.
	StuckTaskCheckInterval time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount:            2,
		QueueSize:              100,
		StuckTaskAge:           30 * time.Minute,
		StuckTaskCheckInterval: 5 * time.Minute,
	}
}

// Runner manages background task processing: a persisted queue, a pool of
// workers, recovery of unfinished tasks on startup, and a monitor that
// resets tasks stuck in processing.
type Runner struct {
	store      Store
	taskChan   chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
}

// NewRunner creates a new Runner. Call Start to begin processing.
func NewRunner(store Store, config RunnerConfig, logger *slog.Logger) *Runner {
	if config.StuckTaskCheckInterval == 0 {
		config.StuckTaskCheckInterval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		store:      store,
		taskChan:   make(chan Task, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With("component", "task_runner"),
	}
}

// Submit persists a task and adds it to the in-memory queue.
// Returns an error if the queue is full; the caller decides whether to
// retry or surface the failure.
func (r *Runner) Submit(ctx context.Context, task Task) error {
	if err := r.store.Save(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	select {
	case r.taskChan <- task:
		return nil
	default:
		return fmt.Errorf("task queue is full, try again later")
	}
}

// Start recovers unfinished tasks and launches the worker pool.
func (r *Runner) Start() error {
	if err := r.recover(); err != nil {
		return fmt.Errorf("failed to recover tasks: %w", err)
	}

	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	r.wg.Add(1)
	go r.stuckTaskMonitor()

	return nil
}

// Stop gracefully shuts down the task runner, waiting for in-flight tasks.
// The queue channel is left open: workers exit on context cancellation, and
// closing it would turn a Submit racing shutdown into a panic. Tasks
// submitted after Stop stay pending in the store and are recovered on the
// next start.
func (r *Runner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
}

// recover requeues tasks left unfinished by a previous run. Pending tasks
// go straight back to the queue; processing tasks were interrupted mid-run
// and are reset to pending first.
func (r *Runner) recover() error {
	ctx := context.Background()

	pending, err := r.store.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending tasks: %w", err)
	}

	processing, err := r.store.ListProcessing(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to list processing tasks: %w", err)
	}

	r.logger.Info("recovering unfinished tasks",
		"pending_count", len(pending),
		"processing_count", len(processing))

	for _, t := range pending {
		r.requeue(t)
	}
	for _, t := range processing {
		if err := r.store.UpdateStatus(ctx, t.ID(), StatusPending, "reset after recovery"); err != nil {
			r.logger.Error("failed to reset interrupted task",
				"task_id", t.ID(),
				"task_type", t.Type(),
				"error", err)
			continue
		}
		r.requeue(t)
	}

	return nil
}

// requeue places a task back on the in-memory queue, logging when the
// queue is full. A dropped task stays pending in the store and is picked
// up on the next restart.
func (r *Runner) requeue(t Task) {
	select {
	case r.taskChan <- t:
	default:
		r.logger.Error("failed to requeue task, queue is full",
			"task_id", t.ID(),
			"task_type", t.Type())
	}
}

// worker processes tasks from the queue until the runner stops.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return
		case t := <-r.taskChan:
			r.processTask(t, id)
		}
	}
}

// processTask executes a single task, tracking its status transitions in
// the store.
func (r *Runner) processTask(t Task, workerID int) {
	ctx := context.Background()
	log := r.logger.With(
		"task_id", t.ID(),
		"task_type", t.Type(),
		"worker_id", workerID,
	)

	if err := r.store.UpdateStatus(ctx, t.ID(), StatusProcessing, ""); err != nil {
		log.Error("failed to mark task as processing", "error", err)
		return
	}

	log.Info("processing task")

	if err := t.Execute(ctx); err != nil {
		log.Error("task execution failed", "error", err)
		if updateErr := r.store.UpdateStatus(ctx, t.ID(), StatusFailed, err.Error()); updateErr != nil {
			log.Error("failed to mark task as failed", "error", updateErr)
		}
		return
	}

	log.Info("task completed")
	if err := r.store.UpdateStatus(ctx, t.ID(), StatusCompleted, ""); err != nil {
		log.Error("failed to mark task as completed", "error", err)
	}
}

// stuckTaskMonitor periodically resets tasks that have been processing
// longer than the configured age. A task gets stuck when its worker dies
// without the whole process crashing.
func (r *Runner) stuckTaskMonitor() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.StuckTaskCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			ctx := context.Background()

			stuck, err := r.store.ListProcessing(ctx, r.config.StuckTaskAge)
			if err != nil {
				r.logger.Error("failed to check for stuck tasks", "error", err)
				continue
			}
			if len(stuck) == 0 {
				continue
			}

			r.logger.Info("found stuck tasks", "count", len(stuck))
			for _, t := range stuck {
				if err := r.store.UpdateStatus(ctx, t.ID(), StatusPending, "reset after being stuck in processing"); err != nil {
					r.logger.Error("failed to reset stuck task",
						"task_id", t.ID(),
						"error", err)
					continue
				}
				r.requeue(t)
			}
		}
	}
}
