package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/careergenie/careergenie-api/internal/api"
	"github.com/careergenie/careergenie-api/internal/api/middleware"
	"github.com/careergenie/careergenie-api/internal/config"
	"github.com/careergenie/careergenie-api/internal/generation"
	"github.com/careergenie/careergenie-api/internal/llm"
	"github.com/careergenie/careergenie-api/internal/platform/pdfrender"
	"github.com/careergenie/careergenie-api/internal/platform/postgres"
	"github.com/careergenie/careergenie-api/internal/service"
	"github.com/careergenie/careergenie-api/internal/service/auth"
	"github.com/careergenie/careergenie-api/internal/task"
)

// application holds the fully wired dependency graph of the server.
type application struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
	router chi.Router
	runner *task.Runner
}

// newApplication wires stores, the generation stack, services, background
// tasks, and HTTP handlers into a runnable application.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	// Stores
	userStore := postgres.NewPostgresUserStore(db, logger, 0)
	profileStore := postgres.NewPostgresProfileStore(db, logger)
	interviewStore := postgres.NewPostgresInterviewStore(db, logger)
	recommendationStore := postgres.NewPostgresRecommendationStore(db, logger)
	resumeStore := postgres.NewPostgresResumeStore(db, logger)
	chatStore := postgres.NewPostgresChatStore(db, logger)

	// Generation stack: registry -> fallback gateway -> content generator
	registry := llm.NewRegistry(cfg.LLM)
	chain, err := llm.ChainFromConfig(cfg.LLM.Chain)
	if err != nil {
		return nil, fmt.Errorf("invalid provider chain: %w", err)
	}
	gateway, err := llm.NewGateway(registry, chain,
		llm.WithAttemptTimeout(time.Duration(cfg.LLM.AttemptTimeoutSeconds)*time.Second),
		llm.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build generation gateway: %w", err)
	}
	generator, err := generation.NewGenerator(gateway, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build content generator: %w", err)
	}

	// Background task runner with persistent queue
	factory := task.NewFactory(resumeStore, generator, logger)
	taskStore := postgres.NewPostgresTaskStore(db, factory, logger)
	runner := task.NewRunner(taskStore, task.RunnerConfig{
		WorkerCount:  cfg.Task.WorkerCount,
		QueueSize:    cfg.Task.QueueSize,
		StuckTaskAge: time.Duration(cfg.Task.StuckTaskAgeMinutes) * time.Minute,
	}, logger)
	scheduler := task.NewScheduler(factory, runner)

	// Services
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to build JWT service: %w", err)
	}
	passwordVerifier := auth.NewBcryptVerifier()

	userService := service.NewUserService(userStore, passwordVerifier, logger)
	profileService := service.NewProfileService(profileStore, logger)
	interviewService := service.NewInterviewService(interviewStore, profileStore, generator, logger)
	recommendationService := service.NewRecommendationService(recommendationStore, profileStore, generator, logger)
	resumeService := service.NewResumeService(resumeStore, scheduler, logger)
	chatService := service.NewChatService(chatStore, profileStore, generator, logger)

	renderer := pdfrender.NewChromedpRenderer(os.Getenv("CHROME_PATH"), logger)

	// HTTP layer
	handlers := api.Handlers{
		Auth:           api.NewAuthHandler(userService, jwtService),
		Profile:        api.NewProfileHandler(profileService),
		Interview:      api.NewInterviewHandler(interviewService),
		Recommendation: api.NewRecommendationHandler(recommendationService),
		Resume:         api.NewResumeHandler(resumeService, renderer),
		Chat:           api.NewChatHandler(chatService),
	}
	router := api.NewRouter(handlers, middleware.NewAuthMiddleware(jwtService), logger)

	return &application{
		cfg:    cfg,
		logger: logger,
		db:     db,
		router: router,
		runner: runner,
	}, nil
}
