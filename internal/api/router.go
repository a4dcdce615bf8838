package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/careergenie/careergenie-api/internal/api/middleware"
	"github.com/careergenie/careergenie-api/internal/api/shared"
)

// Handlers bundles the API handlers mounted by NewRouter.
type Handlers struct {
	Auth           *AuthHandler
	Profile        *ProfileHandler
	Interview      *InterviewHandler
	Recommendation *RecommendationHandler
	Resume         *ResumeHandler
	Chat           *ChatHandler
}

// NewRouter builds the chi router with the full middleware stack and all
// API routes mounted under /api. Everything except registration, login,
// token refresh, and the health check requires a valid access token.
func NewRouter(handlers Handlers, authMiddleware *middleware.AuthMiddleware, baseLogger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceID(baseLogger))
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", handlers.Auth.Register)
		r.Post("/auth/login", handlers.Auth.Login)
		r.Post("/auth/refresh", handlers.Auth.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Career profile
			r.Get("/profile", handlers.Profile.Get)
			r.Put("/profile", handlers.Profile.Update)

			// Interview practice
			r.Post("/interviews", handlers.Interview.StartSession)
			r.Get("/interviews/{sessionID}", handlers.Interview.GetSession)
			r.Get("/interviews/{sessionID}/evaluations", handlers.Interview.ListEvaluations)
			r.Post("/interviews/questions/{questionID}/answers", handlers.Interview.SubmitAnswer)

			// Career recommendations
			r.Post("/recommendations", handlers.Recommendation.Generate)
			r.Get("/recommendations", handlers.Recommendation.List)

			// Resume analysis
			r.Post("/resumes", handlers.Resume.Submit)
			r.Get("/resumes/{resumeID}", handlers.Resume.Get)
			r.Get("/resumes/{resumeID}/pdf", handlers.Resume.DownloadPDF)

			// Coaching chat
			r.Post("/chat/sessions", handlers.Chat.StartSession)
			r.Post("/chat/sessions/{sessionID}/messages", handlers.Chat.SendMessage)
			r.Get("/chat/sessions/{sessionID}/messages", handlers.Chat.History)
		})
	})

	return r
}
