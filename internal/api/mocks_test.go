package api

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/api/middleware"
	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/service"
	"github.com/careergenie/careergenie-api/internal/service/auth"
)

// Scriptable service fakes. Each method delegates to an optional function
// field so tests only wire what they exercise.

type mockUserService struct {
	registerFn     func(ctx context.Context, email, password string) (*domain.User, error)
	authenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
}

func (m *mockUserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return m.registerFn(ctx, email, password)
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return m.authenticateFn(ctx, email, password)
}

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return &domain.User{ID: userID}, nil
}

type mockProfileService struct {
	getFn    func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	updateFn func(ctx context.Context, userID uuid.UUID, update service.ProfileUpdate) (*domain.Profile, error)
}

func (m *mockProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return m.getFn(ctx, userID)
}

func (m *mockProfileService) Update(ctx context.Context, userID uuid.UUID, update service.ProfileUpdate) (*domain.Profile, error) {
	return m.updateFn(ctx, userID, update)
}

type mockInterviewService struct {
	startFn       func(ctx context.Context, userID uuid.UUID, role string, difficulty domain.InterviewDifficulty, count int) (*domain.InterviewSession, []*domain.Question, error)
	getFn         func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.InterviewSession, []*domain.Question, error)
	evaluateFn    func(ctx context.Context, userID, questionID uuid.UUID, answer string) (*domain.Evaluation, error)
	evaluationsFn func(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.Evaluation, error)
}

func (m *mockInterviewService) StartSession(ctx context.Context, userID uuid.UUID, role string, difficulty domain.InterviewDifficulty, count int) (*domain.InterviewSession, []*domain.Question, error) {
	return m.startFn(ctx, userID, role, difficulty, count)
}

func (m *mockInterviewService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.InterviewSession, []*domain.Question, error) {
	return m.getFn(ctx, userID, sessionID)
}

func (m *mockInterviewService) EvaluateAnswer(ctx context.Context, userID, questionID uuid.UUID, answer string) (*domain.Evaluation, error) {
	return m.evaluateFn(ctx, userID, questionID, answer)
}

func (m *mockInterviewService) SessionEvaluations(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.Evaluation, error) {
	return m.evaluationsFn(ctx, userID, sessionID)
}

type mockRecommendationService struct {
	generateFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Recommendation, error)
	listFn     func(ctx context.Context, userID uuid.UUID) ([]*domain.Recommendation, error)
}

func (m *mockRecommendationService) Generate(ctx context.Context, userID uuid.UUID) ([]*domain.Recommendation, error) {
	return m.generateFn(ctx, userID)
}

func (m *mockRecommendationService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Recommendation, error) {
	return m.listFn(ctx, userID)
}

type mockResumeService struct {
	submitFn func(ctx context.Context, userID uuid.UUID, title, text, targetRole string) (*domain.Resume, error)
	getFn    func(ctx context.Context, userID, resumeID uuid.UUID) (*domain.Resume, error)
}

func (m *mockResumeService) Submit(ctx context.Context, userID uuid.UUID, title, text, targetRole string) (*domain.Resume, error) {
	return m.submitFn(ctx, userID, title, text, targetRole)
}

func (m *mockResumeService) Get(ctx context.Context, userID, resumeID uuid.UUID) (*domain.Resume, error) {
	return m.getFn(ctx, userID, resumeID)
}

type mockChatService struct {
	startFn   func(ctx context.Context, userID uuid.UUID) (*domain.ChatSession, error)
	sendFn    func(ctx context.Context, userID, sessionID uuid.UUID, content string) (*domain.ChatMessage, error)
	historyFn func(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.ChatMessage, error)
}

func (m *mockChatService) StartSession(ctx context.Context, userID uuid.UUID) (*domain.ChatSession, error) {
	return m.startFn(ctx, userID)
}

func (m *mockChatService) SendMessage(ctx context.Context, userID, sessionID uuid.UUID, content string) (*domain.ChatMessage, error) {
	return m.sendFn(ctx, userID, sessionID, content)
}

func (m *mockChatService) History(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.ChatMessage, error) {
	return m.historyFn(ctx, userID, sessionID)
}

// mockJWTService accepts exactly one token string and resolves it to a
// fixed user ID.
type mockJWTService struct {
	userID uuid.UUID
	token  string
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "access-" + userID.String(), nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if tokenString != m.token {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: m.userID, TokenType: "access"}, nil
}

func (m *mockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "refresh-" + userID.String(), nil
}

func (m *mockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if tokenString != "refresh-"+m.userID.String() {
		return nil, auth.ErrInvalidRefreshToken
	}
	return &auth.Claims{UserID: m.userID, TokenType: "refresh"}, nil
}

// stubRenderer returns a fixed byte slice instead of driving Chrome.
type stubRenderer struct {
	pdf []byte
	err error
}

func (s *stubRenderer) RenderResume(ctx context.Context, resume *domain.Resume) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pdf, nil
}

// testEnv bundles the fakes behind a running test server.
type testEnv struct {
	server  *httptest.Server
	userID  uuid.UUID
	token   string
	users   *mockUserService
	profile *mockProfileService
	intrv   *mockInterviewService
	recs    *mockRecommendationService
	resumes *mockResumeService
	chat    *mockChatService
	pdf     *stubRenderer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		userID:  uuid.New(),
		token:   "valid-test-token",
		users:   &mockUserService{},
		profile: &mockProfileService{},
		intrv:   &mockInterviewService{},
		recs:    &mockRecommendationService{},
		resumes: &mockResumeService{},
		chat:    &mockChatService{},
		pdf:     &stubRenderer{pdf: []byte("%PDF-1.4 test")},
	}

	jwt := &mockJWTService{userID: env.userID, token: env.token}
	handlers := Handlers{
		Auth:           NewAuthHandler(env.users, jwt),
		Profile:        NewProfileHandler(env.profile),
		Interview:      NewInterviewHandler(env.intrv),
		Recommendation: NewRecommendationHandler(env.recs),
		Resume:         NewResumeHandler(env.resumes, env.pdf),
		Chat:           NewChatHandler(env.chat),
	}

	router := NewRouter(handlers, middleware.NewAuthMiddleware(jwt), slog.Default())
	env.server = httptest.NewServer(router)
	t.Cleanup(env.server.Close)

	return env
}
