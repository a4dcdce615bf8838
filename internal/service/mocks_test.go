package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/generation"
	"github.com/careergenie/careergenie-api/internal/store"
)

// In-memory store fakes shared by the service tests. Each implements just
// enough of its store interface, with injectable errors for failure paths.

type fakeUserStore struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
	err     error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, exists := f.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	// Mirror the real store: hash is stored, plaintext is dropped.
	stored := *user
	stored.HashedPassword = "hashed:" + user.Password
	stored.Password = ""
	f.byID[stored.ID] = &stored
	f.byEmail[stored.Email] = &stored
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// fakeVerifier matches the hashing scheme of fakeUserStore.
type fakeVerifier struct{}

func (fakeVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return ErrInvalidCredentials
	}
	return nil
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*domain.Profile // keyed by user ID
	err      error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uuid.UUID]*domain.Profile)}
}

func (f *fakeProfileStore) Upsert(ctx context.Context, profile *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	copied := *profile
	f.profiles[profile.UserID] = &copied
	return nil
}

func (f *fakeProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

type fakeInterviewStore struct {
	mu          sync.Mutex
	sessions    map[uuid.UUID]*domain.InterviewSession
	questions   map[uuid.UUID][]*domain.Question // keyed by session ID
	evaluations map[uuid.UUID][]*domain.Evaluation
	err         error
}

func newFakeInterviewStore() *fakeInterviewStore {
	return &fakeInterviewStore{
		sessions:    make(map[uuid.UUID]*domain.InterviewSession),
		questions:   make(map[uuid.UUID][]*domain.Question),
		evaluations: make(map[uuid.UUID][]*domain.Evaluation),
	}
}

func (f *fakeInterviewStore) CreateSession(ctx context.Context, session *domain.InterviewSession, questions []*domain.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sessions[session.ID] = session
	f.questions[session.ID] = questions
	return nil
}

func (f *fakeInterviewStore) GetSession(ctx context.Context, id uuid.UUID) (*domain.InterviewSession, []*domain.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, nil, store.ErrSessionNotFound
	}
	return session, f.questions[id], nil
}

func (f *fakeInterviewStore) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, questions := range f.questions {
		for _, q := range questions {
			if q.ID == id {
				return q, nil
			}
		}
	}
	return nil, store.ErrQuestionNotFound
}

func (f *fakeInterviewStore) CreateEvaluation(ctx context.Context, evaluation *domain.Evaluation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	question, err := f.findQuestion(evaluation.QuestionID)
	if err != nil {
		return store.ErrInvalidEntity
	}
	f.evaluations[question.SessionID] = append(f.evaluations[question.SessionID], evaluation)
	return nil
}

func (f *fakeInterviewStore) findQuestion(id uuid.UUID) (*domain.Question, error) {
	for _, questions := range f.questions {
		for _, q := range questions {
			if q.ID == id {
				return q, nil
			}
		}
	}
	return nil, store.ErrQuestionNotFound
}

func (f *fakeInterviewStore) ListEvaluationsBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.evaluations[sessionID], nil
}

type fakeRecommendationStore struct {
	mu   sync.Mutex
	byID map[uuid.UUID][]*domain.Recommendation // keyed by user ID
	err  error
}

func newFakeRecommendationStore() *fakeRecommendationStore {
	return &fakeRecommendationStore{byID: make(map[uuid.UUID][]*domain.Recommendation)}
}

func (f *fakeRecommendationStore) CreateBatch(ctx context.Context, recommendations []*domain.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, rec := range recommendations {
		f.byID[rec.UserID] = append(f.byID[rec.UserID], rec)
	}
	return nil
}

func (f *fakeRecommendationStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	recs := append([]*domain.Recommendation(nil), f.byID[userID]...)
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.After(recs[j].CreatedAt) })
	return recs, nil
}

type fakeResumeStore struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*domain.Resume
	err     error
}

func newFakeResumeStore() *fakeResumeStore {
	return &fakeResumeStore{resumes: make(map[uuid.UUID]*domain.Resume)}
}

func (f *fakeResumeStore) Create(ctx context.Context, resume *domain.Resume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	copied := *resume
	f.resumes[resume.ID] = &copied
	return nil
}

func (f *fakeResumeStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	resume, ok := f.resumes[id]
	if !ok {
		return nil, store.ErrResumeNotFound
	}
	copied := *resume
	return &copied, nil
}

func (f *fakeResumeStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ResumeStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	resume, ok := f.resumes[id]
	if !ok {
		return store.ErrResumeNotFound
	}
	return resume.UpdateStatus(status)
}

func (f *fakeResumeStore) SaveAnalysis(ctx context.Context, id uuid.UUID, analysis *domain.ResumeAnalysis, provider, model string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	resume, ok := f.resumes[id]
	if !ok {
		return store.ErrResumeNotFound
	}
	resume.Analysis = analysis
	resume.Provider = provider
	resume.Model = model
	return resume.UpdateStatus(domain.ResumeStatusCompleted)
}

type fakeChatStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.ChatSession
	messages map[uuid.UUID][]*domain.ChatMessage
	err      error
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		sessions: make(map[uuid.UUID]*domain.ChatSession),
		messages: make(map[uuid.UUID][]*domain.ChatMessage),
	}
}

func (f *fakeChatStore) CreateSession(ctx context.Context, session *domain.ChatSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeChatStore) GetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, store.ErrChatSessionNotFound
	}
	return session, nil
}

func (f *fakeChatStore) AppendMessage(ctx context.Context, message *domain.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.sessions[message.SessionID]; !ok {
		return store.ErrInvalidEntity
	}
	f.messages[message.SessionID] = append(f.messages[message.SessionID], message)
	return nil
}

func (f *fakeChatStore) ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]*domain.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	messages := f.messages[sessionID]
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return append([]*domain.ChatMessage(nil), messages...), nil
}

// stubGenerator scripts the content generator for every service that needs
// one.
type stubGenerator struct {
	questions       []generation.QuestionDraft
	evaluation      *generation.EvaluationDraft
	recommendations []generation.RecommendationDraft
	reply           string
	prov            generation.Provenance
	err             error

	lastRole    string
	lastSkills  []string
	lastHistory []*domain.ChatMessage
	lastProfile *domain.Profile
}

func (s *stubGenerator) InterviewQuestions(ctx context.Context, role string, difficulty domain.InterviewDifficulty, count int, skills []string) ([]generation.QuestionDraft, generation.Provenance, error) {
	s.lastRole = role
	s.lastSkills = skills
	if s.err != nil {
		return nil, generation.Provenance{}, s.err
	}
	return s.questions, s.prov, nil
}

func (s *stubGenerator) EvaluateAnswer(ctx context.Context, role, question, answer string) (*generation.EvaluationDraft, generation.Provenance, error) {
	s.lastRole = role
	if s.err != nil {
		return nil, generation.Provenance{}, s.err
	}
	return s.evaluation, s.prov, nil
}

func (s *stubGenerator) Recommendations(ctx context.Context, profile *domain.Profile, count int) ([]generation.RecommendationDraft, generation.Provenance, error) {
	s.lastProfile = profile
	if s.err != nil {
		return nil, generation.Provenance{}, s.err
	}
	return s.recommendations, s.prov, nil
}

func (s *stubGenerator) CoachReply(ctx context.Context, profile *domain.Profile, history []*domain.ChatMessage) (string, generation.Provenance, error) {
	s.lastProfile = profile
	s.lastHistory = history
	if s.err != nil {
		return "", generation.Provenance{}, s.err
	}
	return s.reply, s.prov, nil
}

// fakeScheduler records scheduled resume analyses.
type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []uuid.UUID
	err       error
}

func (f *fakeScheduler) ScheduleResumeAnalysis(ctx context.Context, resumeID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.scheduled = append(f.scheduled, resumeID)
	return nil
}
