package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/generation"
	"github.com/careergenie/careergenie-api/internal/store"
)

// InterviewGenerator is the slice of the content generator the interview
// service depends on.
type InterviewGenerator interface {
	InterviewQuestions(ctx context.Context, role string, difficulty domain.InterviewDifficulty, count int, skills []string) ([]generation.QuestionDraft, generation.Provenance, error)
	EvaluateAnswer(ctx context.Context, role, question, answer string) (*generation.EvaluationDraft, generation.Provenance, error)
}

// InterviewService provides interview practice operations: generating
// question sessions and evaluating submitted answers.
type InterviewService interface {
	// StartSession generates a new practice session for the given role and
	// difficulty. When no generation provider can answer, the session is
	// served from a canned question bank with questions marked as fallback
	// instead of failing.
	StartSession(ctx context.Context, userID uuid.UUID, role string, difficulty domain.InterviewDifficulty, count int) (*domain.InterviewSession, []*domain.Question, error)

	// GetSession retrieves a session with its questions.
	// Returns ErrNotOwned if the session belongs to another user.
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.InterviewSession, []*domain.Question, error)

	// EvaluateAnswer scores the user's answer to one question and stores
	// the evaluation. Returns ErrGenerationUnavailable when no provider
	// could evaluate; there is no canned fallback for scoring.
	EvaluateAnswer(ctx context.Context, userID, questionID uuid.UUID, answer string) (*domain.Evaluation, error)

	// SessionEvaluations retrieves all stored evaluations for a session.
	// Returns ErrNotOwned if the session belongs to another user.
	SessionEvaluations(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.Evaluation, error)
}

// InterviewServiceImpl implements the InterviewService interface
type InterviewServiceImpl struct {
	interviewStore store.InterviewStore
	profileStore   store.ProfileStore
	generator      InterviewGenerator
	logger         *slog.Logger
}

// NewInterviewService creates a new InterviewService
func NewInterviewService(
	interviewStore store.InterviewStore,
	profileStore store.ProfileStore,
	generator InterviewGenerator,
	logger *slog.Logger,
) InterviewService {
	return &InterviewServiceImpl{
		interviewStore: interviewStore,
		profileStore:   profileStore,
		generator:      generator,
		logger:         logger.With("component", "interview_service"),
	}
}

// StartSession generates questions for a new practice session.
func (s *InterviewServiceImpl) StartSession(ctx context.Context, userID uuid.UUID, role string, difficulty domain.InterviewDifficulty, count int) (*domain.InterviewSession, []*domain.Question, error) {
	session, err := domain.NewInterviewSession(userID, role, difficulty)
	if err != nil {
		return nil, nil, err
	}

	// The profile is optional context; its skills steer question topics.
	var skills []string
	if profile, err := s.profileStore.GetByUserID(ctx, userID); err == nil {
		skills = profile.Skills
	} else if !errors.Is(err, store.ErrProfileNotFound) {
		s.logger.Warn("failed to load profile for question generation",
			"error", err,
			"user_id", userID)
	}

	source := domain.QuestionSourceGenerated
	drafts, prov, err := s.generator.InterviewQuestions(ctx, role, session.Difficulty, count, skills)
	if err != nil {
		s.logger.Warn("question generation failed, serving fallback questions",
			"error", err,
			"user_id", userID,
			"role", role)
		drafts = fallbackQuestions(role, session.Difficulty, count)
		prov = generation.Provenance{}
		source = domain.QuestionSourceFallback
	}
	session.Provider = prov.Provider
	session.Model = prov.Model

	questions := make([]*domain.Question, 0, len(drafts))
	for i, draft := range drafts {
		question, err := domain.NewQuestion(session.ID, i+1, draft.Text, draft.Category, source)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build question: %w", err)
		}
		questions = append(questions, question)
	}

	if err := s.interviewStore.CreateSession(ctx, session, questions); err != nil {
		s.logger.Error("failed to save interview session",
			"error", err,
			"user_id", userID)
		return nil, nil, fmt.Errorf("failed to save interview session: %w", err)
	}

	s.logger.Info("interview session created",
		"session_id", session.ID,
		"user_id", userID,
		"role", role,
		"question_count", len(questions),
		"source", string(source))

	return session, questions, nil
}

// GetSession retrieves a session with its questions, enforcing ownership.
func (s *InterviewServiceImpl) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.InterviewSession, []*domain.Question, error) {
	session, questions, err := s.interviewStore.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve interview session: %w", err)
	}
	if session.UserID != userID {
		return nil, nil, ErrNotOwned
	}
	return session, questions, nil
}

// EvaluateAnswer scores an answer to one question and stores the result.
func (s *InterviewServiceImpl) EvaluateAnswer(ctx context.Context, userID, questionID uuid.UUID, answer string) (*domain.Evaluation, error) {
	question, err := s.interviewStore.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve question: %w", err)
	}

	session, _, err := s.interviewStore.GetSession(ctx, question.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve interview session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrNotOwned
	}

	draft, prov, err := s.generator.EvaluateAnswer(ctx, session.Role, question.Text, answer)
	if err != nil {
		s.logger.Warn("answer evaluation failed",
			"error", err,
			"question_id", questionID,
			"user_id", userID)
		if errors.Is(err, generation.ErrGenerationFailed) {
			return nil, fmt.Errorf("%w: %w", ErrGenerationUnavailable, err)
		}
		return nil, fmt.Errorf("failed to evaluate answer: %w", err)
	}

	evaluation, err := domain.NewEvaluation(questionID, answer, draft.Score, draft.Strengths, draft.Improvements)
	if err != nil {
		return nil, err
	}
	evaluation.Provider = prov.Provider
	evaluation.Model = prov.Model

	if err := s.interviewStore.CreateEvaluation(ctx, evaluation); err != nil {
		s.logger.Error("failed to save evaluation",
			"error", err,
			"question_id", questionID)
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}

	s.logger.Info("answer evaluated",
		"evaluation_id", evaluation.ID,
		"question_id", questionID,
		"score", evaluation.Score,
		"provider", prov.Provider)

	return evaluation, nil
}

// SessionEvaluations retrieves stored evaluations for a session, enforcing
// ownership.
func (s *InterviewServiceImpl) SessionEvaluations(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.Evaluation, error) {
	session, _, err := s.interviewStore.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve interview session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrNotOwned
	}

	evaluations, err := s.interviewStore.ListEvaluationsBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve evaluations: %w", err)
	}
	return evaluations, nil
}

// fallbackQuestions returns canned questions for a role when generation is
// unavailable. They are generic by necessity but parameterized on the role
// so a session never comes back empty.
func fallbackQuestions(role string, difficulty domain.InterviewDifficulty, count int) []generation.QuestionDraft {
	if count <= 0 {
		count = generation.DefaultQuestionCount
	}

	bank := []generation.QuestionDraft{
		{Text: fmt.Sprintf("What interests you about working as a %s?", role), Category: "behavioral"},
		{Text: fmt.Sprintf("Walk me through a recent project relevant to a %s position. What was your contribution?", role), Category: "behavioral"},
		{Text: fmt.Sprintf("Which skills do you consider essential for a %s, and how have you applied them?", role), Category: "technical"},
		{Text: "Tell me about a time you received difficult feedback. How did you respond?", Category: "behavioral"},
		{Text: "Describe a problem you solved under time pressure. What tradeoffs did you make?", Category: "situational"},
		{Text: fmt.Sprintf("Where do you see the biggest challenges for a %s in the next few years?", role), Category: "situational"},
		{Text: "Tell me about a disagreement with a colleague and how you resolved it.", Category: "behavioral"},
	}
	if difficulty == domain.InterviewDifficultySenior {
		bank = append([]generation.QuestionDraft{
			{Text: fmt.Sprintf("How would you mentor a junior colleague growing toward a %s role?", role), Category: "behavioral"},
			{Text: "Describe a decision you made with incomplete information that affected your whole team.", Category: "situational"},
		}, bank...)
	}

	if count > len(bank) {
		count = len(bank)
	}
	return bank[:count]
}
