package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/generation"
	"github.com/careergenie/careergenie-api/internal/store"
)

func TestInterviewServiceStartSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	t.Run("generated questions", func(t *testing.T) {
		t.Parallel()
		generator := &stubGenerator{
			questions: []generation.QuestionDraft{
				{Text: "Explain context cancellation.", Category: "technical"},
				{Text: "Tell me about a hard bug.", Category: "behavioral"},
			},
			prov: generation.Provenance{Provider: "groq", Model: "llama-3.3-70b-versatile"},
		}
		interviews := newFakeInterviewStore()
		svc := NewInterviewService(interviews, newFakeProfileStore(), generator, slog.Default())

		session, questions, err := svc.StartSession(ctx, userID, "Backend Engineer", domain.InterviewDifficultyMid, 2)
		require.NoError(t, err)

		assert.Equal(t, "Backend Engineer", session.Role)
		assert.Equal(t, "groq", session.Provider)
		require.Len(t, questions, 2)
		assert.Equal(t, domain.QuestionSourceGenerated, questions[0].Source)
		assert.Equal(t, 1, questions[0].Position)
		assert.Equal(t, 2, questions[1].Position)

		// Session is persisted.
		stored, storedQuestions, err := interviews.GetSession(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.ID, stored.ID)
		assert.Len(t, storedQuestions, 2)
	})

	t.Run("profile skills flow into generation", func(t *testing.T) {
		t.Parallel()
		generator := &stubGenerator{
			questions: []generation.QuestionDraft{{Text: "q"}},
		}
		profiles := newFakeProfileStore()
		profile, err := domain.NewProfile(userID, "Dana")
		require.NoError(t, err)
		profile.Skills = []string{"Go", "PostgreSQL"}
		require.NoError(t, profiles.Upsert(ctx, profile))

		svc := NewInterviewService(newFakeInterviewStore(), profiles, generator, slog.Default())
		_, _, err = svc.StartSession(ctx, userID, "Backend Engineer", domain.InterviewDifficultyMid, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "PostgreSQL"}, generator.lastSkills)
	})

	t.Run("fallback questions when generation fails", func(t *testing.T) {
		t.Parallel()
		generator := &stubGenerator{err: generation.ErrGenerationFailed}
		svc := NewInterviewService(newFakeInterviewStore(), newFakeProfileStore(), generator, slog.Default())

		session, questions, err := svc.StartSession(ctx, userID, "Data Scientist", domain.InterviewDifficultySenior, 3)
		require.NoError(t, err, "generation failure must not fail the session")

		assert.Empty(t, session.Provider)
		require.Len(t, questions, 3)
		for _, q := range questions {
			assert.Equal(t, domain.QuestionSourceFallback, q.Source)
			assert.NotEmpty(t, q.Text)
		}
		assert.Contains(t, questions[0].Text, "Data Scientist")
	})

	t.Run("difficulty defaults to mid", func(t *testing.T) {
		t.Parallel()
		generator := &stubGenerator{questions: []generation.QuestionDraft{{Text: "q"}}}
		svc := NewInterviewService(newFakeInterviewStore(), newFakeProfileStore(), generator, slog.Default())

		session, _, err := svc.StartSession(ctx, userID, "Backend Engineer", "", 1)
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewDifficultyMid, session.Difficulty)
	})

	t.Run("empty role rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewInterviewService(newFakeInterviewStore(), newFakeProfileStore(), &stubGenerator{}, slog.Default())

		_, _, err := svc.StartSession(ctx, userID, "", domain.InterviewDifficultyMid, 1)
		assert.ErrorIs(t, err, domain.ErrEmptySessionRole)
	})
}

func TestInterviewServiceGetSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	generator := &stubGenerator{questions: []generation.QuestionDraft{{Text: "q"}}}
	interviews := newFakeInterviewStore()
	svc := NewInterviewService(interviews, newFakeProfileStore(), generator, slog.Default())

	session, _, err := svc.StartSession(ctx, userID, "Backend Engineer", domain.InterviewDifficultyMid, 1)
	require.NoError(t, err)

	t.Run("owner can read", func(t *testing.T) {
		t.Parallel()
		got, questions, err := svc.GetSession(ctx, userID, session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.ID, got.ID)
		assert.Len(t, questions, 1)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		t.Parallel()
		_, _, err := svc.GetSession(ctx, uuid.New(), session.ID)
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("unknown session", func(t *testing.T) {
		t.Parallel()
		_, _, err := svc.GetSession(ctx, userID, uuid.New())
		assert.ErrorIs(t, err, store.ErrSessionNotFound)
	})
}

func TestInterviewServiceEvaluateAnswer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	setup := func(t *testing.T, generator *stubGenerator) (InterviewService, *domain.Question) {
		t.Helper()
		interviews := newFakeInterviewStore()
		svc := NewInterviewService(interviews, newFakeProfileStore(), generator, slog.Default())

		generator.questions = []generation.QuestionDraft{{Text: "What is a goroutine?"}}
		_, questions, err := svc.StartSession(ctx, userID, "Backend Engineer", domain.InterviewDifficultyMid, 1)
		require.NoError(t, err)
		return svc, questions[0]
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		generator := &stubGenerator{
			evaluation: &generation.EvaluationDraft{
				Score:        7,
				Strengths:    []string{"accurate"},
				Improvements: []string{"mention scheduling"},
			},
			prov: generation.Provenance{Provider: "gemini", Model: "gemini-2.0-flash"},
		}
		svc, question := setup(t, generator)

		evaluation, err := svc.EvaluateAnswer(ctx, userID, question.ID, "A lightweight thread managed by the runtime.")
		require.NoError(t, err)

		assert.Equal(t, 7, evaluation.Score)
		assert.Equal(t, "gemini", evaluation.Provider)
		assert.Equal(t, "Backend Engineer", generator.lastRole)

		stored, err := svc.SessionEvaluations(ctx, userID, question.SessionID)
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		t.Parallel()
		svc, question := setup(t, &stubGenerator{evaluation: &generation.EvaluationDraft{Score: 5}})

		_, err := svc.EvaluateAnswer(ctx, uuid.New(), question.ID, "answer")
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("generation exhaustion surfaces as unavailable", func(t *testing.T) {
		t.Parallel()
		generator := &stubGenerator{}
		svc, question := setup(t, generator)

		generator.err = generation.ErrGenerationFailed
		_, err := svc.EvaluateAnswer(ctx, userID, question.ID, "answer")
		assert.ErrorIs(t, err, ErrGenerationUnavailable)
	})

	t.Run("unknown question", func(t *testing.T) {
		t.Parallel()
		svc, _ := setup(t, &stubGenerator{evaluation: &generation.EvaluationDraft{Score: 5}})

		_, err := svc.EvaluateAnswer(ctx, userID, uuid.New(), "answer")
		assert.ErrorIs(t, err, store.ErrQuestionNotFound)
	})
}
