package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/llm"
)

// Default question count bounds for one interview session.
const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 15
)

// TextGenerator is the slice of the llm gateway the generator depends on.
// Keeping it an interface lets tests script model output without any
// provider wiring.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts llm.Options) (*llm.Result, error)
}

// Provenance records which provider and concrete model produced a piece of
// generated content. It travels with the content into storage so results
// remain attributable.
type Provenance struct {
	Provider string
	Model    string
}

// QuestionDraft is one generated interview question before it becomes a
// persisted domain.Question.
type QuestionDraft struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// EvaluationDraft is the parsed assessment of a candidate answer.
type EvaluationDraft struct {
	Score        int      `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// RecommendationDraft is one generated career suggestion before it becomes
// a persisted domain.Recommendation.
type RecommendationDraft struct {
	Title           string   `json:"title"`
	FitScore        int      `json:"fit_score"`
	Reasoning       string   `json:"reasoning"`
	SuggestedSkills []string `json:"suggested_skills"`
}

// Generator produces career-coaching content through a text-generation
// gateway. It is stateless and safe for concurrent use.
type Generator struct {
	llm    TextGenerator
	logger *slog.Logger
}

// NewGenerator creates a Generator over the given text-generation gateway.
func NewGenerator(textGen TextGenerator, logger *slog.Logger) (*Generator, error) {
	if textGen == nil {
		return nil, fmt.Errorf("text generator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{llm: textGen, logger: logger}, nil
}

// InterviewQuestions generates count questions for the given role and
// difficulty. Count is clamped to [1, MaxQuestionCount], defaulting to
// DefaultQuestionCount when zero or negative.
func (g *Generator) InterviewQuestions(ctx context.Context, role string, difficulty domain.InterviewDifficulty, count int, skills []string) ([]QuestionDraft, Provenance, error) {
	if count <= 0 {
		count = DefaultQuestionCount
	}
	if count > MaxQuestionCount {
		count = MaxQuestionCount
	}

	prompt, err := renderPrompt(interviewQuestionsTmpl, struct {
		Role       string
		Difficulty domain.InterviewDifficulty
		Count      int
		Skills     []string
	}{role, difficulty, count, skills})
	if err != nil {
		return nil, Provenance{}, err
	}

	result, err := g.llm.Generate(ctx, prompt, llm.Options{})
	if err != nil {
		return nil, Provenance{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	prov := provenanceOf(result)

	var drafts []QuestionDraft
	if err := decodeModelJSON(result.Text, &drafts); err != nil {
		return nil, prov, err
	}

	drafts = compactQuestions(drafts)
	if len(drafts) == 0 {
		return nil, prov, fmt.Errorf("%w: no usable questions in response", ErrInvalidResponse)
	}
	if len(drafts) > count {
		drafts = drafts[:count]
	}

	g.logger.DebugContext(ctx, "generated interview questions",
		slog.String("role", role),
		slog.String("provider", prov.Provider),
		slog.Int("count", len(drafts)))
	return drafts, prov, nil
}

// EvaluateAnswer scores a candidate's answer to one interview question.
// The score is clamped into [0, 10]. A low temperature keeps scoring
// consistent across calls.
func (g *Generator) EvaluateAnswer(ctx context.Context, role, question, answer string) (*EvaluationDraft, Provenance, error) {
	prompt, err := renderPrompt(evaluationTmpl, struct {
		Role     string
		Question string
		Answer   string
	}{role, question, answer})
	if err != nil {
		return nil, Provenance{}, err
	}

	result, err := g.llm.Generate(ctx, prompt, llm.Options{Temperature: llm.Float64(0.3)})
	if err != nil {
		return nil, Provenance{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	prov := provenanceOf(result)

	var draft EvaluationDraft
	if err := decodeModelJSON(result.Text, &draft); err != nil {
		return nil, prov, err
	}
	draft.Score = clamp(draft.Score, 0, 10)
	return &draft, prov, nil
}

// Recommendations generates count career suggestions from a profile.
// Fit scores are clamped into [0, 100].
func (g *Generator) Recommendations(ctx context.Context, profile *domain.Profile, count int) ([]RecommendationDraft, Provenance, error) {
	if count <= 0 {
		count = 3
	}

	prompt, err := renderPrompt(recommendationsTmpl, struct {
		Profile *domain.Profile
		Count   int
	}{profile, count})
	if err != nil {
		return nil, Provenance{}, err
	}

	result, err := g.llm.Generate(ctx, prompt, llm.Options{})
	if err != nil {
		return nil, Provenance{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	prov := provenanceOf(result)

	var drafts []RecommendationDraft
	if err := decodeModelJSON(result.Text, &drafts); err != nil {
		return nil, prov, err
	}

	kept := drafts[:0]
	for _, d := range drafts {
		if strings.TrimSpace(d.Title) == "" {
			continue
		}
		d.FitScore = clamp(d.FitScore, 0, 100)
		kept = append(kept, d)
	}
	if len(kept) == 0 {
		return nil, prov, fmt.Errorf("%w: no usable recommendations in response", ErrInvalidResponse)
	}
	return kept, prov, nil
}

// AnalyzeResume reviews resume text against an optional target role.
// The overall score is clamped into [0, 100].
func (g *Generator) AnalyzeResume(ctx context.Context, text, targetRole string) (*domain.ResumeAnalysis, Provenance, error) {
	prompt, err := renderPrompt(resumeAnalysisTmpl, struct {
		Text       string
		TargetRole string
	}{text, targetRole})
	if err != nil {
		return nil, Provenance{}, err
	}

	result, err := g.llm.Generate(ctx, prompt, llm.Options{Temperature: llm.Float64(0.3), MaxTokens: llm.Int(2048)})
	if err != nil {
		return nil, Provenance{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	prov := provenanceOf(result)

	var analysis domain.ResumeAnalysis
	if err := decodeModelJSON(result.Text, &analysis); err != nil {
		return nil, prov, err
	}
	analysis.OverallScore = clamp(analysis.OverallScore, 0, 100)
	return &analysis, prov, nil
}

// CoachReply produces the assistant's next turn in a coaching
// conversation. The reply is plain text, not JSON.
func (g *Generator) CoachReply(ctx context.Context, profile *domain.Profile, history []*domain.ChatMessage) (string, Provenance, error) {
	prompt, err := renderPrompt(coachReplyTmpl, struct {
		Profile *domain.Profile
		History []*domain.ChatMessage
	}{profile, history})
	if err != nil {
		return "", Provenance{}, err
	}

	result, err := g.llm.Generate(ctx, prompt, llm.Options{})
	if err != nil {
		return "", Provenance{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	prov := provenanceOf(result)

	reply := strings.TrimSpace(result.Text)
	if reply == "" {
		return "", prov, fmt.Errorf("%w: empty reply", ErrInvalidResponse)
	}
	return reply, prov, nil
}

// compactQuestions drops drafts without question text.
func compactQuestions(drafts []QuestionDraft) []QuestionDraft {
	kept := drafts[:0]
	for _, d := range drafts {
		d.Text = strings.TrimSpace(d.Text)
		if d.Text == "" {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

func provenanceOf(result *llm.Result) Provenance {
	return Provenance{Provider: string(result.Provider), Model: result.Model}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
