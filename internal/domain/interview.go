package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// InterviewDifficulty represents the requested difficulty of a practice
// interview session.
type InterviewDifficulty string

// Possible interview difficulty values
const (
	InterviewDifficultyJunior InterviewDifficulty = "junior"
	InterviewDifficultyMid    InterviewDifficulty = "mid"
	InterviewDifficultySenior InterviewDifficulty = "senior"
)

// QuestionSource identifies how a question was produced.
type QuestionSource string

// Possible question source values. Fallback questions are served when no
// generation provider could answer.
const (
	QuestionSourceGenerated QuestionSource = "generated"
	QuestionSourceFallback  QuestionSource = "fallback"
)

// Common validation errors for interview entities
var (
	ErrEmptySessionID          = errors.New("interview session ID cannot be empty")
	ErrEmptySessionUserID      = errors.New("interview session user ID cannot be empty")
	ErrEmptySessionRole        = errors.New("interview session role cannot be empty")
	ErrInvalidDifficulty       = errors.New("invalid interview difficulty")
	ErrEmptyQuestionID         = errors.New("question ID cannot be empty")
	ErrEmptyQuestionText       = errors.New("question text cannot be empty")
	ErrInvalidQuestionSource   = errors.New("invalid question source")
	ErrEmptyEvaluationID       = errors.New("evaluation ID cannot be empty")
	ErrEmptyEvaluationAnswer   = errors.New("evaluation answer cannot be empty")
	ErrEvaluationScoreOutRange = errors.New("evaluation score must be between 0 and 10")
)

// InterviewSession groups the questions generated for one practice run
// against a specific role.
type InterviewSession struct {
	ID         uuid.UUID           `json:"id"`
	UserID     uuid.UUID           `json:"user_id"`
	Role       string              `json:"role"`
	Difficulty InterviewDifficulty `json:"difficulty"`
	Provider   string              `json:"provider,omitempty"` // which generation provider produced the questions
	Model      string              `json:"model,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// NewInterviewSession creates a new InterviewSession for the given user and
// role. Difficulty defaults to mid when empty.
func NewInterviewSession(userID uuid.UUID, role string, difficulty InterviewDifficulty) (*InterviewSession, error) {
	if difficulty == "" {
		difficulty = InterviewDifficultyMid
	}

	session := &InterviewSession{
		ID:         uuid.New(),
		UserID:     userID,
		Role:       role,
		Difficulty: difficulty,
		CreatedAt:  time.Now().UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the InterviewSession has valid data.
func (s *InterviewSession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySessionID
	}
	if s.UserID == uuid.Nil {
		return ErrEmptySessionUserID
	}
	if s.Role == "" {
		return ErrEmptySessionRole
	}
	switch s.Difficulty {
	case InterviewDifficultyJunior, InterviewDifficultyMid, InterviewDifficultySenior:
	default:
		return ErrInvalidDifficulty
	}
	return nil
}

// Question is a single interview question within a session.
type Question struct {
	ID        uuid.UUID      `json:"id"`
	SessionID uuid.UUID      `json:"session_id"`
	Position  int            `json:"position"`
	Text      string         `json:"text"`
	Category  string         `json:"category,omitempty"`
	Source    QuestionSource `json:"source"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewQuestion creates a new Question within the given session.
func NewQuestion(sessionID uuid.UUID, position int, text, category string, source QuestionSource) (*Question, error) {
	question := &Question{
		ID:        uuid.New(),
		SessionID: sessionID,
		Position:  position,
		Text:      text,
		Category:  category,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}

	if err := question.Validate(); err != nil {
		return nil, err
	}

	return question, nil
}

// Validate checks if the Question has valid data.
func (q *Question) Validate() error {
	if q.ID == uuid.Nil {
		return ErrEmptyQuestionID
	}
	if q.SessionID == uuid.Nil {
		return ErrEmptySessionID
	}
	if q.Text == "" {
		return ErrEmptyQuestionText
	}
	switch q.Source {
	case QuestionSourceGenerated, QuestionSourceFallback:
	default:
		return ErrInvalidQuestionSource
	}
	return nil
}

// Evaluation is the model-produced assessment of a user's answer to one
// interview question.
type Evaluation struct {
	ID           uuid.UUID `json:"id"`
	QuestionID   uuid.UUID `json:"question_id"`
	Answer       string    `json:"answer"`
	Score        int       `json:"score"` // 0-10
	Strengths    []string  `json:"strengths"`
	Improvements []string  `json:"improvements"`
	Provider     string    `json:"provider,omitempty"`
	Model        string    `json:"model,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewEvaluation creates a new Evaluation for the given question and answer.
func NewEvaluation(questionID uuid.UUID, answer string, score int, strengths, improvements []string) (*Evaluation, error) {
	evaluation := &Evaluation{
		ID:           uuid.New(),
		QuestionID:   questionID,
		Answer:       answer,
		Score:        score,
		Strengths:    strengths,
		Improvements: improvements,
		CreatedAt:    time.Now().UTC(),
	}

	if err := evaluation.Validate(); err != nil {
		return nil, err
	}

	return evaluation, nil
}

// Validate checks if the Evaluation has valid data.
func (e *Evaluation) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEvaluationID
	}
	if e.QuestionID == uuid.Nil {
		return ErrEmptyQuestionID
	}
	if e.Answer == "" {
		return ErrEmptyEvaluationAnswer
	}
	if e.Score < 0 || e.Score > 10 {
		return ErrEvaluationScoreOutRange
	}
	return nil
}
