package api

import (
	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest defines the payload for creating or replacing the
// caller's career profile.
type UpdateProfileRequest struct {
	FullName        string   `json:"full_name"        validate:"required,max=200"`
	Headline        string   `json:"headline"         validate:"max=200"`
	Skills          []string `json:"skills"           validate:"dive,max=100"`
	ExperienceYears int      `json:"experience_years" validate:"min=0,max=80"`
	Education       string   `json:"education"        validate:"max=500"`
	TargetRole      string   `json:"target_role"      validate:"max=200"`
	Bio             string   `json:"bio"              validate:"max=4000"`
}

// StartInterviewRequest defines the payload for starting a practice
// interview session.
type StartInterviewRequest struct {
	Role          string `json:"role"           validate:"required,max=200"`
	Difficulty    string `json:"difficulty"     validate:"omitempty,oneof=junior mid senior"`
	QuestionCount int    `json:"question_count" validate:"min=0,max=15"`
}

// InterviewSessionResponse bundles a session with its questions.
type InterviewSessionResponse struct {
	Session   *domain.InterviewSession `json:"session"`
	Questions []*domain.Question       `json:"questions"`
}

// SubmitAnswerRequest defines the payload for answering one interview
// question.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required,max=10000"`
}

// SubmitResumeRequest defines the payload for submitting a resume for
// background analysis.
type SubmitResumeRequest struct {
	Title      string `json:"title"       validate:"max=200"`
	Text       string `json:"text"        validate:"required,max=50000"`
	TargetRole string `json:"target_role" validate:"max=200"`
}

// SendChatMessageRequest defines the payload for one coaching chat turn.
type SendChatMessageRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}
