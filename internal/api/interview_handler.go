package api

import (
	"net/http"

	"github.com/careergenie/careergenie-api/internal/api/shared"
	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/service"
)

// InterviewHandler handles interview practice API requests.
type InterviewHandler struct {
	interviewService service.InterviewService
}

// NewInterviewHandler creates a new InterviewHandler with the given
// dependencies.
func NewInterviewHandler(interviewService service.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
	}
}

// StartSession handles POST /interviews.
func (h *InterviewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req StartInterviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, questions, err := h.interviewService.StartSession(
		r.Context(), userID, req.Role, domain.InterviewDifficulty(req.Difficulty), req.QuestionCount)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, InterviewSessionResponse{
		Session:   session,
		Questions: questions,
	})
}

// GetSession handles GET /interviews/{sessionID}.
func (h *InterviewHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	session, questions, err := h.interviewService.GetSession(r.Context(), userID, sessionID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, InterviewSessionResponse{
		Session:   session,
		Questions: questions,
	})
}

// SubmitAnswer handles POST /interviews/questions/{questionID}/answers.
func (h *InterviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	questionID, ok := pathUUID(w, r, "questionID")
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	evaluation, err := h.interviewService.EvaluateAnswer(r.Context(), userID, questionID, req.Answer)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, evaluation)
}

// ListEvaluations handles GET /interviews/{sessionID}/evaluations.
func (h *InterviewHandler) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	evaluations, err := h.interviewService.SessionEvaluations(r.Context(), userID, sessionID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if evaluations == nil {
		evaluations = []*domain.Evaluation{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, evaluations)
}
