package api

import (
	"net/http"

	"github.com/careergenie/careergenie-api/internal/api/shared"
	"github.com/careergenie/careergenie-api/internal/service"
)

// ChatHandler handles coaching chat API requests.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler with the given dependencies.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// StartSession handles POST /chat/sessions.
func (h *ChatHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	session, err := h.chatService.StartSession(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, session)
}

// SendMessage handles POST /chat/sessions/{sessionID}/messages and returns
// the coach's reply.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	var req SendChatMessageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	reply, err := h.chatService.SendMessage(r.Context(), userID, sessionID, req.Content)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, reply)
}

// History handles GET /chat/sessions/{sessionID}/messages.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	messages, err := h.chatService.History(r.Context(), userID, sessionID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, messages)
}
