package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/careergenie/careergenie-api/internal/api/shared"
	"github.com/careergenie/careergenie-api/internal/platform/logger"
	"github.com/careergenie/careergenie-api/internal/platform/pdfrender"
	"github.com/careergenie/careergenie-api/internal/service"
)

// ResumeHandler handles resume submission, retrieval, and PDF export.
type ResumeHandler struct {
	resumeService service.ResumeService
	renderer      pdfrender.Renderer
}

// NewResumeHandler creates a new ResumeHandler with the given dependencies.
func NewResumeHandler(resumeService service.ResumeService, renderer pdfrender.Renderer) *ResumeHandler {
	return &ResumeHandler{
		resumeService: resumeService,
		renderer:      renderer,
	}
}

// Submit handles POST /resumes. The resume is stored immediately and
// analyzed in the background; the response carries the pending resume.
func (h *ResumeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SubmitResumeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	resume, err := h.resumeService.Submit(r.Context(), userID, req.Title, req.Text, req.TargetRole)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, resume)
}

// Get handles GET /resumes/{resumeID}, including any stored analysis.
func (h *ResumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	resumeID, ok := pathUUID(w, r, "resumeID")
	if !ok {
		return
	}

	resume, err := h.resumeService.Get(r.Context(), userID, resumeID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resume)
}

// DownloadPDF handles GET /resumes/{resumeID}/pdf, rendering the resume
// and its analysis as a printable document.
func (h *ResumeHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	resumeID, ok := pathUUID(w, r, "resumeID")
	if !ok {
		return
	}

	resume, err := h.resumeService.Get(r.Context(), userID, resumeID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	pdf, err := h.renderer.RenderResume(r.Context(), resume)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to render resume PDF",
			slog.String("error", err.Error()),
			slog.String("resume_id", resumeID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to render PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "resume-"+resumeID.String()+".pdf"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		logger.FromContext(r.Context()).Error("failed to write PDF response",
			slog.String("error", err.Error()))
	}
}
