package api

import (
	"errors"
	"net/http"

	"github.com/careergenie/careergenie-api/internal/api/shared"
	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/service"
)

// ProfileHandler handles career profile API requests.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler with the given dependencies.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// Update handles PUT /profile, creating the profile if none exists.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile, err := h.profileService.Update(r.Context(), userID, service.ProfileUpdate{
		FullName:        req.FullName,
		Headline:        req.Headline,
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
		Education:       req.Education,
		TargetRole:      req.TargetRole,
		Bio:             req.Bio,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyFullName) || errors.Is(err, domain.ErrNegativeExperience) {
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}
