package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"moviemagic/internal/repository"
)

type ProfileHandler struct {
	profiles repository.ProfileRepository
	logger   *logrus.Logger
}

func NewProfileHandler(profiles repository.ProfileRepository, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// Get handles GET /profile, always scoped to the caller's own row.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.GetByID(r.Context(), principal.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.logger.WithError(err).Error("Error fetching profile")
		}
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

type profileRequest struct {
	Username string `json:"username"`
}

// Update handles PUT /profile. Ownership is implicit: the row addressed is
// the principal's own, nothing in the body can point it elsewhere.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	profile, err := h.profiles.UpdateUsername(r.Context(), principal.ID, req.Username)
	if err != nil {
		h.logger.WithError(err).Error("Error updating profile")
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
