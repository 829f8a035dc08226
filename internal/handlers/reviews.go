package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"moviemagic/internal/auth"
	"moviemagic/internal/models"
	"moviemagic/internal/repository"
)

type ReviewHandler struct {
	reviews repository.ReviewRepository
	logger  *logrus.Logger
}

func NewReviewHandler(reviews repository.ReviewRepository, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

type reviewRequest struct {
	MediaID    int64  `json:"media_id"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
}

func (req *reviewRequest) validate() string {
	if req.MediaID == 0 {
		return "media_id is required"
	}
	if req.Rating < 1 || req.Rating > 10 {
		return "rating must be between 1 and 10"
	}
	if req.ReviewText == "" {
		return "review_text is required"
	}
	return ""
}

// Create handles POST /reviews. The review's owner is always the verified
// principal; a user_id in the body is ignored.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.reviews.Create(r.Context(), &models.Review{
		MediaID:    req.MediaID,
		UserID:     principal.ID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		h.logger.WithError(err).Error("Error creating review")
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// ListByMedia handles GET /media/{id}/reviews, embedding each author's
// username.
func (h *ReviewHandler) ListByMedia(w http.ResponseWriter, r *http.Request) {
	mediaID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	reviews, err := h.reviews.ListByMedia(r.Context(), mediaID)
	if err != nil {
		h.logger.WithError(err).Error("Error listing reviews")
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// Update handles PUT /reviews/{id}. The owner id comes from the stored row,
// fetched before the mutation; a row deleted in between surfaces as 404.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rating < 1 || req.Rating > 10 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 10")
		return
	}
	if req.ReviewText == "" {
		writeError(w, http.StatusBadRequest, "review_text is required")
		return
	}

	stored, err := h.reviews.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if err := auth.RequireOwner(principal, stored.UserID); err != nil {
		writeError(w, http.StatusForbidden, "Unauthorized: Not your review")
		return
	}

	updated, err := h.reviews.Update(r.Context(), id, req.Rating, req.ReviewText)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.logger.WithError(err).Error("Error updating review")
		}
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /reviews/{id} with the same fetch-then-authorize
// sequence as Update.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	stored, err := h.reviews.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if err := auth.RequireOwner(principal, stored.UserID); err != nil {
		writeError(w, http.StatusForbidden, "Unauthorized: Not your review")
		return
	}

	if err := h.reviews.Delete(r.Context(), id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.logger.WithError(err).Error("Error deleting review")
		}
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}
