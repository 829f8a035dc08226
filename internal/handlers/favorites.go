package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"moviemagic/internal/repository"
)

type FavoriteHandler struct {
	favorites repository.FavoriteRepository
	logger    *logrus.Logger
}

func NewFavoriteHandler(favorites repository.FavoriteRepository, logger *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

type favoriteRequest struct {
	MediaID int64 `json:"media_id"`
}

// Add handles POST /favorites. The owning user is the verified principal;
// favoriting the same media twice returns the existing row.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	principal, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MediaID == 0 {
		writeError(w, http.StatusBadRequest, "media_id is required")
		return
	}

	favorite, err := h.favorites.Add(r.Context(), principal.ID, req.MediaID)
	if err != nil {
		h.logger.WithError(err).Error("Error adding favorite")
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favorite)
}

// List handles GET /favorites, newest first with media embedded.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	favorites, err := h.favorites.ListByUser(r.Context(), principal.ID)
	if err != nil {
		h.logger.WithError(err).Error("Error listing favorites")
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favorites)
}

// Remove handles DELETE /favorites/{media_id}. Deleting a favorite the user
// never had still answers 200; the delete is idempotent.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	principal, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	mediaID, err := pathID(r, "media_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "media_id must be an integer")
		return
	}

	if _, err := h.favorites.Remove(r.Context(), principal.ID, mediaID); err != nil {
		h.logger.WithError(err).Error("Error removing favorite")
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Favorite removed successfully"})
}
