package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"moviemagic/internal/models"
)

// CatalogDetail is the slice of the TMDB client the external routes need.
type CatalogDetail interface {
	Detail(ctx context.Context, mediaType string, tmdbID int64) (*models.TMDBDetail, error)
}

type ExternalHandler struct {
	catalog CatalogDetail
	logger  *logrus.Logger
}

func NewExternalHandler(catalog CatalogDetail, logger *logrus.Logger) *ExternalHandler {
	return &ExternalHandler{catalog: catalog, logger: logger}
}

// MovieDetail handles GET /movies/external/{id}
func (h *ExternalHandler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	h.detail(w, r, string(models.MediaTypeMovie))
}

// TVDetail handles GET /tv/external/{id}
func (h *ExternalHandler) TVDetail(w http.ResponseWriter, r *http.Request) {
	h.detail(w, r, string(models.MediaTypeTV))
}

func (h *ExternalHandler) detail(w http.ResponseWriter, r *http.Request, mediaType string) {
	tmdbID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	detail, err := h.catalog.Detail(r.Context(), mediaType, tmdbID)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"type":    mediaType,
			"tmdb_id": tmdbID,
		}).Error("Error fetching catalog detail")
		writeBridgeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}
