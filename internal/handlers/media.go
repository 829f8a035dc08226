package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"moviemagic/internal/models"
	"moviemagic/internal/repository"
)

type MediaHandler struct {
	media  repository.MediaRepository
	logger *logrus.Logger
}

func NewMediaHandler(media repository.MediaRepository, logger *logrus.Logger) *MediaHandler {
	return &MediaHandler{media: media, logger: logger}
}

// Search handles GET /media/search?title=&type=&page=&per_page=
func (h *MediaHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := ResolvePage(query.Get("page"), query.Get("per_page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mediaType := query.Get("type")
	if mediaType != "" && !models.ValidMediaType(mediaType) {
		writeError(w, http.StatusBadRequest, "type must be 'movie' or 'tv'")
		return
	}

	results, err := h.media.Search(r.Context(), repository.MediaSearch{
		Title:  query.Get("title"),
		Type:   mediaType,
		Offset: page.Offset(),
		Limit:  page.Limit(),
	})
	if err != nil {
		h.logger.WithError(err).Error("Error searching media")
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// Get handles GET /media/{id}
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	item, err := h.media.GetByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.logger.WithError(err).Error("Error fetching media")
		}
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}
