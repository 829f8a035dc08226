package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"moviemagic/internal/repository"
)

type TrendingHandler struct {
	trending repository.TrendingRepository
	logger   *logrus.Logger
}

func NewTrendingHandler(trending repository.TrendingRepository, logger *logrus.Logger) *TrendingHandler {
	return &TrendingHandler{trending: trending, logger: logger}
}

// List handles GET /trending?type=. Newest entries first, never more than
// 20 rows, each with its media item embedded.
func (h *TrendingHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.trending.List(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		h.logger.WithError(err).Error("Error listing trending")
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
