package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"moviemagic/internal/auth"
	"moviemagic/internal/logger"
	"moviemagic/internal/repository"
	"moviemagic/internal/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Get().WithError(err).Error("Failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeStoreError maps a repository failure onto the response. Absent rows
// get a 404; anything else keeps the store's own message with a 400, which
// is what clients of the original API expect.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingCredential):
		writeError(w, http.StatusUnauthorized, "No token provided")
	case errors.Is(err, auth.ErrInvalidCredential):
		writeError(w, http.StatusUnauthorized, "Invalid token")
	default:
		writeError(w, http.StatusUnauthorized, "Invalid token")
	}
}

func writeBridgeError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrBridge) {
		writeError(w, http.StatusInternalServerError, "External catalog unavailable")
		return
	}
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
