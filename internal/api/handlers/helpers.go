package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skyops/aeroops-be/internal/services"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// The error message is passed through: the services already phrase their
// errors for the caller (and keep credential failures undifferentiated).
func respondServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrDuplicateIdentity):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidToken):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrTokenExpired):
		status = http.StatusGone
	case errors.Is(err, services.ErrBackendUnavailable):
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
