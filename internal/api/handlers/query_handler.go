package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/skyops/aeroops-be/internal/services"
)

// QueryHandler handles keyword-query requests.
type QueryHandler struct {
	service services.QueryServiceProvider
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(service services.QueryServiceProvider) *QueryHandler {
	return &QueryHandler{service: service}
}

// Query answers a free-text question with the keyword rules.
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Answer(r.Context(), payload.Query)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
