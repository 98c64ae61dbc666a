package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/skyops/aeroops-be/internal/services"
)

// DemoHandler handles demo-data seeding requests.
type DemoHandler struct {
	service services.DemoServiceProvider
}

// NewDemoHandler creates a new DemoHandler.
func NewDemoHandler(service services.DemoServiceProvider) *DemoHandler {
	return &DemoHandler{service: service}
}

// Seed fills the record tables with sample data when they are empty.
func (h *DemoHandler) Seed(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.SeedDemoData(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Demo seed failed")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"created": created})
}
