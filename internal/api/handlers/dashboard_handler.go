package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skyops/aeroops-be/internal/services"
)

// DashboardHandler handles HTTP requests for dashboard metrics and reports.
type DashboardHandler struct {
	service services.StatsServiceProvider
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service services.StatsServiceProvider) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetStats handles the request for the dashboard headline metrics.
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetDashboardStats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetReport handles the request for a per-record-type report summary.
func (h *DashboardHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetReport(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
