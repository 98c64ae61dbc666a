package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skyops/aeroops-be/internal/auth"
	"github.com/skyops/aeroops-be/internal/models"
	"github.com/skyops/aeroops-be/internal/services"
)

// IncidentHandler handles HTTP requests for safety incident reports.
type IncidentHandler struct {
	service services.IncidentServiceProvider
}

// NewIncidentHandler creates a new IncidentHandler.
func NewIncidentHandler(service services.IncidentServiceProvider) *IncidentHandler {
	return &IncidentHandler{service: service}
}

// GetAll handles the request to get all incident reports. Pass ?critical=true
// for Major and Critical incidents only.
func (h *IncidentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	var (
		records []models.Incident
		err     error
	)
	if r.URL.Query().Get("critical") == "true" {
		records, err = h.service.GetCriticalIncidents(r.Context())
	} else {
		records, err = h.service.GetAllIncidents(r.Context())
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Get handles the request to get a single incident report.
func (h *IncidentHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.GetIncidentByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// Create handles the request to file a new incident report.
func (h *IncidentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var record models.Incident
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if user, ok := auth.SessionUser(r.Context()); ok {
		record.CreatedBy = user.Username
	}

	created, err := h.service.CreateIncident(r.Context(), record)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update handles the request to update an existing incident report.
func (h *IncidentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var record models.Incident
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateIncident(r.Context(), chi.URLParam(r, "id"), record)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete an incident report.
func (h *IncidentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteIncident(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
