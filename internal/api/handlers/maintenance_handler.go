package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skyops/aeroops-be/internal/auth"
	"github.com/skyops/aeroops-be/internal/models"
	"github.com/skyops/aeroops-be/internal/services"
)

// MaintenanceHandler handles HTTP requests for maintenance records.
type MaintenanceHandler struct {
	service services.MaintenanceServiceProvider
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(service services.MaintenanceServiceProvider) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// GetAll handles the request to get all maintenance records.
func (h *MaintenanceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.GetAllMaintenance(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Get handles the request to get a single maintenance record.
func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.GetMaintenanceByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// Create handles the request to create a new maintenance record.
func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var record models.Maintenance
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if user, ok := auth.SessionUser(r.Context()); ok {
		record.CreatedBy = user.Username
	}

	created, err := h.service.CreateMaintenance(r.Context(), record)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update handles the request to update an existing maintenance record.
func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var record models.Maintenance
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateMaintenance(r.Context(), chi.URLParam(r, "id"), record)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a maintenance record.
func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMaintenance(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
