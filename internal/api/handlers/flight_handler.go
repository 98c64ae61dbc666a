package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skyops/aeroops-be/internal/auth"
	"github.com/skyops/aeroops-be/internal/models"
	"github.com/skyops/aeroops-be/internal/services"
)

// FlightHandler handles HTTP requests for flight records.
type FlightHandler struct {
	service services.FlightServiceProvider
}

// NewFlightHandler creates a new FlightHandler.
func NewFlightHandler(service services.FlightServiceProvider) *FlightHandler {
	return &FlightHandler{service: service}
}

// GetAll handles the request to get all flights.
func (h *FlightHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.GetAllFlights(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Get handles the request to get a single flight.
func (h *FlightHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.GetFlightByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// Create handles the request to schedule a new flight.
func (h *FlightHandler) Create(w http.ResponseWriter, r *http.Request) {
	var record models.Flight
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if user, ok := auth.SessionUser(r.Context()); ok {
		record.CreatedBy = user.Username
	}

	created, err := h.service.CreateFlight(r.Context(), record)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update handles the request to update an existing flight.
func (h *FlightHandler) Update(w http.ResponseWriter, r *http.Request) {
	var record models.Flight
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateFlight(r.Context(), chi.URLParam(r, "id"), record)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a flight.
func (h *FlightHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteFlight(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
