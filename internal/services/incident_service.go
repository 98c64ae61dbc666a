package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skyops/aeroops-be/internal/models"
	"github.com/skyops/aeroops-be/internal/store"
)

const incidentsTable = "safety_incidents"

// IncidentServiceProvider defines the interface for safety incident records.
type IncidentServiceProvider interface {
	CreateIncident(ctx context.Context, in models.Incident) (models.Incident, error)
	GetIncidentByID(ctx context.Context, id string) (models.Incident, error)
	GetAllIncidents(ctx context.Context) ([]models.Incident, error)
	GetCriticalIncidents(ctx context.Context) ([]models.Incident, error)
	UpdateIncident(ctx context.Context, id string, in models.Incident) (models.Incident, error)
	DeleteIncident(ctx context.Context, id string) error
}

// IncidentService provides business logic for safety incident reports.
type IncidentService struct {
	store  store.RecordStore
	events EventServiceProvider
}

// NewIncidentService creates a new IncidentService.
func NewIncidentService(st store.RecordStore, events EventServiceProvider) *IncidentService {
	return &IncidentService{store: st, events: events}
}

// CreateIncident validates and persists a new incident report. Major and
// Critical incidents raise a warn-level event.
func (s *IncidentService) CreateIncident(ctx context.Context, in models.Incident) (models.Incident, error) {
	if in.IncidentType == "" {
		return models.Incident{}, fmt.Errorf("%w: incident type is required", ErrInvalidInput)
	}

	in.ID = uuid.New().String()
	in.CreatedAt = time.Now().UTC()

	if _, err := s.store.Insert(ctx, incidentsTable, incidentToRow(in)); err != nil {
		return models.Incident{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if s.events != nil {
		level := "info"
		if in.IsCritical() {
			level = "warn"
		}
		msg := fmt.Sprintf("%s incident reported: %s.", in.Severity, in.IncidentType)
		_ = s.events.CreateEvent(ctx, "incident.create", level, msg, &in.CreatedBy)
	}
	return in, nil
}

// GetIncidentByID retrieves a single incident report.
func (s *IncidentService) GetIncidentByID(ctx context.Context, id string) (models.Incident, error) {
	row, err := s.store.FindOne(ctx, incidentsTable, store.Row{"id": id})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Incident{}, fmt.Errorf("%w: incident %s", ErrNotFound, id)
		}
		return models.Incident{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return incidentFromRow(row), nil
}

// GetAllIncidents retrieves every incident report.
func (s *IncidentService) GetAllIncidents(ctx context.Context) ([]models.Incident, error) {
	rows, err := s.store.Find(ctx, incidentsTable, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	out := make([]models.Incident, 0, len(rows))
	for _, row := range rows {
		out = append(out, incidentFromRow(row))
	}
	return out, nil
}

// GetCriticalIncidents retrieves Major and Critical incidents.
func (s *IncidentService) GetCriticalIncidents(ctx context.Context) ([]models.Incident, error) {
	all, err := s.GetAllIncidents(ctx)
	if err != nil {
		return nil, err
	}
	var critical []models.Incident
	for _, in := range all {
		if in.IsCritical() {
			critical = append(critical, in)
		}
	}
	return critical, nil
}

// UpdateIncident replaces the mutable fields of an existing report.
func (s *IncidentService) UpdateIncident(ctx context.Context, id string, in models.Incident) (models.Incident, error) {
	if _, err := s.GetIncidentByID(ctx, id); err != nil {
		return models.Incident{}, err
	}

	patch := incidentToRow(in)
	delete(patch, "id")
	delete(patch, "created_by")
	delete(patch, "created_at")
	if err := s.store.Update(ctx, incidentsTable, store.Row{"id": id}, patch); err != nil {
		return models.Incident{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return s.GetIncidentByID(ctx, id)
}

// DeleteIncident removes an incident report.
func (s *IncidentService) DeleteIncident(ctx context.Context, id string) error {
	if _, err := s.GetIncidentByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, incidentsTable, store.Row{"id": id}); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

func incidentToRow(in models.Incident) store.Row {
	return store.Row{
		"id":                    in.ID,
		"incident_date":         in.IncidentDate,
		"incident_type":         in.IncidentType,
		"severity":              in.Severity,
		"aircraft_registration": in.AircraftRegistration,
		"flight_number":         in.FlightNumber,
		"location":              in.Location,
		"description":           in.Description,
		"investigation_status":  in.InvestigationStatus,
		"created_by":            in.CreatedBy,
		"created_at":            timestamp(in.CreatedAt),
	}
}

func incidentFromRow(row store.Row) models.Incident {
	return models.Incident{
		ID:                   rowString(row, "id"),
		IncidentDate:         rowString(row, "incident_date"),
		IncidentType:         rowString(row, "incident_type"),
		Severity:             rowString(row, "severity"),
		AircraftRegistration: rowString(row, "aircraft_registration"),
		FlightNumber:         rowString(row, "flight_number"),
		Location:             rowString(row, "location"),
		Description:          rowString(row, "description"),
		InvestigationStatus:  rowString(row, "investigation_status"),
		CreatedBy:            rowString(row, "created_by"),
		CreatedAt:            rowTime(row, "created_at"),
	}
}
