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

const maintenanceTable = "maintenance"

// MaintenanceServiceProvider defines the interface for maintenance records.
type MaintenanceServiceProvider interface {
	CreateMaintenance(ctx context.Context, m models.Maintenance) (models.Maintenance, error)
	GetMaintenanceByID(ctx context.Context, id string) (models.Maintenance, error)
	GetAllMaintenance(ctx context.Context) ([]models.Maintenance, error)
	UpdateMaintenance(ctx context.Context, id string, m models.Maintenance) (models.Maintenance, error)
	DeleteMaintenance(ctx context.Context, id string) error
}

// MaintenanceService provides business logic for maintenance records.
type MaintenanceService struct {
	store  store.RecordStore
	events EventServiceProvider
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(st store.RecordStore, events EventServiceProvider) *MaintenanceService {
	return &MaintenanceService{store: st, events: events}
}

// CreateMaintenance validates and persists a new maintenance record.
func (s *MaintenanceService) CreateMaintenance(ctx context.Context, m models.Maintenance) (models.Maintenance, error) {
	if m.AircraftRegistration == "" {
		return models.Maintenance{}, fmt.Errorf("%w: aircraft registration is required", ErrInvalidInput)
	}
	if m.MaintenanceType == "" {
		return models.Maintenance{}, fmt.Errorf("%w: maintenance type is required", ErrInvalidInput)
	}

	m.ID = uuid.New().String()
	m.CreatedAt = time.Now().UTC()

	if _, err := s.store.Insert(ctx, maintenanceTable, maintenanceToRow(m)); err != nil {
		return models.Maintenance{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if s.events != nil {
		msg := fmt.Sprintf("Maintenance '%s' logged for %s.", m.MaintenanceType, m.AircraftRegistration)
		_ = s.events.CreateEvent(ctx, "maintenance.create", "info", msg, &m.CreatedBy)
	}
	return m, nil
}

// GetMaintenanceByID retrieves a single maintenance record.
func (s *MaintenanceService) GetMaintenanceByID(ctx context.Context, id string) (models.Maintenance, error) {
	row, err := s.store.FindOne(ctx, maintenanceTable, store.Row{"id": id})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Maintenance{}, fmt.Errorf("%w: maintenance %s", ErrNotFound, id)
		}
		return models.Maintenance{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return maintenanceFromRow(row), nil
}

// GetAllMaintenance retrieves every maintenance record.
func (s *MaintenanceService) GetAllMaintenance(ctx context.Context) ([]models.Maintenance, error) {
	rows, err := s.store.Find(ctx, maintenanceTable, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	out := make([]models.Maintenance, 0, len(rows))
	for _, row := range rows {
		out = append(out, maintenanceFromRow(row))
	}
	return out, nil
}

// UpdateMaintenance replaces the mutable fields of an existing record.
func (s *MaintenanceService) UpdateMaintenance(ctx context.Context, id string, m models.Maintenance) (models.Maintenance, error) {
	if _, err := s.GetMaintenanceByID(ctx, id); err != nil {
		return models.Maintenance{}, err
	}

	patch := maintenanceToRow(m)
	delete(patch, "id")
	delete(patch, "created_by")
	delete(patch, "created_at")
	if err := s.store.Update(ctx, maintenanceTable, store.Row{"id": id}, patch); err != nil {
		return models.Maintenance{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return s.GetMaintenanceByID(ctx, id)
}

// DeleteMaintenance removes a maintenance record.
func (s *MaintenanceService) DeleteMaintenance(ctx context.Context, id string) error {
	if _, err := s.GetMaintenanceByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, maintenanceTable, store.Row{"id": id}); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

func maintenanceToRow(m models.Maintenance) store.Row {
	return store.Row{
		"id":                    m.ID,
		"aircraft_registration": m.AircraftRegistration,
		"maintenance_type":      m.MaintenanceType,
		"scheduled_date":        m.ScheduledDate,
		"technician_name":       m.TechnicianName,
		"hours_spent":           m.HoursSpent,
		"cost":                  m.Cost,
		"status":                m.Status,
		"priority":              m.Priority,
		"description":           m.Description,
		"created_by":            m.CreatedBy,
		"created_at":            timestamp(m.CreatedAt),
	}
}

func maintenanceFromRow(row store.Row) models.Maintenance {
	return models.Maintenance{
		ID:                   rowString(row, "id"),
		AircraftRegistration: rowString(row, "aircraft_registration"),
		MaintenanceType:      rowString(row, "maintenance_type"),
		ScheduledDate:        rowString(row, "scheduled_date"),
		TechnicianName:       rowString(row, "technician_name"),
		HoursSpent:           rowFloat(row, "hours_spent"),
		Cost:                 rowFloat(row, "cost"),
		Status:               rowString(row, "status"),
		Priority:             rowString(row, "priority"),
		Description:          rowString(row, "description"),
		CreatedBy:            rowString(row, "created_by"),
		CreatedAt:            rowTime(row, "created_at"),
	}
}
