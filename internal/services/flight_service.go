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

const flightsTable = "flights"

// FlightServiceProvider defines the interface for flight records.
type FlightServiceProvider interface {
	CreateFlight(ctx context.Context, f models.Flight) (models.Flight, error)
	GetFlightByID(ctx context.Context, id string) (models.Flight, error)
	GetAllFlights(ctx context.Context) ([]models.Flight, error)
	UpdateFlight(ctx context.Context, id string, f models.Flight) (models.Flight, error)
	DeleteFlight(ctx context.Context, id string) error
}

// FlightService provides business logic for flight records.
type FlightService struct {
	store  store.RecordStore
	events EventServiceProvider
}

// NewFlightService creates a new FlightService.
func NewFlightService(st store.RecordStore, events EventServiceProvider) *FlightService {
	return &FlightService{store: st, events: events}
}

// CreateFlight validates and persists a new flight record.
func (s *FlightService) CreateFlight(ctx context.Context, f models.Flight) (models.Flight, error) {
	if f.FlightNumber == "" {
		return models.Flight{}, fmt.Errorf("%w: flight number is required", ErrInvalidInput)
	}

	f.ID = uuid.New().String()
	f.CreatedAt = time.Now().UTC()

	if _, err := s.store.Insert(ctx, flightsTable, flightToRow(f)); err != nil {
		return models.Flight{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if s.events != nil {
		msg := fmt.Sprintf("Flight %s scheduled (%s -> %s).", f.FlightNumber, f.DepartureAirport, f.ArrivalAirport)
		_ = s.events.CreateEvent(ctx, "flight.create", "info", msg, &f.CreatedBy)
	}
	return f, nil
}

// GetFlightByID retrieves a single flight record.
func (s *FlightService) GetFlightByID(ctx context.Context, id string) (models.Flight, error) {
	row, err := s.store.FindOne(ctx, flightsTable, store.Row{"id": id})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Flight{}, fmt.Errorf("%w: flight %s", ErrNotFound, id)
		}
		return models.Flight{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return flightFromRow(row), nil
}

// GetAllFlights retrieves every flight record.
func (s *FlightService) GetAllFlights(ctx context.Context) ([]models.Flight, error) {
	rows, err := s.store.Find(ctx, flightsTable, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	out := make([]models.Flight, 0, len(rows))
	for _, row := range rows {
		out = append(out, flightFromRow(row))
	}
	return out, nil
}

// UpdateFlight replaces the mutable fields of an existing record.
func (s *FlightService) UpdateFlight(ctx context.Context, id string, f models.Flight) (models.Flight, error) {
	if _, err := s.GetFlightByID(ctx, id); err != nil {
		return models.Flight{}, err
	}

	patch := flightToRow(f)
	delete(patch, "id")
	delete(patch, "created_by")
	delete(patch, "created_at")
	if err := s.store.Update(ctx, flightsTable, store.Row{"id": id}, patch); err != nil {
		return models.Flight{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return s.GetFlightByID(ctx, id)
}

// DeleteFlight removes a flight record.
func (s *FlightService) DeleteFlight(ctx context.Context, id string) error {
	if _, err := s.GetFlightByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, flightsTable, store.Row{"id": id}); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

func flightToRow(f models.Flight) store.Row {
	return store.Row{
		"id":                    f.ID,
		"flight_number":         f.FlightNumber,
		"aircraft_registration": f.AircraftRegistration,
		"departure_airport":     f.DepartureAirport,
		"arrival_airport":       f.ArrivalAirport,
		"scheduled_departure":   f.ScheduledDeparture,
		"scheduled_arrival":     f.ScheduledArrival,
		"passengers_count":      f.PassengersCount,
		"flight_status":         f.FlightStatus,
		"created_by":            f.CreatedBy,
		"created_at":            timestamp(f.CreatedAt),
	}
}

func flightFromRow(row store.Row) models.Flight {
	return models.Flight{
		ID:                   rowString(row, "id"),
		FlightNumber:         rowString(row, "flight_number"),
		AircraftRegistration: rowString(row, "aircraft_registration"),
		DepartureAirport:     rowString(row, "departure_airport"),
		ArrivalAirport:       rowString(row, "arrival_airport"),
		ScheduledDeparture:   rowString(row, "scheduled_departure"),
		ScheduledArrival:     rowString(row, "scheduled_arrival"),
		PassengersCount:      rowInt(row, "passengers_count"),
		FlightStatus:         rowString(row, "flight_status"),
		CreatedBy:            rowString(row, "created_by"),
		CreatedAt:            rowTime(row, "created_at"),
	}
}
