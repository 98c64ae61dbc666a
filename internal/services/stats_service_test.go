package services

import (
	"context"
	"testing"

	"github.com/skyops/aeroops-be/internal/models"
	"github.com/skyops/aeroops-be/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordFixture(t *testing.T) (*MaintenanceService, *IncidentService, *FlightService) {
	t.Helper()
	st := store.NewMemory()
	return NewMaintenanceService(st, nil), NewIncidentService(st, nil), NewFlightService(st, nil)
}

func TestGetDashboardStats(t *testing.T) {
	maint, incidents, flights := newRecordFixture(t)
	svc := NewStatsService(maint, incidents, flights)
	ctx := context.Background()

	_, err := maint.CreateMaintenance(ctx, models.Maintenance{
		AircraftRegistration: "AP-BHA", MaintenanceType: "A-Check", HoursSpent: 4.5, Cost: 1200,
	})
	require.NoError(t, err)
	_, err = maint.CreateMaintenance(ctx, models.Maintenance{
		AircraftRegistration: "AP-BHB", MaintenanceType: "A-Check", HoursSpent: 3.5, Cost: 800,
	})
	require.NoError(t, err)

	_, err = incidents.CreateIncident(ctx, models.Incident{IncidentType: "Bird Strike", Severity: "Minor"})
	require.NoError(t, err)
	_, err = incidents.CreateIncident(ctx, models.Incident{IncidentType: "Engine Failure", Severity: "Critical"})
	require.NoError(t, err)

	_, err = flights.CreateFlight(ctx, models.Flight{FlightNumber: "PK301", FlightStatus: "Delayed", PassengersCount: 150})
	require.NoError(t, err)

	stats, err := svc.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.MaintenanceCount)
	assert.Equal(t, 2, stats.IncidentCount)
	assert.Equal(t, 1, stats.CriticalIncidentCount)
	assert.Equal(t, 1, stats.FlightCount)
	assert.InDelta(t, 8.0, stats.TotalMaintenanceHours, 0.001)
	assert.InDelta(t, 2000.0, stats.TotalMaintenanceCost, 0.001)
	assert.Equal(t, map[string]int{"A-Check": 2}, stats.MaintenanceByType)
	assert.Equal(t, map[string]int{"Minor": 1, "Critical": 1}, stats.IncidentsBySeverity)
	assert.Equal(t, map[string]int{"Delayed": 1}, stats.FlightsByStatus)
}

func TestGetReport(t *testing.T) {
	maint, incidents, flights := newRecordFixture(t)
	svc := NewStatsService(maint, incidents, flights)
	ctx := context.Background()

	_, err := maint.CreateMaintenance(ctx, models.Maintenance{
		AircraftRegistration: "AP-BHA", MaintenanceType: "C-Check", HoursSpent: 10, Cost: 5000, Status: "Completed",
	})
	require.NoError(t, err)
	_, err = incidents.CreateIncident(ctx, models.Incident{
		IncidentType: "Runway Incursion", Severity: "Major", InvestigationStatus: "Open",
	})
	require.NoError(t, err)
	_, err = flights.CreateFlight(ctx, models.Flight{
		FlightNumber: "PK302", FlightStatus: "Delayed", PassengersCount: 120,
	})
	require.NoError(t, err)

	report, err := svc.GetReport(ctx, "maintenance")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Metrics["completedTasks"])
	assert.InDelta(t, 10.0, report.Metrics["totalHours"].(float64), 0.001)

	report, err = svc.GetReport(ctx, "safety")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Metrics["criticalIncidents"])
	assert.Equal(t, 1, report.Metrics["openInvestigations"])

	report, err = svc.GetReport(ctx, "flights")
	require.NoError(t, err)
	assert.Equal(t, 120, report.Metrics["totalPassengers"])
	assert.Equal(t, 1, report.Metrics["delayedFlights"])

	_, err = svc.GetReport(ctx, "weather")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
