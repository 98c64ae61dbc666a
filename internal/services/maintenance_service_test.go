package services

import (
	"context"
	"testing"

	"github.com/skyops/aeroops-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceCRUD(t *testing.T) {
	maint, _, _ := newRecordFixture(t)
	ctx := context.Background()

	created, err := maint.CreateMaintenance(ctx, models.Maintenance{
		AircraftRegistration: "AP-BHA",
		MaintenanceType:      "Engine Overhaul",
		TechnicianName:       "Ahmed Ali",
		HoursSpent:           12.5,
		Cost:                 45000,
		Status:               "In Progress",
		Priority:             "High",
		CreatedBy:            "jdoe",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := maint.GetMaintenanceByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engine Overhaul", got.MaintenanceType)
	assert.InDelta(t, 12.5, got.HoursSpent, 0.001)
	assert.Equal(t, "jdoe", got.CreatedBy)

	got.Status = "Completed"
	got.CreatedBy = "intruder" // must not be writable through update
	updated, err := maint.UpdateMaintenance(ctx, created.ID, got)
	require.NoError(t, err)
	assert.Equal(t, "Completed", updated.Status)
	assert.Equal(t, "jdoe", updated.CreatedBy)

	all, err := maint.GetAllMaintenance(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, maint.DeleteMaintenance(ctx, created.ID))
	_, err = maint.GetMaintenanceByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, maint.DeleteMaintenance(ctx, created.ID), ErrNotFound)
}

func TestCreateMaintenanceValidation(t *testing.T) {
	maint, _, _ := newRecordFixture(t)
	ctx := context.Background()

	_, err := maint.CreateMaintenance(ctx, models.Maintenance{MaintenanceType: "A-Check"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = maint.CreateMaintenance(ctx, models.Maintenance{AircraftRegistration: "AP-BHA"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCriticalIncidents(t *testing.T) {
	_, incidents, _ := newRecordFixture(t)
	ctx := context.Background()

	for _, severity := range []string{"Minor", "Moderate", "Major", "Critical"} {
		_, err := incidents.CreateIncident(ctx, models.Incident{IncidentType: "Test", Severity: severity})
		require.NoError(t, err)
	}

	critical, err := incidents.GetCriticalIncidents(ctx)
	require.NoError(t, err)
	require.Len(t, critical, 2)
	for _, in := range critical {
		assert.True(t, in.IsCritical())
	}
}

func TestSeedDemoData(t *testing.T) {
	maint, incidents, flights := newRecordFixture(t)
	svc := NewDemoService(maint, incidents, flights)
	ctx := context.Background()

	created, err := svc.SeedDemoData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 180, created)

	all, err := maint.GetAllMaintenance(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)

	// A second seed against populated tables is a no-op.
	created, err = svc.SeedDemoData(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
}
