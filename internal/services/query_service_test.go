package services

import (
	"context"
	"testing"

	"github.com/skyops/aeroops-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryAnswer(t *testing.T) {
	maint, incidents, _ := newRecordFixture(t)
	svc := NewQueryService(maint, incidents)
	ctx := context.Background()

	_, err := maint.CreateMaintenance(ctx, models.Maintenance{
		AircraftRegistration: "AP-BHA", MaintenanceType: "A-Check", HoursSpent: 6.5,
	})
	require.NoError(t, err)
	_, err = incidents.CreateIncident(ctx, models.Incident{IncidentType: "Engine Failure", Severity: "Critical"})
	require.NoError(t, err)
	_, err = incidents.CreateIncident(ctx, models.Incident{IncidentType: "Bird Strike", Severity: "Minor"})
	require.NoError(t, err)

	res, err := svc.Answer(ctx, "What are the TOTAL MAINTENANCE HOURS this month?")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, "Total maintenance hours: 6.5", res.Answer)

	res, err = svc.Answer(ctx, "show me emergency incidents")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, "Found 1 critical incidents", res.Answer)

	res, err = svc.Answer(ctx, "how is the weather")
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Contains(t, res.Answer, "Try:")
}
