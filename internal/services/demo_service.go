package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/skyops/aeroops-be/internal/models"
)

// Sample values for demo records.
var (
	demoCheckTypes    = []string{"A-Check", "B-Check", "C-Check", "Engine Overhaul"}
	demoStatuses      = []string{"Scheduled", "In Progress", "Completed"}
	demoPriorities    = []string{"Low", "Medium", "High", "Critical"}
	demoIncidentTypes = []string{"Bird Strike", "Hard Landing", "Engine Issue"}
	demoSeverities    = []string{"Minor", "Moderate", "Major", "Critical"}
	demoLocations     = []string{"Karachi", "Lahore", "Islamabad"}
	demoAirports      = []string{"KHI", "LHE", "ISB", "DXB", "LHR"}
	demoFlightStates  = []string{"Scheduled", "On Time", "Delayed", "Arrived"}
)

// DemoServiceProvider defines the interface for demo-data seeding.
type DemoServiceProvider interface {
	SeedDemoData(ctx context.Context) (int, error)
}

// DemoService fills empty record tables with plausible sample data so a fresh
// install has something on the dashboard.
type DemoService struct {
	maintenance MaintenanceServiceProvider
	incidents   IncidentServiceProvider
	flights     FlightServiceProvider
}

// NewDemoService creates a new DemoService.
func NewDemoService(m MaintenanceServiceProvider, i IncidentServiceProvider, f FlightServiceProvider) *DemoService {
	return &DemoService{maintenance: m, incidents: i, flights: f}
}

// SeedDemoData generates sample records when the maintenance table is empty.
// Returns the number of records created; zero means data already existed.
func (s *DemoService) SeedDemoData(ctx context.Context) (int, error) {
	existing, err := s.maintenance.GetAllMaintenance(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	aircraft := make([]string, 10)
	for i := range aircraft {
		aircraft[i] = fmt.Sprintf("AP-BH%c", 'A'+i)
	}

	created := 0
	now := time.Now()

	for i := 0; i < 50; i++ {
		_, err := s.maintenance.CreateMaintenance(ctx, models.Maintenance{
			AircraftRegistration: pick(aircraft),
			MaintenanceType:      pick(demoCheckTypes),
			ScheduledDate:        now.AddDate(0, 0, -rand.Intn(180)).Format("2006-01-02"),
			TechnicianName:       fmt.Sprintf("Tech-%d", 100+rand.Intn(900)),
			HoursSpent:           round1(2 + rand.Float64()*118),
			Cost:                 round2(5000 + rand.Float64()*495000),
			Status:               pick(demoStatuses),
			Priority:             pick(demoPriorities),
			Description:          fmt.Sprintf("Maintenance %d", i+1),
			CreatedBy:            "system",
		})
		if err != nil {
			return created, err
		}
		created++
	}

	for i := 0; i < 30; i++ {
		_, err := s.incidents.CreateIncident(ctx, models.Incident{
			IncidentDate:         now.AddDate(0, 0, -rand.Intn(365)).Format("2006-01-02"),
			IncidentType:         pick(demoIncidentTypes),
			Severity:             pick(demoSeverities),
			AircraftRegistration: pick(aircraft),
			FlightNumber:         fmt.Sprintf("PK%d", 100+rand.Intn(900)),
			Location:             pick(demoLocations),
			Description:          fmt.Sprintf("Incident %d", i+1),
			InvestigationStatus:  pick([]string{"Open", "Closed"}),
			CreatedBy:            "system",
		})
		if err != nil {
			return created, err
		}
		created++
	}

	for i := 0; i < 100; i++ {
		dep := now.AddDate(0, 0, rand.Intn(61)-30)
		arr := dep.Add(time.Duration(2+rand.Intn(11)) * time.Hour)
		_, err := s.flights.CreateFlight(ctx, models.Flight{
			FlightNumber:         fmt.Sprintf("PK%d", 100+rand.Intn(900)),
			AircraftRegistration: pick(aircraft),
			DepartureAirport:     pick(demoAirports),
			ArrivalAirport:       pick(demoAirports),
			ScheduledDeparture:   dep.Format(time.RFC3339),
			ScheduledArrival:     arr.Format(time.RFC3339),
			PassengersCount:      50 + rand.Intn(301),
			FlightStatus:         pick(demoFlightStates),
			CreatedBy:            "system",
		})
		if err != nil {
			return created, err
		}
		created++
	}

	log.Info().Int("records", created).Msg("Seeded demo data")
	return created, nil
}

func pick(options []string) string {
	return options[rand.Intn(len(options))]
}

func round1(v float64) float64 { return float64(int(v*10)) / 10 }
func round2(v float64) float64 { return float64(int(v*100)) / 100 }
