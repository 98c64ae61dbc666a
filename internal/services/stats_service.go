package services

import (
	"context"
	"fmt"
)

// DashboardStats are the headline numbers and chart breakdowns shown on the
// dashboard.
type DashboardStats struct {
	MaintenanceCount      int     `json:"maintenanceCount"`
	IncidentCount         int     `json:"incidentCount"`
	CriticalIncidentCount int     `json:"criticalIncidentCount"`
	FlightCount           int     `json:"flightCount"`
	TotalMaintenanceHours float64 `json:"totalMaintenanceHours"`
	TotalMaintenanceCost  float64 `json:"totalMaintenanceCost"`

	MaintenanceByType   map[string]int `json:"maintenanceByType"`
	IncidentsBySeverity map[string]int `json:"incidentsBySeverity"`
	FlightsByStatus     map[string]int `json:"flightsByStatus"`
}

// ReportSummary is a per-record-type rollup for the reports page.
type ReportSummary struct {
	ReportType string         `json:"reportType"`
	Total      int            `json:"total"`
	Metrics    map[string]any `json:"metrics"`
}

// StatsServiceProvider defines the interface for dashboard aggregation.
type StatsServiceProvider interface {
	GetDashboardStats(ctx context.Context) (DashboardStats, error)
	GetReport(ctx context.Context, reportType string) (ReportSummary, error)
}

// StatsService computes dashboard metrics from the record services. The
// Record Store exposes no aggregate queries, so all rollups happen here.
type StatsService struct {
	maintenance MaintenanceServiceProvider
	incidents   IncidentServiceProvider
	flights     FlightServiceProvider
}

// NewStatsService creates a new StatsService.
func NewStatsService(m MaintenanceServiceProvider, i IncidentServiceProvider, f FlightServiceProvider) *StatsService {
	return &StatsService{maintenance: m, incidents: i, flights: f}
}

// GetDashboardStats computes the dashboard headline metrics.
func (s *StatsService) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	stats := DashboardStats{
		MaintenanceByType:   make(map[string]int),
		IncidentsBySeverity: make(map[string]int),
		FlightsByStatus:     make(map[string]int),
	}

	maint, err := s.maintenance.GetAllMaintenance(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	stats.MaintenanceCount = len(maint)
	for _, m := range maint {
		stats.TotalMaintenanceHours += m.HoursSpent
		stats.TotalMaintenanceCost += m.Cost
		stats.MaintenanceByType[m.MaintenanceType]++
	}

	incidents, err := s.incidents.GetAllIncidents(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	stats.IncidentCount = len(incidents)
	for _, in := range incidents {
		stats.IncidentsBySeverity[in.Severity]++
		if in.IsCritical() {
			stats.CriticalIncidentCount++
		}
	}

	flights, err := s.flights.GetAllFlights(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	stats.FlightCount = len(flights)
	for _, f := range flights {
		stats.FlightsByStatus[f.FlightStatus]++
	}

	return stats, nil
}

// GetReport builds a summary for one record type: "maintenance", "safety" or
// "flights".
func (s *StatsService) GetReport(ctx context.Context, reportType string) (ReportSummary, error) {
	switch reportType {
	case "maintenance":
		maint, err := s.maintenance.GetAllMaintenance(ctx)
		if err != nil {
			return ReportSummary{}, err
		}
		var hours, cost float64
		completed := 0
		for _, m := range maint {
			hours += m.HoursSpent
			cost += m.Cost
			if m.Status == "Completed" {
				completed++
			}
		}
		return ReportSummary{
			ReportType: reportType,
			Total:      len(maint),
			Metrics: map[string]any{
				"totalHours":     hours,
				"totalCost":      cost,
				"completedTasks": completed,
			},
		}, nil

	case "safety":
		incidents, err := s.incidents.GetAllIncidents(ctx)
		if err != nil {
			return ReportSummary{}, err
		}
		critical, open := 0, 0
		for _, in := range incidents {
			if in.IsCritical() {
				critical++
			}
			if in.InvestigationStatus == "Open" {
				open++
			}
		}
		return ReportSummary{
			ReportType: reportType,
			Total:      len(incidents),
			Metrics: map[string]any{
				"criticalIncidents":  critical,
				"openInvestigations": open,
			},
		}, nil

	case "flights":
		flights, err := s.flights.GetAllFlights(ctx)
		if err != nil {
			return ReportSummary{}, err
		}
		passengers, delayed := 0, 0
		for _, f := range flights {
			passengers += f.PassengersCount
			if f.FlightStatus == "Delayed" {
				delayed++
			}
		}
		return ReportSummary{
			ReportType: reportType,
			Total:      len(flights),
			Metrics: map[string]any{
				"totalPassengers": passengers,
				"delayedFlights":  delayed,
			},
		}, nil

	default:
		return ReportSummary{}, fmt.Errorf("%w: unknown report type %q", ErrInvalidInput, reportType)
	}
}
