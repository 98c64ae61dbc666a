package models

import "time"

// Maintenance represents one maintenance task on an aircraft.
type Maintenance struct {
	ID                   string    `json:"id"`
	AircraftRegistration string    `json:"aircraftRegistration"`
	MaintenanceType      string    `json:"maintenanceType"` // e.g. "A-Check", "Engine Overhaul"
	ScheduledDate        string    `json:"scheduledDate"`   // YYYY-MM-DD
	TechnicianName       string    `json:"technicianName"`
	HoursSpent           float64   `json:"hoursSpent"`
	Cost                 float64   `json:"cost"`
	Status               string    `json:"status"`   // Scheduled, In Progress, Completed
	Priority             string    `json:"priority"` // Low, Medium, High, Critical
	Description          string    `json:"description"`
	CreatedBy            string    `json:"createdBy"`
	CreatedAt            time.Time `json:"createdAt"`
}
