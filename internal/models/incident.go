package models

import "time"

// Incident severities that count as critical on the dashboard.
var CriticalSeverities = []string{"Major", "Critical"}

// Incident represents one safety incident report.
type Incident struct {
	ID                   string    `json:"id"`
	IncidentDate         string    `json:"incidentDate"` // YYYY-MM-DD
	IncidentType         string    `json:"incidentType"` // e.g. "Bird Strike", "Hard Landing"
	Severity             string    `json:"severity"`     // Minor, Moderate, Major, Critical
	AircraftRegistration string    `json:"aircraftRegistration"`
	FlightNumber         string    `json:"flightNumber"`
	Location             string    `json:"location"`
	Description          string    `json:"description"`
	InvestigationStatus  string    `json:"investigationStatus"` // Open, Closed
	CreatedBy            string    `json:"createdBy"`
	CreatedAt            time.Time `json:"createdAt"`
}

// IsCritical reports whether the incident counts toward the critical metric.
func (i Incident) IsCritical() bool {
	for _, s := range CriticalSeverities {
		if i.Severity == s {
			return true
		}
	}
	return false
}
