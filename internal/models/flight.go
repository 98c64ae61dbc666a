package models

import "time"

// Flight represents one scheduled flight.
type Flight struct {
	ID                   string    `json:"id"`
	FlightNumber         string    `json:"flightNumber"`
	AircraftRegistration string    `json:"aircraftRegistration"`
	DepartureAirport     string    `json:"departureAirport"`
	ArrivalAirport       string    `json:"arrivalAirport"`
	ScheduledDeparture   string    `json:"scheduledDeparture"` // RFC 3339
	ScheduledArrival     string    `json:"scheduledArrival"`   // RFC 3339
	PassengersCount      int       `json:"passengersCount"`
	FlightStatus         string    `json:"flightStatus"` // Scheduled, On Time, Delayed, Arrived
	CreatedBy            string    `json:"createdBy"`
	CreatedAt            time.Time `json:"createdAt"`
}
