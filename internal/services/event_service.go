package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/skyops/aeroops-be/internal/models"
	"github.com/skyops/aeroops-be/internal/store"
)

const eventsTable = "events"

// EventServiceProvider defines the interface for the activity log.
type EventServiceProvider interface {
	CreateEvent(ctx context.Context, eventType, level, message string, actor *string) error
	GetRecentEvents(ctx context.Context, limit int) ([]models.Event, error)
}

// Broadcaster pushes a serialized event to connected dashboard clients.
// Implemented by the websocket hub.
type Broadcaster interface {
	BroadcastEvent(event models.Event)
}

// EventService persists activity events and fans them out to live clients.
type EventService struct {
	store store.RecordStore
	hub   Broadcaster
}

// NewEventService creates a new EventService. hub may be nil.
func NewEventService(st store.RecordStore, hub Broadcaster) *EventService {
	return &EventService{store: st, hub: hub}
}

// CreateEvent logs a new event and broadcasts it.
func (s *EventService) CreateEvent(ctx context.Context, eventType, level, message string, actor *string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		Actor:     actor,
		CreatedAt: time.Now().UTC(),
	}

	row := store.Row{
		"id":         event.ID,
		"type":       event.Type,
		"level":      event.Level,
		"message":    event.Message,
		"created_at": timestamp(event.CreatedAt),
	}
	if actor != nil {
		row["actor"] = *actor
	}

	if _, err := s.store.Insert(ctx, eventsTable, row); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(event)
	}
	return nil
}

// GetRecentEvents retrieves the most recent events, newest first. The store
// interface has no ordering, so the sort happens here.
func (s *EventService) GetRecentEvents(ctx context.Context, limit int) ([]models.Event, error) {
	rows, err := s.store.Find(ctx, eventsTable, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	events := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, models.Event{
			ID:        rowString(row, "id"),
			Type:      rowString(row, "type"),
			Level:     rowString(row, "level"),
			Message:   rowString(row, "message"),
			Actor:     rowStringPtr(row, "actor"),
			CreatedAt: rowTime(row, "created_at"),
		})
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
