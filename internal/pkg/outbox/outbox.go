// Package outbox writes domain events into the outbox_events table in the
// same commit plan as the aggregate change that produced them.
package outbox

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/fulfillment-service/internal/models/m_outbox"
)

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// Event represents an enriched domain event ready for persistence.
type Event struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
}

// Repository defines outbox event persistence.
type Repository interface {
	// InsertMut creates a mutation for inserting an outbox event
	InsertMut(event *Event) *spanner.Mutation

	// EnrichEvent converts a domain event to an outbox event with metadata
	EnrichEvent(event DomainEvent, payload string) *Event

	// Mutations serializes events and returns one insert mutation per event.
	Mutations(events []DomainEvent) ([]*spanner.Mutation, error)
}

// Repo implements Repository for Spanner.
type Repo struct {
	model *m_outbox.Model
	newID func() string
}

// NewRepo creates a new Repo.
func NewRepo() *Repo {
	return &Repo{
		model: m_outbox.NewModel(),
		newID: func() string { return uuid.New().String() },
	}
}

// InsertMut creates a mutation for inserting an outbox event.
func (r *Repo) InsertMut(event *Event) *spanner.Mutation {
	data := &m_outbox.Data{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     spanner.NullJSON{Value: json.RawMessage(event.Payload), Valid: event.Payload != ""},
		Status:      event.Status,
		RetryCount:  0,
	}
	return r.model.InsertMut(data)
}

// EnrichEvent converts a domain event to an outbox event with metadata.
func (r *Repo) EnrichEvent(event DomainEvent, payload string) *Event {
	return &Event{
		EventID:     r.newID(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		Status:      m_outbox.StatusPending,
	}
}

// Mutations serializes events and returns one insert mutation per event.
func (r *Repo) Mutations(events []DomainEvent) ([]*spanner.Mutation, error) {
	muts := make([]*spanner.Mutation, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize event %s: %w", event.EventType(), err)
		}
		muts = append(muts, r.InsertMut(r.EnrichEvent(event, string(payload))))
	}
	return muts, nil
}
