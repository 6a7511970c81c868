package event

import (
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
)

// Event names published by the aggregates.
const (
	RequestCreated           = "request.created"
	RequestStatusChanged     = "request.status_changed"
	RequestOverdue           = "request.overdue"
	TicketIssued             = "ticket.issued"
	TicketArrivalRegistered  = "ticket.arrival_registered"
	TicketDeliveryRegistered = "ticket.delivery_registered"
	ReportGenerated          = "report.generated"
)

// Event is an immutable fact raised by an aggregate.
type Event struct {
	ID          kernel.UUID
	Name        string
	AggregateID kernel.UUID
	OccurredAt  time.Time
	Payload     map[string]any
}

// New creates an Event with a fresh identifier.
func New(name string, aggregateID kernel.UUID, occurredAt time.Time, payload map[string]any) Event {
	if payload == nil {
		payload = map[string]any{}
	}
	return Event{
		ID:          kernel.NewUUID(),
		Name:        name,
		AggregateID: aggregateID,
		OccurredAt:  occurredAt.UTC(),
		Payload:     payload,
	}
}

// Aggregate is implemented by every entity that buffers events until commit.
type Aggregate interface {
	Events() []Event
	ClearEvents()
}

// Recorder buffers events. Aggregates embed it.
type Recorder struct {
	events []Event
}

// Record appends e to the buffer.
func (r *Recorder) Record(e Event) {
	r.events = append(r.events, e)
}

// Events returns a copy of the buffered events in the order they were raised.
func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// ClearEvents empties the buffer.
func (r *Recorder) ClearEvents() {
	r.events = nil
}
