package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/report"
	"waterdelivery/internal/core/domain/model/ticket"
)

// TicketCodeGenerator hands out unique ticket codes.
type TicketCodeGenerator interface {
	// Next returns a code that was never returned before for year.
	Next(ctx context.Context, year int) (ticket.Code, error)
}

// EventPublisher delivers domain events to the notification and audit
// collaborators. Callers log failures and never fail an operation on them.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.Event) error
}

// ReportCalculator computes report metrics. It is deterministic for a given
// store state.
type ReportCalculator interface {
	Calculate(ctx context.Context, localityID kernel.UUID, period report.Period) (report.Metrics, error)
}
