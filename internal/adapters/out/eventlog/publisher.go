// Package eventlog publishes domain events as structured log entries. It is
// the default publisher when no broker is configured, and the audit sink
// that runs next to Kafka otherwise.
package eventlog

import (
	"context"
	"errors"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/ports"

	"go.uber.org/zap"
)

// Publisher writes one Info entry per event.
type Publisher struct {
	logger *zap.Logger
}

// NewPublisher creates a Publisher logging under the "events" name.
func NewPublisher(logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{logger: logger.Named("events")}
}

// Publish never fails.
func (p *Publisher) Publish(_ context.Context, events ...event.Event) error {
	for _, e := range events {
		p.logger.Info(e.Name,
			zap.Stringer("eventId", e.ID),
			zap.Stringer("aggregateId", e.AggregateID),
			zap.Time("occurredAt", e.OccurredAt),
			zap.Any("payload", e.Payload),
		)
	}
	return nil
}

// Fanout delivers every batch to all publishers and joins their errors.
type Fanout []ports.EventPublisher

// Publish calls every publisher even if an earlier one failed.
func (f Fanout) Publish(ctx context.Context, events ...event.Event) error {
	var err error
	for _, p := range f {
		err = errors.Join(err, p.Publish(ctx, events...))
	}
	return err
}
