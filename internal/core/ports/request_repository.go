// Package ports defines the contracts between the orchestration core and its
// collaborators: repositories, the unit of work, the ticket code generator,
// the event publisher and the report calculator.
package ports

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for request aggregates.
type RequestRepository interface {
	// Add persists a new request.
	Add(ctx context.Context, aggregate *request.Request) error

	// Update persists the status of an existing request. Category and quantity
	// are immutable and never written.
	Update(ctx context.Context, aggregate *request.Request) error

	// Get returns the request or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// GetOverduePending returns Pending requests whose deadline is before now,
	// most urgent first.
	GetOverduePending(ctx context.Context, now time.Time) ([]*request.Request, error)
}
