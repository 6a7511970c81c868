package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ticket"
)

// TicketRepository defines the persistence contract for tickets.
type TicketRepository interface {
	// Add persists a newly issued ticket. Codes are unique.
	Add(ctx context.Context, aggregate *ticket.Ticket) error

	// Update persists the delivery fields of a ticket.
	Update(ctx context.Context, aggregate *ticket.Ticket) error

	// Get returns the ticket or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error)

	// GetByRequest returns the ticket of a request or an *errs.ObjectNotFoundError.
	GetByRequest(ctx context.Context, requestID kernel.UUID) (*ticket.Ticket, error)
}
