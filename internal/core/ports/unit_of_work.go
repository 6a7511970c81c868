package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin share its transaction. Aggregates added or updated through them are
// tracked; their buffered events are published after a successful Commit and
// discarded on Rollback.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and publishes tracked events.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction and tracked events.
	Rollback(ctx context.Context) error

	RequestRepository() RequestRepository
	LocalityRepository() LocalityRepository
	AssignmentRepository() AssignmentRepository
	TicketRepository() TicketRepository
	ReportRepository() ReportRepository
}
