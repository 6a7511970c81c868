// Package commands contains the use cases that modify system state.
// Every handler validates its command, opens a unit of work, applies domain
// behaviour and commits; any failure rolls the whole unit of work back.
package commands

import (
	"context"

	"waterdelivery/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestRepoFactory provides the request repository bound to the transaction.
	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	// LocalityRepoFactory provides the locality repository bound to the transaction.
	LocalityRepoFactory interface {
		LocalityRepository() ports.LocalityRepository
	}

	// AssignmentRepoFactory provides the assignment repository bound to the transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// TicketRepoFactory provides the ticket repository bound to the transaction.
	TicketRepoFactory interface {
		TicketRepository() ports.TicketRepository
	}

	// RequestUoW manages transactions that only touch requests.
	RequestUoW interface {
		TxManager
		RequestRepoFactory
	}

	// RequestUoWFactory creates request units of work.
	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// LocalityUoW manages transactions that only touch localities.
	LocalityUoW interface {
		TxManager
		LocalityRepoFactory
	}

	// LocalityUoWFactory creates locality units of work.
	LocalityUoWFactory interface {
		Create() LocalityUoW
	}

	// UoW spans requests, localities, assignments and tickets. The assignment
	// workflow, ticket registration and manual status changes use it.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   requests := uow.RequestRepository()
	//   localities := uow.LocalityRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		RequestRepoFactory
		LocalityRepoFactory
		AssignmentRepoFactory
		TicketRepoFactory
	}

	// UoWFactory creates cross-aggregate units of work.
	UoWFactory interface {
		Create() UoW
	}
)

// CapacityPolicy decides what happens to reserved liters when an assigned
// request is cancelled.
type CapacityPolicy struct {
	// RestoreOnCancel releases the undelivered liters back to the locality.
	// When false the reservation is kept, as a committed reservation.
	RestoreOnCancel bool
}
