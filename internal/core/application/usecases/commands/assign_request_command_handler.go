package commands

import (
	"context"
	"errors"
	"fmt"

	"waterdelivery/internal/core/domain/model/assignment"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/core/domain/services"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/pkg/errs"
)

// AssignRequestResult is everything the workflow changed.
type AssignRequestResult struct {
	Assignment *assignment.Assignment
	Ticket     *ticket.Ticket
	Request    *request.Request
}

// AssignRequestCommandHandler runs the assignment workflow as one unit of work:
//
//  1. the request must exist and be Pending (errs.ErrNotAssignable)
//  2. the locality must exist and be active (errs.ErrLocalityNotFound)
//  3. the request moves Pending -> Assigned with a conditional write, so a
//     concurrent assignment or cancellation of the same request loses with
//     errs.ErrNotAssignable
//  4. capacity is reserved by a conditional decrement (errs.ErrInsufficientCapacity)
//  5. the assignment is created
//  6. a Pending ticket is issued with a fresh code
//
// Any failure rolls back every effect, so callers observe either the full
// result or no change at all. Lost reservation races are not retried here; the
// caller retries with another candidate. A code drawn for a rolled back
// assignment is not reused.
type AssignRequestCommandHandler struct {
	uowFactory UoWFactory
	codes      ports.TicketCodeGenerator
	clock      kernel.Clock
}

// NewAssignRequestCommandHandler creates the assignment workflow handler.
func NewAssignRequestCommandHandler(
	uowFactory UoWFactory,
	codes ports.TicketCodeGenerator,
	clock kernel.Clock,
) AssignRequestCommandHandler {
	return AssignRequestCommandHandler{
		uowFactory: uowFactory,
		codes:      codes,
		clock:      clock,
	}
}

// Handle executes the workflow.
func (h AssignRequestCommandHandler) Handle(ctx context.Context, command AssignRequestCommand) (AssignRequestResult, error) {
	if err := command.Validate(); err != nil {
		return AssignRequestResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignRequestResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	localities := uow.LocalityRepository()

	req, err := requests.Get(ctx, command.RequestID())
	if err != nil {
		return AssignRequestResult{}, err
	}
	if req.Status() != request.Pending {
		return AssignRequestResult{}, fmt.Errorf("%w: request %s is %s", errs.ErrNotAssignable, req.ID(), req.Status())
	}

	loc, err := localities.Get(ctx, command.LocalityID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AssignRequestResult{}, fmt.Errorf("%w: %s", errs.ErrLocalityNotFound, command.LocalityID())
	}
	if err != nil {
		return AssignRequestResult{}, err
	}
	if !loc.IsActive() {
		return AssignRequestResult{}, fmt.Errorf("%w: %s is inactive", errs.ErrLocalityNotFound, loc.ID())
	}

	now := h.clock.Now()
	code, err := h.codes.Next(ctx, now.Year())
	if err != nil {
		return AssignRequestResult{}, fmt.Errorf("generate ticket code: %w", err)
	}

	asg, tk, err := services.NewRequestAssigner().Assign(req, loc, command.AdvisorID(), command.Notes(), code, now)
	if err != nil {
		return AssignRequestResult{}, err
	}

	if err = requests.Update(ctx, req); err != nil {
		if errs.IsStateConflict(err) {
			return AssignRequestResult{}, fmt.Errorf("%w: %w", errs.ErrNotAssignable, err)
		}
		return AssignRequestResult{}, err
	}

	if err = localities.Reserve(ctx, loc.ID(), req.Quantity()); err != nil {
		return AssignRequestResult{}, err
	}

	if err = uow.AssignmentRepository().Add(ctx, asg); err != nil {
		return AssignRequestResult{}, err
	}

	if err = uow.TicketRepository().Add(ctx, tk); err != nil {
		return AssignRequestResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignRequestResult{}, err
	}

	return AssignRequestResult{Assignment: asg, Ticket: tk, Request: req}, nil
}
