package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/core/domain/services"
)

// TicketResult is the ticket and its request after a ticket operation.
type TicketResult struct {
	Ticket  *ticket.Ticket
	Request *request.Request
}

// RegisterArrivalCommandHandler moves a Pending ticket to InProgress and
// cascades the request to InProgress.
type RegisterArrivalCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

// NewRegisterArrivalCommandHandler creates the arrival handler.
func NewRegisterArrivalCommandHandler(uowFactory UoWFactory, clock kernel.Clock) RegisterArrivalCommandHandler {
	return RegisterArrivalCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns errs.ErrAlreadyResolved for a resolved ticket and an
// *errs.InvalidTransitionError when the ticket is already in progress.
func (h RegisterArrivalCommandHandler) Handle(ctx context.Context, command RegisterArrivalCommand) (TicketResult, error) {
	if err := command.Validate(); err != nil {
		return TicketResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TicketResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tickets := uow.TicketRepository()
	requests := uow.RequestRepository()

	tk, err := tickets.Get(ctx, command.TicketID())
	if err != nil {
		return TicketResult{}, err
	}

	req, err := requests.Get(ctx, tk.RequestID())
	if err != nil {
		return TicketResult{}, err
	}

	now := h.clock.Now()
	if err = tk.RegisterArrival(now); err != nil {
		return TicketResult{}, err
	}

	if err = services.CascadeArrival(req, now); err != nil {
		return TicketResult{}, err
	}

	if err = tickets.Update(ctx, tk); err != nil {
		return TicketResult{}, err
	}

	if err = requests.Update(ctx, req); err != nil {
		return TicketResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TicketResult{}, err
	}

	return TicketResult{Ticket: tk, Request: req}, nil
}
