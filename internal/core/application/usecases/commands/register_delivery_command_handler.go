package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/core/domain/services"
	"waterdelivery/internal/pkg/errs"
)

// RegisterDeliveryCommandHandler resolves an open ticket and cascades the
// outcome to the request:
//
//	Delivered -> request Completed
//	Partial   -> request InProgress (stays open)
//	Cancelled -> request Cancelled, undelivered liters released when the
//	             CapacityPolicy asks for it
type RegisterDeliveryCommandHandler struct {
	uowFactory UoWFactory
	policy     CapacityPolicy
	clock      kernel.Clock
}

// NewRegisterDeliveryCommandHandler creates the delivery handler.
func NewRegisterDeliveryCommandHandler(
	uowFactory UoWFactory,
	policy CapacityPolicy,
	clock kernel.Clock,
) RegisterDeliveryCommandHandler {
	return RegisterDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

// Handle returns errs.ErrAlreadyResolved for a resolved ticket before any
// input validation against the request, and also when another transaction
// resolves the ticket between the read and the write. Rows are written
// ticket first, then request, then locality.
func (h RegisterDeliveryCommandHandler) Handle(ctx context.Context, command RegisterDeliveryCommand) (TicketResult, error) {
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
	if tk.Status().IsTerminal() {
		return TicketResult{}, errs.ErrAlreadyResolved
	}

	req, err := requests.Get(ctx, tk.RequestID())
	if err != nil {
		return TicketResult{}, err
	}

	delivery, err := ticket.NewDelivery(command.DeliveredQuantity(), command.Outcome(), command.Notes(), req.Quantity())
	if err != nil {
		return TicketResult{}, err
	}

	now := h.clock.Now()
	if err = tk.RegisterDelivery(delivery, now); err != nil {
		return TicketResult{}, err
	}

	if err = services.CascadeDelivery(req, delivery.Outcome(), now); err != nil {
		return TicketResult{}, err
	}

	if err = tickets.Update(ctx, tk); err != nil {
		return TicketResult{}, err
	}

	if err = requests.Update(ctx, req); err != nil {
		return TicketResult{}, err
	}

	if delivery.Outcome() == ticket.Cancelled {
		if err = releaseUndelivered(ctx, uow, h.policy, req, tk); err != nil {
			return TicketResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return TicketResult{}, err
	}

	return TicketResult{Ticket: tk, Request: req}, nil
}
