package commands

import (
	"context"
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/pkg/errs"
)

// DefaultCancellationReason is written on the open ticket of a request
// cancelled without notes.
const DefaultCancellationReason = "request cancelled"

// ChangeRequestStatusCommandHandler applies manual status changes through the
// same transition table as the ticket cascades.
//
// Cancelling an assigned request also resolves its open ticket as Cancelled
// and, under CapacityPolicy.RestoreOnCancel, releases the undelivered liters.
// Completing a request resolves its open ticket as Delivered. Rows are written
// ticket first, then request, then locality.
type ChangeRequestStatusCommandHandler struct {
	uowFactory UoWFactory
	policy     CapacityPolicy
	clock      kernel.Clock
}

// NewChangeRequestStatusCommandHandler creates the manual status handler.
func NewChangeRequestStatusCommandHandler(
	uowFactory UoWFactory,
	policy CapacityPolicy,
	clock kernel.Clock,
) ChangeRequestStatusCommandHandler {
	return ChangeRequestStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

// Handle returns an *errs.InvalidTransitionError for an illegal action.
func (h ChangeRequestStatusCommandHandler) Handle(
	ctx context.Context,
	command ChangeRequestStatusCommand,
) (*request.Request, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()

	req, err := requests.Get(ctx, command.RequestID())
	if err != nil {
		return nil, err
	}

	previous := req.Status()
	now := h.clock.Now()
	if err = req.Apply(command.Action(), now); err != nil {
		return nil, err
	}

	resolvesTicket := command.Action() == request.ActionCancel || command.Action() == request.ActionComplete
	var tk *ticket.Ticket
	if resolvesTicket && previous != request.Pending {
		if tk, err = h.resolveOpenTicket(ctx, uow, req, command.Action(), command.Notes(), now); err != nil {
			return nil, err
		}
	}

	if err = requests.Update(ctx, req); err != nil {
		return nil, err
	}

	if command.Action() == request.ActionCancel && previous != request.Pending {
		if err = releaseUndelivered(ctx, uow, h.policy, req, tk); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return req, nil
}

// resolveOpenTicket closes the open ticket of a request cancelled or completed
// by hand: Cancelled with the notes (or DefaultCancellationReason), or
// Delivered with the full requested quantity. It returns the ticket, or nil
// when the request has none.
func (h ChangeRequestStatusCommandHandler) resolveOpenTicket(
	ctx context.Context,
	uow UoW,
	req *request.Request,
	action request.Action,
	notes string,
	now time.Time,
) (*ticket.Ticket, error) {
	tickets := uow.TicketRepository()

	tk, err := tickets.GetByRequest(ctx, req.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !tk.Status().IsOpen() {
		return tk, nil
	}

	if action == request.ActionCancel {
		reason := notes
		if reason == "" {
			reason = DefaultCancellationReason
		}
		err = tk.Cancel(reason, now)
	} else {
		var delivery ticket.Delivery
		delivery, err = ticket.NewDelivery(req.Quantity(), ticket.Delivered, notes, req.Quantity())
		if err == nil {
			err = tk.RegisterDelivery(delivery, now)
		}
	}
	if err != nil {
		return nil, err
	}

	if err = tickets.Update(ctx, tk); err != nil {
		return nil, err
	}
	return tk, nil
}
