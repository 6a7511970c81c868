package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/core/domain/model/ticket"
)

// releaseUndelivered returns the undelivered liters of a cancelled request to
// its locality when the policy asks for it. It runs inside the caller's unit
// of work, so an overflow rolls the cancellation back.
func releaseUndelivered(
	ctx context.Context,
	uow UoW,
	policy CapacityPolicy,
	req *request.Request,
	tk *ticket.Ticket,
) error {
	if !policy.RestoreOnCancel {
		return nil
	}

	liters := req.Quantity()
	if tk != nil && tk.DeliveredQuantity() != nil {
		liters -= *tk.DeliveredQuantity()
	}
	if liters <= 0 {
		return nil
	}

	asg, err := uow.AssignmentRepository().GetByRequest(ctx, req.ID())
	if err != nil {
		return err
	}

	return uow.LocalityRepository().Release(ctx, asg.LocalityID(), liters)
}
