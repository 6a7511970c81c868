package commands

import (
	"errors"
	"fmt"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrRegisterDeliveryCommandIsNotConstructed = errors.New(
	"RegisterDeliveryCommand must be created via NewRegisterDeliveryCommand constructor",
)

// RegisterDeliveryCommand resolves a ticket with the outcome chosen by the
// locality manager. The outcome is never inferred from the quantity.
type RegisterDeliveryCommand struct { //nolint:recvcheck //using for validation
	ticketID          kernel.UUID
	deliveredQuantity int
	outcome           ticket.DeliveryStatus
	notes             string

	guard guard.ConstructorGuard
}

// NewRegisterDeliveryCommand validates what can be checked without loading
// the ticket: the identifier, the outcome and a non-negative quantity.
func NewRegisterDeliveryCommand(
	ticketID kernel.UUID,
	deliveredQuantity int,
	outcome ticket.DeliveryStatus,
	notes string,
) (RegisterDeliveryCommand, error) {
	var outcomeErr, quantityErr error
	if !outcome.IsTerminal() {
		outcomeErr = errs.NewValueIsInvalidErrorWithCause(
			"outcome", fmt.Errorf("%s is not one of delivered, partial, cancelled", outcome))
	}
	if deliveredQuantity < 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause(
			"deliveredQuantity", fmt.Errorf("%d is negative", deliveredQuantity))
	}

	if err := errors.Join(ticketID.Validate(), outcomeErr, quantityErr); err != nil {
		return RegisterDeliveryCommand{}, err
	}

	return RegisterDeliveryCommand{
		ticketID:          ticketID,
		deliveredQuantity: deliveredQuantity,
		outcome:           outcome,
		notes:             notes,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDeliveryCommandIsNotConstructed)
}

func (c RegisterDeliveryCommand) TicketID() kernel.UUID          { return c.ticketID }
func (c RegisterDeliveryCommand) DeliveredQuantity() int         { return c.deliveredQuantity }
func (c RegisterDeliveryCommand) Outcome() ticket.DeliveryStatus { return c.outcome }
func (c RegisterDeliveryCommand) Notes() string                  { return c.notes }
