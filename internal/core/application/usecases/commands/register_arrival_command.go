package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrRegisterArrivalCommandIsNotConstructed = errors.New(
	"RegisterArrivalCommand must be created via NewRegisterArrivalCommand constructor",
)

// RegisterArrivalCommand records that the requester showed up at the locality.
type RegisterArrivalCommand struct { //nolint:recvcheck //using for validation
	ticketID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRegisterArrivalCommand validates the ticket identifier.
func NewRegisterArrivalCommand(ticketID kernel.UUID) (RegisterArrivalCommand, error) {
	if err := ticketID.Validate(); err != nil {
		return RegisterArrivalCommand{}, err
	}
	return RegisterArrivalCommand{ticketID: ticketID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterArrivalCommand) Validate() error {
	return c.guard.Validate(ErrRegisterArrivalCommandIsNotConstructed)
}

// TicketID returns the ticket being redeemed.
func (c RegisterArrivalCommand) TicketID() kernel.UUID {
	return c.ticketID
}
