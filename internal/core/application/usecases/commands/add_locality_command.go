package commands

import (
	"errors"
	"fmt"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrAddLocalityCommandIsNotConstructed = errors.New(
	"AddLocalityCommand must be created via NewAddLocalityCommand constructor",
)

// AddLocalityCommand registers a distribution point with its maximum capacity.
type AddLocalityCommand struct { //nolint:recvcheck //using for validation
	localityID        kernel.UUID
	name              string
	address           string
	maxCapacityLiters int

	guard guard.ConstructorGuard
}

// NewAddLocalityCommand validates the identifier, name and capacity.
func NewAddLocalityCommand(
	localityID kernel.UUID,
	name, address string,
	maxCapacityLiters int,
) (AddLocalityCommand, error) {
	var nameErr, capacityErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if maxCapacityLiters <= 0 {
		capacityErr = errs.NewValueIsInvalidErrorWithCause(
			"maxCapacityLiters", fmt.Errorf("%d is not greater than 0", maxCapacityLiters))
	}

	if err := errors.Join(localityID.Validate(), nameErr, capacityErr); err != nil {
		return AddLocalityCommand{}, err
	}

	return AddLocalityCommand{
		localityID:        localityID,
		name:              name,
		address:           address,
		maxCapacityLiters: maxCapacityLiters,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddLocalityCommand) Validate() error {
	return c.guard.Validate(ErrAddLocalityCommandIsNotConstructed)
}

func (c AddLocalityCommand) LocalityID() kernel.UUID { return c.localityID }
func (c AddLocalityCommand) Name() string            { return c.name }
func (c AddLocalityCommand) Address() string         { return c.address }
func (c AddLocalityCommand) MaxCapacityLiters() int  { return c.maxCapacityLiters }
