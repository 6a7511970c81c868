package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrSetLocalityActiveCommandIsNotConstructed = errors.New(
	"SetLocalityActiveCommand must be created via NewSetLocalityActiveCommand constructor",
)

// SetLocalityActiveCommand opens or closes a locality for new assignments.
type SetLocalityActiveCommand struct { //nolint:recvcheck //using for validation
	localityID kernel.UUID
	active     bool

	guard guard.ConstructorGuard
}

// NewSetLocalityActiveCommand validates the identifier.
func NewSetLocalityActiveCommand(localityID kernel.UUID, active bool) (SetLocalityActiveCommand, error) {
	if err := localityID.Validate(); err != nil {
		return SetLocalityActiveCommand{}, err
	}
	return SetLocalityActiveCommand{
		localityID: localityID,
		active:     active,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetLocalityActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetLocalityActiveCommandIsNotConstructed)
}

func (c SetLocalityActiveCommand) LocalityID() kernel.UUID { return c.localityID }
func (c SetLocalityActiveCommand) Active() bool            { return c.active }
