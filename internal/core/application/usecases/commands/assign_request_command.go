package commands

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrAssignRequestCommandIsNotConstructed = errors.New(
	"AssignRequestCommand must be created via NewAssignRequestCommand constructor",
)

// AssignRequestCommand binds a Pending request to a locality chosen by an
// allocation strategy or by the advisor.
//
// Example:
//
//	cmd, err := NewAssignRequestCommand(requestID, localityID, advisorID, "pick up at gate B")
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInsufficientCapacity) {
//	    // retry with the next candidate
//	}
type AssignRequestCommand struct { //nolint:recvcheck //using for validation
	requestID  kernel.UUID
	localityID kernel.UUID
	advisorID  kernel.UUID
	notes      string

	guard guard.ConstructorGuard
}

// NewAssignRequestCommand validates the identifiers.
func NewAssignRequestCommand(requestID, localityID, advisorID kernel.UUID, notes string) (AssignRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), localityID.Validate(), advisorID.Validate()); err != nil {
		return AssignRequestCommand{}, err
	}

	return AssignRequestCommand{
		requestID:  requestID,
		localityID: localityID,
		advisorID:  advisorID,
		notes:      strings.TrimSpace(notes),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRequestCommand) Validate() error {
	return c.guard.Validate(ErrAssignRequestCommandIsNotConstructed)
}

func (c AssignRequestCommand) RequestID() kernel.UUID  { return c.requestID }
func (c AssignRequestCommand) LocalityID() kernel.UUID { return c.localityID }
func (c AssignRequestCommand) AdvisorID() kernel.UUID  { return c.advisorID }
func (c AssignRequestCommand) Notes() string           { return c.notes }
