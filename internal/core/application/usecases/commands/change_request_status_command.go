package commands

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var (
	ErrChangeRequestStatusCommandIsNotConstructed = errors.New(
		"ChangeRequestStatusCommand must be created via NewChangeRequestStatusCommand constructor",
	)

	// ErrManualAssignIsNotAllowed is returned for the assign action: assignment
	// reserves capacity and issues a ticket, so it only runs through AssignRequest.
	ErrManualAssignIsNotAllowed = errs.NewValueIsInvalidErrorWithCause(
		"action", errors.New("assign must go through the assignment workflow"))
)

// ChangeRequestStatusCommand applies a manual action (process, complete or
// cancel) to a request.
type ChangeRequestStatusCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	action    request.Action
	notes     string

	guard guard.ConstructorGuard
}

// NewChangeRequestStatusCommand rejects the assign action.
func NewChangeRequestStatusCommand(
	requestID kernel.UUID,
	action request.Action,
	notes string,
) (ChangeRequestStatusCommand, error) {
	var actionErr error
	if action == request.ActionAssign {
		actionErr = ErrManualAssignIsNotAllowed
	} else if _, err := request.ActionFromString(string(action)); err != nil {
		actionErr = err
	}

	if err := errors.Join(requestID.Validate(), actionErr); err != nil {
		return ChangeRequestStatusCommand{}, err
	}

	return ChangeRequestStatusCommand{
		requestID: requestID,
		action:    action,
		notes:     strings.TrimSpace(notes),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeRequestStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeRequestStatusCommandIsNotConstructed)
}

func (c ChangeRequestStatusCommand) RequestID() kernel.UUID { return c.requestID }
func (c ChangeRequestStatusCommand) Action() request.Action { return c.action }
func (c ChangeRequestStatusCommand) Notes() string          { return c.notes }
