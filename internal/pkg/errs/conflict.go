package errs

import (
	"errors"
	"fmt"
)

// Taxonomy roots. Every domain failure below wraps exactly one of them so that
// callers (HTTP layer, jobs) can classify an error with errors.Is.
var (
	// ErrStateConflict marks an operation that is illegal in the current state.
	ErrStateConflict = errors.New("state conflict")

	// ErrResourceConflict marks a lost race for a shared resource, or a resource
	// that is genuinely exhausted.
	ErrResourceConflict = errors.New("resource conflict")
)

var (
	// ErrInvalidTransition is wrapped by InvalidTransitionError.
	ErrInvalidTransition = fmt.Errorf("%w: invalid transition", ErrStateConflict)

	// ErrNotAssignable is returned when a request is not Pending at assignment time.
	ErrNotAssignable = fmt.Errorf("%w: request is not assignable", ErrStateConflict)

	// ErrAlreadyResolved is returned for any operation on a terminal ticket.
	ErrAlreadyResolved = fmt.Errorf("%w: ticket is already resolved", ErrStateConflict)

	// ErrInsufficientCapacity is returned when the conditional capacity
	// decrement affected no row.
	ErrInsufficientCapacity = fmt.Errorf("%w: insufficient capacity", ErrResourceConflict)

	// ErrCapacityOverflow is returned when releasing liters would push a
	// locality above its maximum capacity.
	ErrCapacityOverflow = fmt.Errorf("%w: capacity overflow", ErrResourceConflict)

	// ErrLocalityNotFound is returned when a locality is missing or inactive.
	ErrLocalityNotFound = fmt.Errorf("%w: locality", ErrObjectNotFound)

	// ErrUnknownStrategy is returned for an unregistered allocation strategy name.
	ErrUnknownStrategy = fmt.Errorf("%w: unknown allocation strategy", ErrValueIsInvalid)

	// ErrNothingToUndo is returned by the command log when the cursor is before
	// the first command.
	ErrNothingToUndo = fmt.Errorf("%w: nothing to undo", ErrStateConflict)

	// ErrNothingToRedo is returned by the command log when the cursor is at the
	// end of the valid history.
	ErrNothingToRedo = fmt.Errorf("%w: nothing to redo", ErrStateConflict)
)

// InvalidTransitionError reports an action that has no outgoing edge from the
// entity's current state.
type InvalidTransitionError struct {
	Entity  string
	Current string
	Action  string
}

// NewInvalidTransitionError creates an InvalidTransitionError.
func NewInvalidTransitionError(entity, current, action string) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity:  entity,
		Current: current,
		Action:  action,
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s in status %s", ErrInvalidTransition, e.Action, e.Entity, e.Current)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// IsValidation reports whether err is a malformed-input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// IsStateConflict reports whether err is an illegal-in-current-state error.
func IsStateConflict(err error) bool {
	return errors.Is(err, ErrStateConflict)
}

// IsResourceConflict reports whether err is a capacity conflict.
func IsResourceConflict(err error) bool {
	return errors.Is(err, ErrResourceConflict)
}

// IsNotFound reports whether err refers to a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}
