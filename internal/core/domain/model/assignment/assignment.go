// Package assignment binds a request to the locality and advisor serving it.
// An Assignment is written once by the assignment workflow and never mutated.
package assignment

import (
	"errors"
	"strings"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment was not created
// through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// Assignment is immutable after construction.
type Assignment struct {
	id         kernel.UUID
	requestID  kernel.UUID
	localityID kernel.UUID
	advisorID  kernel.UUID
	notes      string
	assignedAt time.Time

	guard guard.ConstructorGuard
}

// NewAssignment creates an assignment stamped with assignedAt.
func NewAssignment(
	id, requestID, localityID, advisorID kernel.UUID,
	notes string,
	assignedAt time.Time,
) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		requestID.Validate(),
		localityID.Validate(),
		advisorID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Assignment{
		id:         id,
		requestID:  requestID,
		localityID: localityID,
		advisorID:  advisorID,
		notes:      strings.TrimSpace(notes),
		assignedAt: assignedAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreAssignment rebuilds an assignment loaded from storage.
func RestoreAssignment(
	id, requestID, localityID, advisorID kernel.UUID,
	notes string,
	assignedAt time.Time,
) (*Assignment, error) {
	return NewAssignment(id, requestID, localityID, advisorID, notes, assignedAt)
}

// Validate ensures the assignment was built by a constructor.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) ID() kernel.UUID         { return a.id }
func (a *Assignment) RequestID() kernel.UUID  { return a.requestID }
func (a *Assignment) LocalityID() kernel.UUID { return a.localityID }
func (a *Assignment) AdvisorID() kernel.UUID  { return a.advisorID }
func (a *Assignment) Notes() string           { return a.notes }
func (a *Assignment) AssignedAt() time.Time   { return a.assignedAt }
