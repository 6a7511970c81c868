package services

import (
	"fmt"
	"time"

	"waterdelivery/internal/core/domain/model/assignment"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/locality"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/pkg/errs"
)

// RequestAssigner performs the in-memory part of an assignment: it binds a
// Pending request to a locality, moves it to Assigned and issues its ticket.
//
// Capacity is not touched here. The caller reserves it in storage inside the
// same unit of work before persisting what Assign returns.
type RequestAssigner struct{}

// NewRequestAssigner creates a RequestAssigner.
func NewRequestAssigner() RequestAssigner {
	return RequestAssigner{}
}

// CheckAssignable returns errs.ErrNotAssignable unless req is Pending, and
// errs.ErrLocalityNotFound unless loc is active.
func (RequestAssigner) CheckAssignable(req *request.Request, loc *locality.Locality) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.Status() != request.Pending {
		return fmt.Errorf("%w: request %s is %s", errs.ErrNotAssignable, req.ID(), req.Status())
	}
	if loc == nil || loc.Validate() != nil || !loc.IsActive() {
		return errs.ErrLocalityNotFound
	}
	return nil
}

// Assign creates the Assignment and the Pending Ticket and applies the assign
// action to req.
func (a RequestAssigner) Assign(
	req *request.Request,
	loc *locality.Locality,
	advisorID kernel.UUID,
	notes string,
	code ticket.Code,
	at time.Time,
) (*assignment.Assignment, *ticket.Ticket, error) {
	if err := a.CheckAssignable(req, loc); err != nil {
		return nil, nil, err
	}

	asg, err := assignment.NewAssignment(kernel.NewUUID(), req.ID(), loc.ID(), advisorID, notes, at)
	if err != nil {
		return nil, nil, err
	}

	tk, err := ticket.NewTicket(kernel.NewUUID(), req.ID(), code, at)
	if err != nil {
		return nil, nil, err
	}

	if err = req.Apply(request.ActionAssign, at); err != nil {
		return nil, nil, err
	}

	return asg, tk, nil
}
