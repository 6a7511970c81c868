package services

import (
	"fmt"
	"time"

	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/pkg/errs"
)

// CascadeArrival moves the request to InProgress after its ticket registered
// an arrival. A request already in progress is left as is.
func CascadeArrival(req *request.Request, at time.Time) error {
	if req.Status() == request.InProgress {
		return nil
	}
	return req.Apply(request.ActionProcess, at)
}

// CascadeDelivery applies the request transitions implied by a ticket outcome:
//
//	Delivered -> Completed (through InProgress when still Assigned)
//	Partial   -> InProgress (no change when already InProgress)
//	Cancelled -> Cancelled
//
// Every step goes through request.Transition, so a terminal request fails with
// errs.ErrInvalidTransition.
func CascadeDelivery(req *request.Request, outcome ticket.DeliveryStatus, at time.Time) error {
	switch outcome {
	case ticket.Delivered:
		if req.Status() == request.Assigned {
			if err := req.Apply(request.ActionProcess, at); err != nil {
				return err
			}
		}
		return req.Apply(request.ActionComplete, at)
	case ticket.Partial:
		return CascadeArrival(req, at)
	case ticket.Cancelled:
		return req.Apply(request.ActionCancel, at)
	case ticket.UnknownDeliveryStatus, ticket.Pending, ticket.InProgress:
		return errs.NewValueIsInvalidErrorWithCause("outcome", fmt.Errorf("%s is not a delivery outcome", outcome))
	default:
		return errs.NewValueIsInvalidErrorWithCause("outcome", fmt.Errorf("%d is not a delivery outcome", outcome))
	}
}
