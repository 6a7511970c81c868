package request

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var (
	// ErrRequestIsNotConstructed is returned when a Request was not created
	// through NewRequest or RestoreRequest.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")
)

// Request is the aggregate root for a claim of water. Category and quantity
// are fixed at creation; the status moves only along the edges of Transition.
//
// Every status change is recorded as a request.status_changed event, which the
// unit of work publishes after commit.
type Request struct {
	event.Recorder

	id          kernel.UUID
	requesterID kernel.UUID
	category    Category
	quantity    int
	description string
	status      Status
	createdAt   time.Time
	deadline    time.Time

	// storedStatus is the status last read from or written to storage.
	storedStatus Status

	guard guard.ConstructorGuard
}

// NewRequest validates the quantity against the category limits and creates a
// Pending request whose deadline is derived from createdAt.
//
// Example:
//
//	r, err := request.NewRequest(kernel.NewUUID(), requesterID, request.Urgent, 500, "", clock.Now())
func NewRequest(
	id kernel.UUID,
	requesterID kernel.UUID,
	category Category,
	quantity int,
	description string,
	createdAt time.Time,
) (*Request, error) {
	r := &Request{
		status:       Pending,
		storedStatus: Pending,
		createdAt:    createdAt.UTC(),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setRequesterID(requesterID),
		r.setCategoryAndQuantity(category, quantity),
	); err != nil {
		return nil, err
	}

	r.description = strings.TrimSpace(description)
	r.deadline = category.Deadline(r.createdAt)

	r.Record(event.New(event.RequestCreated, r.id, r.createdAt, map[string]any{
		"requesterId": r.requesterID.String(),
		"category":    r.category.String(),
		"quantity":    r.quantity,
		"priority":    r.Priority(),
		"deadline":    r.deadline,
	}))

	return r, nil
}

// RestoreRequest rebuilds a request loaded from storage. No events are recorded.
func RestoreRequest(
	id kernel.UUID,
	requesterID kernel.UUID,
	category Category,
	quantity int,
	description string,
	status Status,
	createdAt time.Time,
	deadline time.Time,
) (*Request, error) {
	r := &Request{
		description: description,
		createdAt:   createdAt.UTC(),
		deadline:    deadline.UTC(),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setRequesterID(requesterID),
		r.setCategory(category),
		r.setQuantity(quantity),
		r.setStatus(status),
	); err != nil {
		return nil, err
	}
	r.storedStatus = r.status

	return r, nil
}

// Validate ensures the request was built by a constructor.
func (r *Request) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// IsEqual compares requests by identifier.
func (r *Request) IsEqual(other *Request) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *Request) ID() kernel.UUID          { return r.id }
func (r *Request) RequesterID() kernel.UUID { return r.requesterID }
func (r *Request) Category() Category       { return r.category }
func (r *Request) Quantity() int            { return r.quantity }
func (r *Request) Description() string      { return r.description }
func (r *Request) Status() Status           { return r.status }
func (r *Request) CreatedAt() time.Time     { return r.createdAt }
func (r *Request) Deadline() time.Time      { return r.deadline }

// StoredStatus returns the status the request had when it was loaded or last
// saved. Repositories write only if storage still holds this status.
func (r *Request) StoredStatus() Status { return r.storedStatus }

// MarkStored records that the current status has been saved.
func (r *Request) MarkStored() { r.storedStatus = r.status }

// Priority is derived from the category, 1 being the most pressing.
func (r *Request) Priority() int {
	return r.category.Priority()
}

// Apply moves the request along the edge labelled action. On failure the
// status is unchanged and an *errs.InvalidTransitionError is returned.
func (r *Request) Apply(action Action, at time.Time) error {
	next, err := Transition(r.status, action)
	if err != nil {
		return err
	}

	from := r.status
	r.status = next
	r.Record(event.New(event.RequestStatusChanged, r.id, at, map[string]any{
		"from":   from.String(),
		"to":     next.String(),
		"action": string(action),
	}))
	return nil
}

// IsOverdue reports whether the request is still open after its deadline.
func (r *Request) IsOverdue(now time.Time) bool {
	return !r.status.IsTerminal() && now.After(r.deadline)
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setRequesterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.requesterID = id
	return nil
}

func (r *Request) setCategoryAndQuantity(category Category, quantity int) error {
	if err := category.Validate(); err != nil {
		return err
	}
	if err := category.ValidateQuantity(quantity); err != nil {
		return err
	}
	r.category = category
	r.quantity = quantity
	return nil
}

func (r *Request) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	r.category = category
	return nil
}

// setQuantity only checks positivity so that requests stored under older
// category limits stay loadable.
func (r *Request) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	r.quantity = quantity
	return nil
}

func (r *Request) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}
