package ticket

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

// ErrTicketIsNotConstructed is returned when a Ticket was not created through
// NewTicket or RestoreTicket.
var ErrTicketIsNotConstructed = errors.New("Ticket must be created via NewTicket constructor")

// Ticket is the redeemable artifact issued with an assignment. Its status is
// independent of the request status but every change is cascaded to the
// request by the use cases.
type Ticket struct {
	event.Recorder

	id                kernel.UUID
	requestID         kernel.UUID
	code              Code
	status            DeliveryStatus
	issuedAt          time.Time
	arrivalAt         *time.Time
	deliveredQuantity *int
	notes             string

	// storedStatus is the status last read from or written to storage.
	storedStatus DeliveryStatus

	guard guard.ConstructorGuard
}

// NewTicket issues a Pending ticket and records ticket.issued.
func NewTicket(id, requestID kernel.UUID, code Code, issuedAt time.Time) (*Ticket, error) {
	t := &Ticket{
		id:           id,
		requestID:    requestID,
		code:         code,
		status:       Pending,
		storedStatus: Pending,
		issuedAt:     issuedAt.UTC(),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(id.Validate(), requestID.Validate(), code.Validate()); err != nil {
		return nil, err
	}

	t.Record(event.New(event.TicketIssued, t.id, t.issuedAt, map[string]any{
		"requestId": t.requestID.String(),
		"code":      t.code.String(),
	}))
	return t, nil
}

// RestoreTicket rebuilds a ticket loaded from storage.
func RestoreTicket(
	id, requestID kernel.UUID,
	code Code,
	status DeliveryStatus,
	issuedAt time.Time,
	arrivalAt *time.Time,
	deliveredQuantity *int,
	notes string,
) (*Ticket, error) {
	if err := errors.Join(id.Validate(), requestID.Validate(), code.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Ticket{
		id:                id,
		requestID:         requestID,
		code:              code,
		status:            status,
		storedStatus:      status,
		issuedAt:          issuedAt.UTC(),
		arrivalAt:         arrivalAt,
		deliveredQuantity: deliveredQuantity,
		notes:             notes,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the ticket was built by a constructor.
func (t *Ticket) Validate() error {
	if t == nil {
		return ErrTicketIsNotConstructed
	}
	return t.guard.Validate(ErrTicketIsNotConstructed)
}

func (t *Ticket) ID() kernel.UUID         { return t.id }
func (t *Ticket) RequestID() kernel.UUID  { return t.requestID }
func (t *Ticket) Code() Code              { return t.code }
func (t *Ticket) Status() DeliveryStatus  { return t.status }
func (t *Ticket) IssuedAt() time.Time     { return t.issuedAt }
func (t *Ticket) ArrivalAt() *time.Time   { return t.arrivalAt }
func (t *Ticket) DeliveredQuantity() *int { return t.deliveredQuantity }
func (t *Ticket) Notes() string           { return t.notes }

// StoredStatus returns the status the ticket had when it was loaded or last
// saved. Repositories write only if storage still holds this status.
func (t *Ticket) StoredStatus() DeliveryStatus { return t.storedStatus }

// MarkStored records that the current status has been saved.
func (t *Ticket) MarkStored() { t.storedStatus = t.status }

// RegisterArrival moves a Pending ticket to InProgress and stamps arrivalAt.
// A terminal ticket returns errs.ErrAlreadyResolved; a ticket already in
// progress returns an *errs.InvalidTransitionError.
func (t *Ticket) RegisterArrival(at time.Time) error {
	if t.status.IsTerminal() {
		return errs.ErrAlreadyResolved
	}
	if t.status != Pending {
		return errs.NewInvalidTransitionError("ticket", t.status.String(), "register arrival")
	}

	arrival := at.UTC()
	t.arrivalAt = &arrival
	t.status = InProgress
	t.Record(event.New(event.TicketArrivalRegistered, t.id, arrival, map[string]any{
		"requestId": t.requestID.String(),
		"code":      t.code.String(),
	}))
	return nil
}

// RegisterDelivery resolves an open ticket with a validated outcome.
func (t *Ticket) RegisterDelivery(d Delivery, at time.Time) error {
	if t.status.IsTerminal() {
		return errs.ErrAlreadyResolved
	}
	if d.outcome == UnknownDeliveryStatus {
		return errs.NewValueIsRequiredError("delivery")
	}

	quantity := d.quantity
	t.deliveredQuantity = &quantity
	t.notes = d.notes
	t.status = d.outcome
	t.Record(event.New(event.TicketDeliveryRegistered, t.id, at, map[string]any{
		"requestId":         t.requestID.String(),
		"code":              t.code.String(),
		"outcome":           d.outcome.String(),
		"deliveredQuantity": quantity,
	}))
	return nil
}

// Cancel resolves an open ticket as Cancelled with nothing delivered. It is
// used when the owning request is cancelled.
func (t *Ticket) Cancel(reason string, at time.Time) error {
	d, err := NewDelivery(0, Cancelled, reason, 0)
	if err != nil {
		return err
	}
	return t.RegisterDelivery(d, at)
}
