package ticket

import (
	"errors"
	"fmt"
	"strings"

	"waterdelivery/internal/pkg/errs"
)

// ErrCancellationReasonIsRequired is returned when a cancelled outcome has no notes.
var ErrCancellationReasonIsRequired = errs.NewValueIsRequiredErrorWithCause(
	"notes", errors.New("a cancelled delivery needs a reason"))

// Delivery is a validated delivery outcome ready to be applied to a ticket.
type Delivery struct {
	quantity int
	outcome  DeliveryStatus
	notes    string
}

// NewDelivery validates a delivery report against the requested quantity:
//   - outcome must be delivered, partial or cancelled
//   - 0 <= quantity <= requestedQuantity
//   - delivered needs quantity > 0
//   - cancelled needs non-empty notes
func NewDelivery(quantity int, outcome DeliveryStatus, notes string, requestedQuantity int) (Delivery, error) {
	notes = strings.TrimSpace(notes)

	if !outcome.IsTerminal() {
		return Delivery{}, errs.NewValueIsInvalidErrorWithCause(
			"outcome", fmt.Errorf("%s is not one of delivered, partial, cancelled", outcome))
	}
	if quantity < 0 || quantity > requestedQuantity {
		return Delivery{}, errs.NewValueIsOutOfRangeError("deliveredQuantity", quantity, 0, requestedQuantity)
	}
	if outcome == Delivered && quantity == 0 {
		return Delivery{}, errs.NewValueIsInvalidErrorWithCause(
			"deliveredQuantity", errors.New("a delivered outcome needs a quantity greater than 0"))
	}
	if outcome == Cancelled && notes == "" {
		return Delivery{}, ErrCancellationReasonIsRequired
	}

	return Delivery{quantity: quantity, outcome: outcome, notes: notes}, nil
}

func (d Delivery) Quantity() int           { return d.quantity }
func (d Delivery) Outcome() DeliveryStatus { return d.outcome }
func (d Delivery) Notes() string           { return d.notes }
