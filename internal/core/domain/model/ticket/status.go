package ticket

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
)

// DeliveryStatus is the state of a ticket.
//
//	Pending ──arrival──> InProgress ──delivery──> Delivered | Partial | Cancelled
//	   └───────────────────delivery──────────────> Delivered | Partial | Cancelled
//
// Delivered, Partial and Cancelled are terminal. A Partial ticket does not
// accept a second delivery.
type DeliveryStatus int

const (
	UnknownDeliveryStatus DeliveryStatus = iota
	Pending
	InProgress
	Delivered
	Partial
	Cancelled
)

var deliveryStatusNames = map[DeliveryStatus]string{
	Pending:    "pending",
	InProgress: "in_progress",
	Delivered:  "delivered",
	Partial:    "partial",
	Cancelled:  "cancelled",
}

// DeliveryStatusFromString parses the persisted name.
func DeliveryStatusFromString(s string) (DeliveryStatus, error) {
	for st, n := range deliveryStatusNames {
		if n == s {
			return st, nil
		}
	}
	return UnknownDeliveryStatus, errs.NewValueIsInvalidErrorWithCause(
		"deliveryStatus", fmt.Errorf("%q is not a valid delivery status", s))
}

// OutcomeFromString parses a delivery outcome. Only terminal statuses are outcomes.
func OutcomeFromString(s string) (DeliveryStatus, error) {
	st, err := DeliveryStatusFromString(s)
	if err != nil {
		return UnknownDeliveryStatus, errs.NewValueIsInvalidErrorWithCause(
			"outcome", fmt.Errorf("%q is not one of delivered, partial, cancelled", s))
	}
	if !st.IsTerminal() {
		return UnknownDeliveryStatus, errs.NewValueIsInvalidErrorWithCause(
			"outcome", fmt.Errorf("%q is not one of delivered, partial, cancelled", s))
	}
	return st, nil
}

func (s DeliveryStatus) String() string {
	if n, ok := deliveryStatusNames[s]; ok {
		return n
	}
	return "unknown"
}

// Validate checks that s is a defined status.
func (s DeliveryStatus) Validate() error {
	if _, ok := deliveryStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// IsTerminal reports whether the ticket is resolved.
func (s DeliveryStatus) IsTerminal() bool {
	return s == Delivered || s == Partial || s == Cancelled
}

// IsOpen reports whether the ticket still expects an arrival or a delivery.
func (s DeliveryStatus) IsOpen() bool {
	return s == Pending || s == InProgress
}
