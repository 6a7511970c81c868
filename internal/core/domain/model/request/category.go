package request

import (
	"fmt"
	"strings"
	"time"

	"waterdelivery/internal/pkg/errs"
)

// Category classifies a request at creation time. It fixes the quantity
// limits, the deadline and the priority of the request and never changes.
//
//	Category    Quantity        Deadline   Priority
//	Urgent      1..1000         +2h        1
//	Normal      1..5000         +24h       2
//	Commercial  >= 1000         +72h       3
type Category int

const (
	// UnknownCategory is the zero value and is never valid.
	UnknownCategory Category = iota

	// Urgent requests are small and must be served within hours.
	Urgent

	// Normal requests are household deliveries.
	Normal

	// Commercial requests are bulk deliveries for businesses.
	Commercial
)

const (
	urgentMaxLiters     = 1000
	normalMaxLiters     = 5000
	commercialMinLiters = 1000
)

var categoryNames = map[Category]string{
	Urgent:     "urgent",
	Normal:     "normal",
	Commercial: "commercial",
}

// CategoryFromString parses the lower-case category name used by the API and
// the database.
func CategoryFromString(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return UnknownCategory, errs.NewValueIsInvalidErrorWithCause(
		"category",
		fmt.Errorf("%q is not one of urgent, normal, commercial", s),
	)
}

// String returns the lower-case name, or "unknown".
func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return "unknown"
}

// Validate rejects UnknownCategory and out-of-range values.
func (c Category) Validate() error {
	if _, ok := categoryNames[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

// ValidateQuantity applies the category specific limits to a positive quantity.
func (c Category) ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	switch c {
	case Urgent:
		if quantity > urgentMaxLiters {
			return errs.NewValueIsOutOfRangeErrorWithCause("quantity", quantity, 1, urgentMaxLiters,
				fmt.Errorf("urgent requests cannot exceed %d liters", urgentMaxLiters))
		}
	case Normal:
		if quantity > normalMaxLiters {
			return errs.NewValueIsOutOfRangeErrorWithCause("quantity", quantity, 1, normalMaxLiters,
				fmt.Errorf("normal requests cannot exceed %d liters", normalMaxLiters))
		}
	case Commercial:
		if quantity < commercialMinLiters {
			return errs.NewValueIsOutOfRangeErrorWithCause("quantity", quantity, commercialMinLiters, "unbounded",
				fmt.Errorf("commercial requests need at least %d liters", commercialMinLiters))
		}
	case UnknownCategory:
		return c.Validate()
	default:
		return c.Validate()
	}
	return nil
}

// Deadline returns the latest expected delivery time for a request created at createdAt.
func (c Category) Deadline(createdAt time.Time) time.Time {
	switch c {
	case Urgent:
		return createdAt.Add(2 * time.Hour)
	case Normal:
		return createdAt.Add(24 * time.Hour)
	case Commercial:
		return createdAt.Add(72 * time.Hour)
	case UnknownCategory:
		return createdAt
	default:
		return createdAt
	}
}

// Priority returns 1 for the most pressing category and 3 for the least.
func (c Category) Priority() int {
	switch c {
	case Urgent:
		return 1
	case Normal:
		return 2
	case Commercial:
		return 3
	case UnknownCategory:
		return 0
	default:
		return 0
	}
}
