package queries

import (
	"errors"
	"fmt"

	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetLastTicketSequenceQueryIsNotConstructed = errors.New(
	"GetLastTicketSequenceQuery must be created via NewGetLastTicketSequenceQuery constructor",
)

// GetLastTicketSequenceQuery finds the highest ticket sequence stored for a
// year. It is used to seed the sequence counter after a restore.
type GetLastTicketSequenceQuery struct {
	year int

	guard guard.ConstructorGuard
}

func NewGetLastTicketSequenceQuery(year int) (GetLastTicketSequenceQuery, error) {
	if year < 1000 || year > 9999 {
		return GetLastTicketSequenceQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"year", fmt.Errorf("%d is not a four digit year", year))
	}
	return GetLastTicketSequenceQuery{year: year, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLastTicketSequenceQuery) Validate() error {
	return q.guard.Validate(ErrGetLastTicketSequenceQueryIsNotConstructed)
}

func (q GetLastTicketSequenceQuery) Year() int { return q.year }
