package queries

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetOverdueRequestsQueryIsNotConstructed = errors.New(
	"GetOverdueRequestsQuery must be created via NewGetOverdueRequestsQuery constructor",
)

// GetOverdueRequestsQuery lists Pending requests whose deadline passed. The
// clock of the handler decides what "now" is.
type GetOverdueRequestsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOverdueRequestsQuery() GetOverdueRequestsQuery {
	return GetOverdueRequestsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueRequestsQueryIsNotConstructed)
}

// GetOverdueRequestsQueryResponse is one overdue request, most urgent first.
type GetOverdueRequestsQueryResponse struct {
	ID       kernel.UUID
	Category string
	Quantity int
	Priority int
	Deadline time.Time
	Overdue  time.Duration
}
