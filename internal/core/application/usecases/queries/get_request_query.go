package queries

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetRequestQueryIsNotConstructed = errors.New(
	"GetRequestQuery must be created via NewGetRequestQuery constructor",
)

// GetRequestQuery reads one request with its assignment and ticket, if any.
type GetRequestQuery struct {
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRequestQuery(requestID kernel.UUID) (GetRequestQuery, error) {
	if err := requestID.Validate(); err != nil {
		return GetRequestQuery{}, err
	}
	return GetRequestQuery{requestID: requestID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestQueryIsNotConstructed)
}

func (q GetRequestQuery) RequestID() kernel.UUID { return q.requestID }

// GetRequestQueryResponse is the request read model. LocalityID and TicketCode
// are nil until the request is assigned.
type GetRequestQueryResponse struct {
	ID          kernel.UUID
	RequesterID kernel.UUID
	Category    string
	Quantity    int
	Description string
	Status      string
	Priority    int
	CreatedAt   time.Time
	Deadline    time.Time
	Overdue     bool
	LocalityID  *kernel.UUID
	TicketCode  *string
}
