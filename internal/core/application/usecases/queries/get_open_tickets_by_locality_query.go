package queries

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetOpenTicketsByLocalityQueryIsNotConstructed = errors.New(
	"GetOpenTicketsByLocalityQuery must be created via NewGetOpenTicketsByLocalityQuery constructor",
)

// GetOpenTicketsByLocalityQuery lists the Pending and InProgress tickets a
// locality still has to serve, in the order the requests were created.
type GetOpenTicketsByLocalityQuery struct {
	localityID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOpenTicketsByLocalityQuery(localityID kernel.UUID) (GetOpenTicketsByLocalityQuery, error) {
	if err := localityID.Validate(); err != nil {
		return GetOpenTicketsByLocalityQuery{}, err
	}
	return GetOpenTicketsByLocalityQuery{localityID: localityID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOpenTicketsByLocalityQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenTicketsByLocalityQueryIsNotConstructed)
}

func (q GetOpenTicketsByLocalityQuery) LocalityID() kernel.UUID { return q.localityID }

// GetOpenTicketsByLocalityQueryResponse is one open ticket.
type GetOpenTicketsByLocalityQueryResponse struct {
	TicketID         kernel.UUID
	Code             string
	Status           string
	IssuedAt         time.Time
	RequestID        kernel.UUID
	Category         string
	Quantity         int
	RequestCreatedAt time.Time
	RequestDeadline  time.Time
}
