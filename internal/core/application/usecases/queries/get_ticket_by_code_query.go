package queries

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetTicketByCodeQueryIsNotConstructed = errors.New(
	"GetTicketByCodeQuery must be created via NewGetTicketByCodeQuery constructor",
)

// GetTicketByCodeQuery looks a ticket up by the code handed to the requester.
//
// Example:
//
//	query, err := NewGetTicketByCodeQuery("TKT-2026-042")
//	details, err := handler.Handle(ctx, query)
//	fmt.Printf("%s at %s: %s\n", details.Code, details.LocalityName, details.Status)
type GetTicketByCodeQuery struct {
	code ticket.Code

	guard guard.ConstructorGuard
}

// NewGetTicketByCodeQuery parses the code.
func NewGetTicketByCodeQuery(code string) (GetTicketByCodeQuery, error) {
	parsed, err := ticket.ParseCode(code)
	if err != nil {
		return GetTicketByCodeQuery{}, err
	}
	return GetTicketByCodeQuery{code: parsed, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTicketByCodeQuery) Validate() error {
	return q.guard.Validate(ErrGetTicketByCodeQueryIsNotConstructed)
}

func (q GetTicketByCodeQuery) Code() ticket.Code { return q.code }

// GetTicketByCodeQueryResponse joins the ticket with its request and locality.
type GetTicketByCodeQueryResponse struct {
	TicketID          kernel.UUID
	Code              string
	Status            string
	IssuedAt          time.Time
	ArrivalAt         *time.Time
	DeliveredQuantity *int
	Notes             string

	RequestID       kernel.UUID
	RequestStatus   string
	Category        string
	Quantity        int
	RequestDeadline time.Time

	LocalityID      kernel.UUID
	LocalityName    string
	LocalityAddress string
}
