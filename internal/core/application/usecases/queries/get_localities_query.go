package queries

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var (
	ErrGetLocalitiesQueryIsNotConstructed = errors.New(
		"GetLocalitiesQuery must be created via NewGetLocalitiesQuery constructor",
	)
	ErrGetLocalityQueryIsNotConstructed = errors.New(
		"GetLocalityQuery must be created via NewGetLocalityQuery constructor",
	)
)

// GetLocalitiesQuery lists localities by name. Inactive ones are included
// unless activeOnly is set.
type GetLocalitiesQuery struct {
	activeOnly bool

	guard guard.ConstructorGuard
}

func NewGetLocalitiesQuery(activeOnly bool) GetLocalitiesQuery {
	return GetLocalitiesQuery{activeOnly: activeOnly, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetLocalitiesQuery) Validate() error {
	return q.guard.Validate(ErrGetLocalitiesQueryIsNotConstructed)
}

// GetLocalityQuery reads one locality, active or not.
type GetLocalityQuery struct {
	localityID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetLocalityQuery(localityID kernel.UUID) (GetLocalityQuery, error) {
	if err := localityID.Validate(); err != nil {
		return GetLocalityQuery{}, err
	}
	return GetLocalityQuery{localityID: localityID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLocalityQuery) Validate() error {
	return q.guard.Validate(ErrGetLocalityQueryIsNotConstructed)
}

// GetLocalityQueryResponse is the locality read model. OpenTickets counts the
// Pending and InProgress tickets the locality still has to serve.
type GetLocalityQueryResponse struct {
	ID                kernel.UUID
	Name              string
	Address           string
	AvailableLiters   int
	MaxCapacityLiters int
	Active            bool
	OpenTickets       int
}
