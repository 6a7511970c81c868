// Package queries contains the read side of the engine. Handlers run raw SQL
// against the store and return read models; they never open a unit of work.
package queries

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrSelectCandidatesQueryIsNotConstructed = errors.New(
	"SelectCandidatesQuery must be created via NewSelectCandidatesQuery constructor",
)

// SelectCandidatesQuery ranks the active localities able to cover a quantity.
//
// Example:
//
//	query, err := NewSelectCandidatesQuery("best_fit", 500, nil)
//	candidates, err := handler.Handle(ctx, query)
//	if len(candidates) == 0 {
//	    // nobody can serve 500 liters right now
//	}
type SelectCandidatesQuery struct {
	strategy      string
	quantity      int
	proximityKeys map[kernel.UUID]float64

	guard guard.ConstructorGuard
}

// NewSelectCandidatesQuery validates the inputs. The strategy name itself is
// checked by the handler against its registry. proximityKeys may be nil;
// localities without a key sort last under the proximity strategy.
func NewSelectCandidatesQuery(
	strategy string,
	quantity int,
	proximityKeys map[kernel.UUID]float64,
) (SelectCandidatesQuery, error) {
	strategy = strings.TrimSpace(strategy)

	var err error
	if strategy == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("strategy"))
	}
	if quantity <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if err != nil {
		return SelectCandidatesQuery{}, err
	}

	return SelectCandidatesQuery{
		strategy:      strategy,
		quantity:      quantity,
		proximityKeys: maps.Clone(proximityKeys),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q SelectCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrSelectCandidatesQueryIsNotConstructed)
}

func (q SelectCandidatesQuery) Strategy() string { return q.strategy }
func (q SelectCandidatesQuery) Quantity() int    { return q.quantity }

// SelectCandidatesQueryResponse is one ranked locality.
type SelectCandidatesQueryResponse struct {
	LocalityID        kernel.UUID
	Name              string
	Address           string
	AvailableLiters   int
	MaxCapacityLiters int
	ProximityKey      *float64
}
