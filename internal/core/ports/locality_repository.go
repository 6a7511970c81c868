package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/locality"
)

// LocalityRepository defines the persistence contract for localities.
//
// available_liters is never written from an in-memory value. Reserve and
// Release are single conditional statements evaluated by the store, so two
// concurrent reservations can never both succeed on the last units of capacity.
type LocalityRepository interface {
	// Add persists a new locality.
	Add(ctx context.Context, aggregate *locality.Locality) error

	// Update persists name, address and the active flag. Capacity columns are
	// left untouched.
	Update(ctx context.Context, aggregate *locality.Locality) error

	// Get returns the locality or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*locality.Locality, error)

	// GetAllActive returns every active locality.
	GetAllActive(ctx context.Context) ([]*locality.Locality, error)

	// Reserve decrements available liters by liters only if the locality is
	// active and has at least that much available. Otherwise it returns
	// errs.ErrInsufficientCapacity and nothing changes.
	Reserve(ctx context.Context, id kernel.UUID, liters int) error

	// Release increments available liters by liters only if the result stays
	// within the maximum capacity. Otherwise it returns errs.ErrCapacityOverflow.
	Release(ctx context.Context, id kernel.UUID, liters int) error
}
