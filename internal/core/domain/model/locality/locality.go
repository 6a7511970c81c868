package locality

import (
	"errors"
	"fmt"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var (
	// ErrLocalityIsNotConstructed is returned when a Locality was not created
	// through NewLocality or RestoreLocality.
	ErrLocalityIsNotConstructed = errors.New("Locality must be created via NewLocality constructor")

	// ErrNameIsRequired is returned for an empty locality name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Locality is a distribution point with finite capacity.
//
// Invariant: 0 <= availableLiters <= maxCapacityLiters. The in-memory value is
// a snapshot. Capacity is only ever changed in storage through the conditional
// Reserve and Release operations of the repository, never by writing back a
// value read here.
type Locality struct {
	id                kernel.UUID
	name              string
	address           string
	availableLiters   int
	maxCapacityLiters int
	active            bool

	guard guard.ConstructorGuard
}

// NewLocality creates an active locality with all of its capacity available.
func NewLocality(id kernel.UUID, name, address string, maxCapacityLiters int) (*Locality, error) {
	return RestoreLocality(id, name, address, maxCapacityLiters, maxCapacityLiters, true)
}

// RestoreLocality rebuilds a locality loaded from storage.
func RestoreLocality(
	id kernel.UUID,
	name, address string,
	availableLiters, maxCapacityLiters int,
	active bool,
) (*Locality, error) {
	l := &Locality{
		address: strings.TrimSpace(address),
		active:  active,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setID(id),
		l.setName(name),
		l.setCapacity(availableLiters, maxCapacityLiters),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// Validate ensures the locality was built by a constructor.
func (l *Locality) Validate() error {
	if l == nil {
		return ErrLocalityIsNotConstructed
	}
	return l.guard.Validate(ErrLocalityIsNotConstructed)
}

// IsEqual compares localities by identifier.
func (l *Locality) IsEqual(other *Locality) bool {
	return other != nil && l.id.IsEqual(other.id)
}

func (l *Locality) ID() kernel.UUID        { return l.id }
func (l *Locality) Name() string           { return l.name }
func (l *Locality) Address() string        { return l.address }
func (l *Locality) AvailableLiters() int   { return l.availableLiters }
func (l *Locality) MaxCapacityLiters() int { return l.maxCapacityLiters }
func (l *Locality) IsActive() bool         { return l.active }

// CanServe reports whether the snapshot could cover quantity liters. The
// reservation itself is decided by storage.
func (l *Locality) CanServe(quantity int) bool {
	return l.active && l.availableLiters >= quantity
}

// Activate makes the locality eligible for new assignments.
func (l *Locality) Activate() {
	l.active = true
}

// Deactivate removes the locality from candidate lists. Existing tickets are
// not affected.
func (l *Locality) Deactivate() {
	l.active = false
}

func (l *Locality) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Locality) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	l.name = name
	return nil
}

func (l *Locality) setCapacity(available, maxCapacity int) error {
	if maxCapacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxCapacityLiters", fmt.Errorf("%d is not greater than 0", maxCapacity))
	}
	if available < 0 || available > maxCapacity {
		return errs.NewValueIsOutOfRangeError("availableLiters", available, 0, maxCapacity)
	}
	l.availableLiters = available
	l.maxCapacityLiters = maxCapacity
	return nil
}
