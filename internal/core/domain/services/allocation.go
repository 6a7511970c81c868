package services

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"
	"sync"

	"waterdelivery/internal/core/domain/model/locality"
	"waterdelivery/internal/pkg/errs"
)

// Strategy names accepted by SelectCandidates.
const (
	StrategyProximity = "proximity"
	StrategyCapacity  = "capacity"
	StrategyBestFit   = "best_fit"
)

// Candidate is a locality considered for a demand. ProximityKey is an opaque
// ordering key standing in for geographic distance; nil sorts last.
type Candidate struct {
	Locality     *locality.Locality
	ProximityKey *float64
}

// Strategy orders candidates for a requested quantity. Implementations are
// pure: the input slice is not modified.
type Strategy func(quantity int, candidates []Candidate) []Candidate

// StrategyRegistry maps strategy names to Strategy functions.
//
// The workflow always takes the first element of the result as the provisional
// target; availability is confirmed by the conditional reservation in storage.
//
// Example usage:
//
//	registry := services.NewStrategyRegistry()
//	ordered, err := registry.Select(services.StrategyBestFit, 500, candidates)
//	if errors.Is(err, errs.ErrUnknownStrategy) {
//	    // bad strategy name from the caller
//	}
type StrategyRegistry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewStrategyRegistry returns a registry holding proximity, capacity and best_fit.
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{
		strategies: map[string]Strategy{
			StrategyProximity: ByProximity,
			StrategyCapacity:  ByCapacity,
			StrategyBestFit:   BestFit,
		},
	}
}

// Register adds or replaces a strategy.
func (r *StrategyRegistry) Register(name string, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[name] = s
}

// Names returns the registered strategy names in lexical order.
func (r *StrategyRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select runs the named strategy. Unknown names return errs.ErrUnknownStrategy.
func (r *StrategyRegistry) Select(name string, quantity int, candidates []Candidate) ([]Candidate, error) {
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	r.mu.RLock()
	s, ok := r.strategies[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownStrategy, name)
	}

	return s(quantity, candidates), nil
}

// ByProximity keeps active candidates that can cover quantity and orders them
// by ascending proximity key, then by locality id.
func ByProximity(quantity int, candidates []Candidate) []Candidate {
	out := eligible(quantity, candidates)
	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(proximity(a), proximity(b)); c != 0 {
			return c
		}
		return a.Locality.ID().Compare(b.Locality.ID())
	})
	return out
}

// ByCapacity keeps active candidates that can cover quantity and orders them
// by descending available liters.
func ByCapacity(quantity int, candidates []Candidate) []Candidate {
	out := eligible(quantity, candidates)
	sortByCapacity(out)
	return out
}

// BestFit orders the candidates with non-negative slack (available - quantity)
// by ascending slack. When no candidate has non-negative slack it falls back to
// the ByCapacity ordering of every active candidate, so the result is only
// empty when no candidate is active. Inactive candidates are excluded in both
// cases.
func BestFit(quantity int, candidates []Candidate) []Candidate {
	fitting := eligible(quantity, candidates)
	if len(fitting) == 0 {
		fallback := active(candidates)
		sortByCapacity(fallback)
		return fallback
	}

	slices.SortFunc(fitting, func(a, b Candidate) int {
		slackA := a.Locality.AvailableLiters() - quantity
		slackB := b.Locality.AvailableLiters() - quantity
		if c := cmp.Compare(slackA, slackB); c != 0 {
			return c
		}
		return a.Locality.ID().Compare(b.Locality.ID())
	})
	return fitting
}

func sortByCapacity(cs []Candidate) {
	slices.SortFunc(cs, func(a, b Candidate) int {
		if c := cmp.Compare(b.Locality.AvailableLiters(), a.Locality.AvailableLiters()); c != 0 {
			return c
		}
		return a.Locality.ID().Compare(b.Locality.ID())
	})
}

func eligible(quantity int, candidates []Candidate) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Locality != nil && c.Locality.CanServe(quantity) {
			out = append(out, c)
		}
	}
	return out
}

func active(candidates []Candidate) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Locality != nil && c.Locality.IsActive() {
			out = append(out, c)
		}
	}
	return out
}

func proximity(c Candidate) float64 {
	if c.ProximityKey == nil {
		return math.MaxFloat64
	}
	return *c.ProximityKey
}
