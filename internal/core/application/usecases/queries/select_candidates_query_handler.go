package queries

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/locality"
	"waterdelivery/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SelectCandidatesQueryHandler loads the active localities and orders them with
// the requested allocation strategy. The ranking is advisory: capacity is only
// guaranteed by the reservation taken when a request is assigned.
type SelectCandidatesQueryHandler struct {
	db       *gorm.DB
	registry *services.StrategyRegistry
}

func NewSelectCandidatesQueryHandler(db *gorm.DB, registry *services.StrategyRegistry) SelectCandidatesQueryHandler {
	return SelectCandidatesQueryHandler{db: db, registry: registry}
}

// Handle returns the eligible localities best first. An unregistered strategy
// returns errs.ErrUnknownStrategy.
func (h SelectCandidatesQueryHandler) Handle(
	ctx context.Context,
	query SelectCandidatesQuery,
) ([]SelectCandidatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			address,
			available_liters,
			max_capacity_liters
		FROM localities
		WHERE active = ?
		ORDER BY id
	`, true).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := make([]services.Candidate, 0)
	for rows.Next() {
		var id uuid.UUID
		var name, address string
		var available, maxCapacity int

		if err = rows.Scan(&id, &name, &address, &available, &maxCapacity); err != nil {
			return nil, err
		}

		localityID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		loc, locErr := locality.RestoreLocality(localityID, name, address, available, maxCapacity, true)
		if locErr != nil {
			return nil, locErr
		}

		candidate := services.Candidate{Locality: loc}
		if key, ok := query.proximityKeys[localityID]; ok {
			candidate.ProximityKey = &key
		}
		candidates = append(candidates, candidate)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	ranked, err := h.registry.Select(query.strategy, query.quantity, candidates)
	if err != nil {
		return nil, err
	}

	result := make([]SelectCandidatesQueryResponse, 0, len(ranked))
	for _, c := range ranked {
		result = append(result, SelectCandidatesQueryResponse{
			LocalityID:        c.Locality.ID(),
			Name:              c.Locality.Name(),
			Address:           c.Locality.Address(),
			AvailableLiters:   c.Locality.AvailableLiters(),
			MaxCapacityLiters: c.Locality.MaxCapacityLiters(),
			ProximityKey:      c.ProximityKey,
		})
	}
	return result, nil
}
