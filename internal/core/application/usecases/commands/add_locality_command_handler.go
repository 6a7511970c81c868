package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/locality"
)

// AddLocalityCommandHandler stores new localities, active and full.
type AddLocalityCommandHandler struct {
	uowFactory LocalityUoWFactory
}

// NewAddLocalityCommandHandler creates the handler.
func NewAddLocalityCommandHandler(uowFactory LocalityUoWFactory) AddLocalityCommandHandler {
	return AddLocalityCommandHandler{uowFactory: uowFactory}
}

// Handle creates the locality.
func (h AddLocalityCommandHandler) Handle(ctx context.Context, command AddLocalityCommand) (*locality.Locality, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	loc, err := locality.NewLocality(command.LocalityID(), command.Name(), command.Address(), command.MaxCapacityLiters())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.LocalityRepository().Add(ctx, loc); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return loc, nil
}
