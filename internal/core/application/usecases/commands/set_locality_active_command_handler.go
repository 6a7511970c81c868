package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/locality"
)

// SetLocalityActiveCommandHandler toggles the active flag without touching capacity.
type SetLocalityActiveCommandHandler struct {
	uowFactory LocalityUoWFactory
}

// NewSetLocalityActiveCommandHandler creates the handler.
func NewSetLocalityActiveCommandHandler(uowFactory LocalityUoWFactory) SetLocalityActiveCommandHandler {
	return SetLocalityActiveCommandHandler{uowFactory: uowFactory}
}

// Handle loads the locality, flips the flag and stores it.
func (h SetLocalityActiveCommandHandler) Handle(
	ctx context.Context,
	command SetLocalityActiveCommand,
) (*locality.Locality, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	localities := uow.LocalityRepository()

	loc, err := localities.Get(ctx, command.LocalityID())
	if err != nil {
		return nil, err
	}

	if command.Active() {
		loc.Activate()
	} else {
		loc.Deactivate()
	}

	if err = localities.Update(ctx, loc); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return loc, nil
}
