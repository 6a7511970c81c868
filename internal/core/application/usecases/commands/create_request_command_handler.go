package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"
)

// CreateRequestCommandHandler persists new requests. The request.created event
// is published by the unit of work after commit.
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	clock      kernel.Clock
}

// NewCreateRequestCommandHandler creates a handler for request intake.
func NewCreateRequestCommandHandler(uowFactory RequestUoWFactory, clock kernel.Clock) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle validates the quantity against the category and stores a Pending
// request. Validation failures leave the store untouched.
func (h CreateRequestCommandHandler) Handle(ctx context.Context, command CreateRequestCommand) (*request.Request, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	req, err := request.NewRequest(
		command.RequestID(),
		command.RequesterID(),
		command.Category(),
		command.Quantity(),
		command.Description(),
		h.clock.Now(),
	)
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

	if err = uow.RequestRepository().Add(ctx, req); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return req, nil
}
