package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand registers a new claim for water.
//
// Example:
//
//	category, _ := request.CategoryFromString("urgent")
//	cmd, err := NewCreateRequestCommand(kernel.NewUUID(), requesterID, category, 500, "tank empty")
//	if err != nil {
//	    return fmt.Errorf("invalid request data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	requesterID kernel.UUID
	category    request.Category
	quantity    int
	description string

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand validates identifiers and the category. Quantity
// limits per category are enforced by the Request aggregate.
func NewCreateRequestCommand(
	requestID, requesterID kernel.UUID,
	category request.Category,
	quantity int,
	description string,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		quantity:    quantity,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setRequesterID(requesterID),
		cmd.setCategory(category),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) RequestID() kernel.UUID     { return c.requestID }
func (c CreateRequestCommand) RequesterID() kernel.UUID   { return c.requesterID }
func (c CreateRequestCommand) Category() request.Category { return c.category }
func (c CreateRequestCommand) Quantity() int              { return c.quantity }
func (c CreateRequestCommand) Description() string        { return c.description }

func (c *CreateRequestCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requestID = id
	return nil
}

func (c *CreateRequestCommand) setRequesterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requesterID = id
	return nil
}

func (c *CreateRequestCommand) setCategory(category request.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	c.category = category
	return nil
}
