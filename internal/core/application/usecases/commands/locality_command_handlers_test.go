package commands_test

import (
	"context"
	"errors"
	"testing"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLocalityUoW struct{ mock.Mock }

func (m *MockLocalityUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockLocalityUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockLocalityUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockLocalityUoW) LocalityRepository() ports.LocalityRepository {
	return m.Called().Get(0).(ports.LocalityRepository)
}

func TestAddLocalityCommandHandler_Handle(t *testing.T) {
	t.Run("stores an active full locality", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, err := commands.NewAddLocalityCommand(id, "North Depot", "Av. 5", 20000)
		require.NoError(t, err)

		repo := new(MockLocalityRepository)
		uow := new(MockLocalityUoW)
		factory := new(MockLocalityUoWFactory)
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("LocalityRepository").Return(repo).Once(),
			repo.On("Add", ctx, mock.AnythingOfType("*locality.Locality")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		loc, err := commands.NewAddLocalityCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, loc.ID().IsEqual(id))
		assert.True(t, loc.IsActive())
		assert.Equal(t, 20000, loc.AvailableLiters())
		assert.Equal(t, 20000, loc.MaxCapacityLiters())
		factory.AssertExpectations(t)
		uow.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("add error rolls back", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewAddLocalityCommand(kernel.NewUUID(), "North Depot", "", 100)

		repo := new(MockLocalityRepository)
		uow := new(MockLocalityUoW)
		factory := new(MockLocalityUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("LocalityRepository").Return(repo).Once()
		repo.On("Add", ctx, mock.Anything).Return(errors.New("duplicate key")).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		_, err := commands.NewAddLocalityCommandHandler(factory).Handle(ctx, cmd)

		require.EqualError(t, err, "duplicate key")
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("constructor rejects bad input", func(t *testing.T) {
		_, err := commands.NewAddLocalityCommand(kernel.UUID{}, " ", "", 0)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "maxCapacityLiters")
	})
}

func TestSetLocalityActiveCommandHandler_Handle(t *testing.T) {
	for _, active := range []bool{false, true} {
		ctx := t.Context()
		loc := activeLocality(t, 400)
		if active {
			loc.Deactivate()
		}
		cmd, err := commands.NewSetLocalityActiveCommand(loc.ID(), active)
		require.NoError(t, err)

		repo := new(MockLocalityRepository)
		uow := new(MockLocalityUoW)
		factory := new(MockLocalityUoWFactory)
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("LocalityRepository").Return(repo).Once(),
			repo.On("Get", ctx, loc.ID()).Return(loc, nil).Once(),
			repo.On("Update", ctx, loc).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		updated, err := commands.NewSetLocalityActiveCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, active, updated.IsActive())
		assert.Equal(t, 400, updated.AvailableLiters())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	}
}

func TestSetLocalityActiveCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewSetLocalityActiveCommand(id, false)

	repo := new(MockLocalityRepository)
	uow := new(MockLocalityUoW)
	factory := new(MockLocalityUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("LocalityRepository").Return(repo).Once()
	repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("localityId", id)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err := commands.NewSetLocalityActiveCommandHandler(factory).Handle(ctx, cmd)

	assert.True(t, errs.IsNotFound(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
