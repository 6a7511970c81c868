package postgres_test

import (
	"errors"
	"testing"

	postgres_adapter "waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestUnitOfWork_TransactionLifecycle(t *testing.T) {
	ctx := t.Context()
	uow := newFactory(newSQLiteDB(t), nil).Create()

	require.ErrorIs(t, uow.Commit(ctx), gorm.ErrInvalidTransaction)
	require.ErrorIs(t, uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.Begin(ctx), "second Begin is a no-op")
	require.NoError(t, uow.Commit(ctx))

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.Rollback(ctx))
}

func TestUnitOfWork_RollbackDiscardsWritesAndEvents(t *testing.T) {
	ctx := t.Context()
	publisher := &recordingPublisher{}
	factory := newFactory(newSQLiteDB(t), publisher)

	req, err := request.NewRequest(kernel.NewUUID(), kernel.NewUUID(), request.Normal, 100, "", testNow)
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.RequestRepository().Add(ctx, req))
	require.NoError(t, uow.Rollback(ctx))

	_, err = factory.Create().RequestRepository().Get(ctx, req.ID())
	require.Error(t, err)
	assert.Empty(t, publisher.names())
}

func TestUnitOfWork_CommitPublishesEventsOnce(t *testing.T) {
	ctx := t.Context()
	publisher := &recordingPublisher{}
	factory := newFactory(newSQLiteDB(t), publisher)

	req, err := request.NewRequest(kernel.NewUUID(), kernel.NewUUID(), request.Urgent, 100, "", testNow)
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.RequestRepository().Add(ctx, req))
	require.NoError(t, req.Apply(request.ActionCancel, testNow))
	require.NoError(t, uow.RequestRepository().Update(ctx, req))
	require.NoError(t, uow.Commit(ctx))

	assert.Equal(t, []string{event.RequestCreated, event.RequestStatusChanged}, publisher.names())
	assert.Empty(t, req.Events())
}

func TestUnitOfWork_PublishFailureIsLogged(t *testing.T) {
	ctx := t.Context()
	core, logs := observer.New(zapcore.WarnLevel)
	publisher := &recordingPublisher{err: errors.New("broker down")}
	factory := postgres_adapter.NewGormUnitOfWorkFactory(newSQLiteDB(t), publisher, zap.New(core))

	req, err := request.NewRequest(kernel.NewUUID(), kernel.NewUUID(), request.Normal, 100, "", testNow)
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.RequestRepository().Add(ctx, req))
	require.NoError(t, uow.Commit(ctx), "publish failures never fail the operation")

	_, err = factory.Create().RequestRepository().Get(ctx, req.ID())
	require.NoError(t, err)

	entries := logs.FilterMessage("failed to publish domain events").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "uow", entries[0].LoggerName)
	assert.Equal(t, int64(1), entries[0].ContextMap()["count"])
}
