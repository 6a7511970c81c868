package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/core/application/reporting"
	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/locality"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/core/ports"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testNow = time.Date(2026, time.August, 20, 11, 0, 0, 0, time.UTC)

// newSQLiteDB opens a private in-memory database. A single connection keeps
// the schema alive and serializes transactions.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres_adapter.AutoMigrate(db))
	return db
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events ...event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.Name)
	}
	return names
}

// The use cases declare their own narrow factories; these adapt the port one.
type (
	commandUoW struct{ factory ports.UnitOfWorkFactory }
	requestUoW struct{ factory ports.UnitOfWorkFactory }
	reportUoW  struct{ factory ports.UnitOfWorkFactory }
)

func (f commandUoW) Create() commands.UoW        { return f.factory.Create() }
func (f requestUoW) Create() commands.RequestUoW { return f.factory.Create() }
func (f reportUoW) Create() reporting.ReportUoW  { return f.factory.Create() }

func newFactory(db *gorm.DB, publisher ports.EventPublisher) *postgres_adapter.GormUnitOfWorkFactory {
	return postgres_adapter.NewGormUnitOfWorkFactory(db, publisher, zap.NewNop())
}

// seedLocality stores an active locality with the given capacity figures.
func seedLocality(t *testing.T, factory ports.UnitOfWorkFactory, available, maxCapacity int) *locality.Locality {
	t.Helper()
	ctx := t.Context()

	loc, err := locality.RestoreLocality(kernel.NewUUID(), "Central", "Main 1", available, maxCapacity, true)
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.LocalityRepository().Add(ctx, loc))
	require.NoError(t, uow.Commit(ctx))
	return loc
}

// seedRequest stores a new Pending request created at testNow.
func seedRequest(
	t *testing.T,
	factory ports.UnitOfWorkFactory,
	category request.Category,
	quantity int,
) *request.Request {
	t.Helper()
	ctx := t.Context()

	req, err := request.NewRequest(kernel.NewUUID(), kernel.NewUUID(), category, quantity, "", testNow)
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.RequestRepository().Add(ctx, req))
	require.NoError(t, uow.Commit(ctx))
	return req
}

func getLocality(t *testing.T, factory ports.UnitOfWorkFactory, id kernel.UUID) *locality.Locality {
	t.Helper()
	loc, err := factory.Create().LocalityRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return loc
}
