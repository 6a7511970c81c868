package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/services"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// QueriesPostgresTestSuite runs the raw SQL of the read side against a real
// PostgreSQL, where uuid and timestamptz columns behave differently from SQLite.
type QueriesPostgresTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *QueriesPostgresTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("skipping PostgreSQL container tests in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.AutoMigrate(db))
}

func (suite *QueriesPostgresTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueriesPostgresTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE tickets, assignments, reports, requests, localities CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *QueriesPostgresTestSuite) fixture() fixture {
	return fixture{t: suite.T(), db: suite.db}
}

func (suite *QueriesPostgresTestSuite) TestSelectCandidates_BestFit() {
	f := suite.fixture()
	tight := f.locality("Tight", 520, 1000, true)
	roomy := f.locality("Roomy", 3000, 3000, true)
	f.locality("Closed", 500, 500, false)
	f.locality("Small", 100, 1000, true)

	handler := queries.NewSelectCandidatesQueryHandler(suite.db, services.NewStrategyRegistry())
	query, err := queries.NewSelectCandidatesQuery(services.StrategyBestFit, 500, nil)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(tight, result[0].LocalityID)
	suite.Equal(roomy, result[1].LocalityID)
}

func (suite *QueriesPostgresTestSuite) TestGetOverdueRequests_OrderedByDeadline() {
	f := suite.fixture()
	later := f.request("normal", "pending", 300, testNow.Add(-30*time.Hour), testNow.Add(-6*time.Hour))
	earlier := f.request("urgent", "pending", 200, testNow.Add(-12*time.Hour), testNow.Add(-10*time.Hour))
	f.request("urgent", "assigned", 200, testNow.Add(-12*time.Hour), testNow.Add(-10*time.Hour))
	f.request("commercial", "pending", 2000, testNow, testNow.Add(72*time.Hour))

	handler := queries.NewGetOverdueRequestsQueryHandler(suite.db, kernel.FixedClock{At: testNow})

	result, err := handler.Handle(context.Background(), queries.NewGetOverdueRequestsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(earlier, result[0].ID)
	suite.Equal(10*time.Hour, result[0].Overdue)
	suite.Equal(later, result[1].ID)
	suite.Equal(2, result[1].Priority)
}

func (suite *QueriesPostgresTestSuite) TestGetOpenTicketsByLocality() {
	f := suite.fixture()
	localityID := f.locality("Harbour", 600, 1000, true)
	first := f.request("normal", "assigned", 400, testNow.Add(-time.Hour), testNow.Add(23*time.Hour))
	second := f.request("urgent", "in_progress", 100, testNow, testNow.Add(2*time.Hour))
	done := f.request("normal", "completed", 100, testNow, testNow.Add(24*time.Hour))
	for id, code := range map[kernel.UUID]string{first: "TKT-2026-001", second: "TKT-2026-002", done: "TKT-2026-003"} {
		f.assignment(id, localityID)
		status := "pending"
		if id == done {
			status = "delivered"
		}
		f.ticket(id, code, status)
	}

	handler := queries.NewGetOpenTicketsByLocalityQueryHandler(suite.db)
	query, err := queries.NewGetOpenTicketsByLocalityQuery(localityID)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("TKT-2026-001", result[0].Code)
	suite.Equal("TKT-2026-002", result[1].Code)
}

func (suite *QueriesPostgresTestSuite) TestGetLastTicketSequence() {
	f := suite.fixture()
	for _, code := range []string{"TKT-2026-099", "TKT-2026-1000"} {
		f.ticket(f.request("normal", "assigned", 100, testNow, testNow.Add(24*time.Hour)), code, "pending")
	}

	query, err := queries.NewGetLastTicketSequenceQuery(2026)
	suite.Require().NoError(err)

	last, err := queries.NewGetLastTicketSequenceQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(1000), last)
}

func (suite *QueriesPostgresTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	suite.fixture().locality("Harbour", 600, 1000, true)

	handler := queries.NewSelectCandidatesQueryHandler(suite.db, services.NewStrategyRegistry())
	query, err := queries.NewSelectCandidatesQuery(services.StrategyCapacity, 100, nil)
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestQueriesPostgresTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesPostgresTestSuite))
}
