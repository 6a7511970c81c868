package queries_test

import (
	"testing"
	"time"

	postgres_adapter "waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/adapters/out/postgres/assignmentrepo"
	"waterdelivery/internal/adapters/out/postgres/localityrepo"
	"waterdelivery/internal/adapters/out/postgres/requestrepo"
	"waterdelivery/internal/adapters/out/postgres/ticketrepo"
	"waterdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testNow = time.Date(2026, time.August, 20, 11, 0, 0, 0, time.UTC)

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

// fixture writes rows directly so each test controls every column.
type fixture struct {
	t  *testing.T
	db *gorm.DB
}

func (f fixture) locality(name string, available, maxCapacity int, active bool) kernel.UUID {
	f.t.Helper()
	id := kernel.NewUUID()
	require.NoError(f.t, f.db.Create(&localityrepo.LocalityDTO{
		ID:                id.Bytes(),
		Name:              name,
		Address:           name + " square",
		AvailableLiters:   available,
		MaxCapacityLiters: maxCapacity,
		Active:            active,
	}).Error)
	return id
}

func (f fixture) request(category, status string, quantity int, createdAt, deadline time.Time) kernel.UUID {
	f.t.Helper()
	return f.requestBy(kernel.NewUUID(), category, status, quantity, createdAt, deadline)
}

func (f fixture) requestBy(
	requesterID kernel.UUID,
	category, status string,
	quantity int,
	createdAt, deadline time.Time,
) kernel.UUID {
	f.t.Helper()
	id := kernel.NewUUID()
	require.NoError(f.t, f.db.Create(&requestrepo.RequestDTO{
		ID:          id.Bytes(),
		RequesterID: requesterID.Bytes(),
		Category:    category,
		Quantity:    quantity,
		Description: "tank on the roof",
		Status:      status,
		CreatedAt:   createdAt,
		Deadline:    deadline,
	}).Error)
	return id
}

func (f fixture) assignment(requestID, localityID kernel.UUID) {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(&assignmentrepo.AssignmentDTO{
		ID:         uuid.New(),
		RequestID:  requestID.Bytes(),
		LocalityID: localityID.Bytes(),
		AdvisorID:  uuid.New(),
		AssignedAt: testNow,
	}).Error)
}

func (f fixture) ticket(requestID kernel.UUID, code, status string) kernel.UUID {
	f.t.Helper()
	id := kernel.NewUUID()
	require.NoError(f.t, f.db.Create(&ticketrepo.TicketDTO{
		ID:        id.Bytes(),
		RequestID: requestID.Bytes(),
		Code:      code,
		Status:    status,
		IssuedAt:  testNow,
	}).Error)
	return id
}
