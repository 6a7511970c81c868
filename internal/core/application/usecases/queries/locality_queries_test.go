package queries_test

import (
	"testing"
	"time"

	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLocalitiesQueryHandler_Handle(t *testing.T) {
	db := newSQLiteDB(t)
	f := fixture{t: t, db: db}

	harbour := f.locality("Harbour", 600, 1000, true)
	closed := f.locality("Airport", 0, 500, false)
	central := f.locality("Central", 900, 900, true)

	open := f.request("normal", "assigned", 400, testNow, testNow.Add(24*time.Hour))
	f.assignment(open, harbour)
	f.ticket(open, "TKT-2026-030", "in_progress")
	done := f.request("normal", "completed", 100, testNow, testNow.Add(24*time.Hour))
	f.assignment(done, harbour)
	f.ticket(done, "TKT-2026-031", "delivered")

	handler := queries.NewGetLocalitiesQueryHandler(db)

	t.Run("all localities by name", func(t *testing.T) {
		result, err := handler.Handle(t.Context(), queries.NewGetLocalitiesQuery(false))

		require.NoError(t, err)
		require.Len(t, result, 3)
		assert.Equal(t, closed, result[0].ID)
		assert.False(t, result[0].Active)
		assert.Equal(t, central, result[1].ID)
		assert.Equal(t, harbour, result[2].ID)
		assert.Equal(t, 1, result[2].OpenTickets)
		assert.Equal(t, 600, result[2].AvailableLiters)
		assert.Equal(t, 1000, result[2].MaxCapacityLiters)
	})

	t.Run("active only", func(t *testing.T) {
		result, err := handler.Handle(t.Context(), queries.NewGetLocalitiesQuery(true))

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, central, result[0].ID)
		assert.Equal(t, harbour, result[1].ID)
	})

	t.Run("not constructed", func(t *testing.T) {
		_, err := handler.Handle(t.Context(), queries.GetLocalitiesQuery{})
		require.ErrorIs(t, err, queries.ErrGetLocalitiesQueryIsNotConstructed)
	})
}

func TestGetLocalityQueryHandler_Handle(t *testing.T) {
	db := newSQLiteDB(t)
	f := fixture{t: t, db: db}

	closed := f.locality("Airport", 0, 500, false)
	handler := queries.NewGetLocalityQueryHandler(db)

	t.Run("inactive locality is readable", func(t *testing.T) {
		query, err := queries.NewGetLocalityQuery(closed)
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Equal(t, "Airport", result.Name)
		assert.Equal(t, "Airport square", result.Address)
		assert.False(t, result.Active)
		assert.Zero(t, result.OpenTickets)
	})

	t.Run("not found", func(t *testing.T) {
		query, err := queries.NewGetLocalityQuery(kernel.NewUUID())
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("not constructed", func(t *testing.T) {
		_, err := handler.Handle(t.Context(), queries.GetLocalityQuery{})
		require.ErrorIs(t, err, queries.ErrGetLocalityQueryIsNotConstructed)
	})
}
