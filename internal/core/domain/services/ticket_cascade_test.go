package services_test

import (
	"testing"

	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/core/domain/services"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestIn(t *testing.T, status request.Status) *request.Request {
	t.Helper()
	r := pendingRequest(t, 1000)
	path := map[request.Status][]request.Action{
		request.Pending:    nil,
		request.Assigned:   {request.ActionAssign},
		request.InProgress: {request.ActionAssign, request.ActionProcess},
		request.Completed:  {request.ActionAssign, request.ActionProcess, request.ActionComplete},
		request.Cancelled:  {request.ActionCancel},
	}
	for _, a := range path[status] {
		require.NoError(t, r.Apply(a, at))
	}
	return r
}

func TestCascadeArrival(t *testing.T) {
	r := requestIn(t, request.Assigned)
	require.NoError(t, services.CascadeArrival(r, at))
	assert.Equal(t, request.InProgress, r.Status())

	require.NoError(t, services.CascadeArrival(r, at))
	assert.Equal(t, request.InProgress, r.Status())

	require.ErrorIs(t, services.CascadeArrival(requestIn(t, request.Completed), at), errs.ErrInvalidTransition)
}

func TestCascadeDelivery(t *testing.T) {
	testCases := []struct {
		name     string
		from     request.Status
		outcome  ticket.DeliveryStatus
		expected request.Status
	}{
		{"delivered from assigned", request.Assigned, ticket.Delivered, request.Completed},
		{"delivered from in progress", request.InProgress, ticket.Delivered, request.Completed},
		{"partial from assigned", request.Assigned, ticket.Partial, request.InProgress},
		{"partial from in progress", request.InProgress, ticket.Partial, request.InProgress},
		{"cancelled from assigned", request.Assigned, ticket.Cancelled, request.Cancelled},
		{"cancelled from in progress", request.InProgress, ticket.Cancelled, request.Cancelled},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := requestIn(t, tc.from)

			require.NoError(t, services.CascadeDelivery(r, tc.outcome, at))
			assert.Equal(t, tc.expected, r.Status())
		})
	}

	t.Run("terminal request is an invalid transition", func(t *testing.T) {
		r := requestIn(t, request.Cancelled)

		require.ErrorIs(t, services.CascadeDelivery(r, ticket.Delivered, at), errs.ErrInvalidTransition)
		assert.Equal(t, request.Cancelled, r.Status())
	})

	t.Run("non terminal outcome is rejected", func(t *testing.T) {
		r := requestIn(t, request.Assigned)

		assert.True(t, errs.IsValidation(services.CascadeDelivery(r, ticket.Pending, at)))
		assert.Equal(t, request.Assigned, r.Status())
	})
}
