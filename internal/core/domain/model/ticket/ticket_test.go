package ticket_test

import (
	"testing"
	"time"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2026, time.July, 3, 7, 0, 0, 0, time.UTC)

func createPendingTicket(t *testing.T) *ticket.Ticket {
	t.Helper()
	code, err := ticket.NewCode(2026, 1)
	require.NoError(t, err)
	tk, err := ticket.NewTicket(kernel.NewUUID(), kernel.NewUUID(), code, issuedAt)
	require.NoError(t, err)
	return tk
}

func mustDelivery(t *testing.T, quantity int, outcome ticket.DeliveryStatus, notes string) ticket.Delivery {
	t.Helper()
	d, err := ticket.NewDelivery(quantity, outcome, notes, 1000)
	require.NoError(t, err)
	return d
}

func TestNewTicket(t *testing.T) {
	t.Run("should issue a pending ticket", func(t *testing.T) {
		tk := createPendingTicket(t)

		require.NoError(t, tk.Validate())
		assert.Equal(t, ticket.Pending, tk.Status())
		assert.Equal(t, "TKT-2026-001", tk.Code().String())
		assert.Nil(t, tk.ArrivalAt())
		assert.Nil(t, tk.DeliveredQuantity())
		require.Len(t, tk.Events(), 1)
		assert.Equal(t, event.TicketIssued, tk.Events()[0].Name)
	})

	t.Run("should reject a zero code", func(t *testing.T) {
		tk, err := ticket.NewTicket(kernel.NewUUID(), kernel.NewUUID(), ticket.Code{}, issuedAt)

		require.ErrorIs(t, err, ticket.ErrCodeIsNotConstructed)
		assert.Nil(t, tk)
	})
}

func TestTicket_RegisterArrival(t *testing.T) {
	t.Run("should move pending ticket to in progress", func(t *testing.T) {
		tk := createPendingTicket(t)
		at := issuedAt.Add(time.Hour)

		require.NoError(t, tk.RegisterArrival(at))

		assert.Equal(t, ticket.InProgress, tk.Status())
		require.NotNil(t, tk.ArrivalAt())
		assert.Equal(t, at, *tk.ArrivalAt())
		assert.Equal(t, event.TicketArrivalRegistered, tk.Events()[1].Name)
	})

	t.Run("should refuse a second arrival", func(t *testing.T) {
		tk := createPendingTicket(t)
		require.NoError(t, tk.RegisterArrival(issuedAt))

		err := tk.RegisterArrival(issuedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestTicket_RegisterDelivery(t *testing.T) {
	testCases := []struct {
		name     string
		quantity int
		outcome  ticket.DeliveryStatus
		notes    string
	}{
		{"delivered", 1000, ticket.Delivered, ""},
		{"partial without notes", 300, ticket.Partial, ""},
		{"cancelled with reason", 0, ticket.Cancelled, "requester did not show up"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tk := createPendingTicket(t)

			err := tk.RegisterDelivery(mustDelivery(t, tc.quantity, tc.outcome, tc.notes), issuedAt)

			require.NoError(t, err)
			assert.Equal(t, tc.outcome, tk.Status())
			require.NotNil(t, tk.DeliveredQuantity())
			assert.Equal(t, tc.quantity, *tk.DeliveredQuantity())
			assert.Equal(t, tc.notes, tk.Notes())
		})
	}

	t.Run("should accept delivery after arrival", func(t *testing.T) {
		tk := createPendingTicket(t)
		require.NoError(t, tk.RegisterArrival(issuedAt))

		require.NoError(t, tk.RegisterDelivery(mustDelivery(t, 500, ticket.Delivered, ""), issuedAt))
		assert.Equal(t, ticket.Delivered, tk.Status())
	})
}

func TestTicket_AlreadyResolved(t *testing.T) {
	for _, outcome := range []ticket.DeliveryStatus{ticket.Delivered, ticket.Partial, ticket.Cancelled} {
		t.Run(outcome.String(), func(t *testing.T) {
			tk := createPendingTicket(t)
			require.NoError(t, tk.RegisterDelivery(mustDelivery(t, 10, outcome, "reason"), issuedAt))

			require.ErrorIs(t, tk.RegisterArrival(issuedAt), errs.ErrAlreadyResolved)
			require.ErrorIs(t, tk.RegisterDelivery(mustDelivery(t, 10, ticket.Delivered, ""), issuedAt),
				errs.ErrAlreadyResolved)
			require.ErrorIs(t, tk.Cancel("late", issuedAt), errs.ErrAlreadyResolved)
			assert.Equal(t, outcome, tk.Status())
		})
	}
}

func TestTicket_Cancel(t *testing.T) {
	tk := createPendingTicket(t)

	require.NoError(t, tk.Cancel("request cancelled", issuedAt))

	assert.Equal(t, ticket.Cancelled, tk.Status())
	assert.Equal(t, 0, *tk.DeliveredQuantity())
	assert.Equal(t, "request cancelled", tk.Notes())

	other := createPendingTicket(t)
	require.ErrorIs(t, other.Cancel(" ", issuedAt), errs.ErrValueIsRequired)
}

func TestNewDelivery(t *testing.T) {
	testCases := []struct {
		name     string
		quantity int
		outcome  ticket.DeliveryStatus
		notes    string
		target   error
	}{
		{"cancelled without notes", 0, ticket.Cancelled, "  ", errs.ErrValueIsRequired},
		{"delivered with zero quantity", 0, ticket.Delivered, "", errs.ErrValueIsInvalid},
		{"more than requested", 1001, ticket.Partial, "", errs.ErrValueIsOutOfRange},
		{"negative quantity", -1, ticket.Partial, "", errs.ErrValueIsOutOfRange},
		{"non terminal outcome", 10, ticket.InProgress, "", errs.ErrValueIsInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ticket.NewDelivery(tc.quantity, tc.outcome, tc.notes, 1000)

			require.ErrorIs(t, err, tc.target)
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestOutcomeFromString(t *testing.T) {
	o, err := ticket.OutcomeFromString("partial")
	require.NoError(t, err)
	assert.Equal(t, ticket.Partial, o)

	_, err = ticket.OutcomeFromString("pending")
	assert.True(t, errs.IsValidation(err))
}
