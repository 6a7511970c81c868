package commands_test

import (
	"testing"
	"time"

	"waterdelivery/internal/core/domain/model/assignment"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/locality"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/core/domain/model/ticket"

	"github.com/stretchr/testify/require"
)

func restoredRequest(t *testing.T, status request.Status, quantity int) *request.Request {
	t.Helper()
	r, err := request.RestoreRequest(kernel.NewUUID(), kernel.NewUUID(), request.Normal, quantity, "",
		status, testNow.Add(-time.Hour), testNow.Add(23*time.Hour))
	require.NoError(t, err)
	return r
}

func activeLocality(t *testing.T, available int) *locality.Locality {
	t.Helper()
	l, err := locality.RestoreLocality(kernel.NewUUID(), "Central", "Main 1", available, 1000, true)
	require.NoError(t, err)
	return l
}

func restoredTicket(t *testing.T, requestID kernel.UUID, status ticket.DeliveryStatus, delivered *int) *ticket.Ticket {
	t.Helper()
	code, err := ticket.NewCode(2026, 5)
	require.NoError(t, err)
	tk, err := ticket.RestoreTicket(kernel.NewUUID(), requestID, code, status, testNow, nil, delivered, "")
	require.NoError(t, err)
	return tk
}

func restoredAssignment(t *testing.T, requestID, localityID kernel.UUID) *assignment.Assignment {
	t.Helper()
	a, err := assignment.RestoreAssignment(kernel.NewUUID(), requestID, localityID, kernel.NewUUID(), "", testNow)
	require.NoError(t, err)
	return a
}

func intPtr(v int) *int {
	return &v
}
