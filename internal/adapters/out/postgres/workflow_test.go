package postgres_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceCodes hands out increasing ticket codes, or fails when err is set.
type sequenceCodes struct {
	next atomic.Int64
	err  error
}

func (s *sequenceCodes) Next(_ context.Context, year int) (ticket.Code, error) {
	if s.err != nil {
		return ticket.Code{}, s.err
	}
	return ticket.NewCode(year, s.next.Add(1))
}

func assignHandler(factory commands.UoWFactory, codes *sequenceCodes) commands.AssignRequestCommandHandler {
	return commands.NewAssignRequestCommandHandler(factory, codes, kernel.FixedClock{At: testNow})
}

func TestWorkflow_AssignArriveDeliver(t *testing.T) {
	ctx := t.Context()
	publisher := &recordingPublisher{}
	factory := newFactory(newSQLiteDB(t), publisher)
	clock := kernel.FixedClock{At: testNow}

	loc := seedLocality(t, factory, 500, 1000)
	req := seedRequest(t, factory, request.Normal, 500)

	assignCmd, err := commands.NewAssignRequestCommand(req.ID(), loc.ID(), kernel.NewUUID(), "")
	require.NoError(t, err)
	assigned, err := assignHandler(commandUoW{factory}, &sequenceCodes{}).Handle(ctx, assignCmd)
	require.NoError(t, err)

	assert.Equal(t, request.Assigned, assigned.Request.Status())
	assert.Equal(t, ticket.Pending, assigned.Ticket.Status())
	assert.Equal(t, "TKT-2026-001", assigned.Ticket.Code().String())
	assert.Equal(t, 0, getLocality(t, factory, loc.ID()).AvailableLiters())

	arrivalCmd, _ := commands.NewRegisterArrivalCommand(assigned.Ticket.ID())
	_, err = commands.NewRegisterArrivalCommandHandler(commandUoW{factory}, clock).Handle(ctx, arrivalCmd)
	require.NoError(t, err)

	deliveryCmd, _ := commands.NewRegisterDeliveryCommand(assigned.Ticket.ID(), 500, ticket.Delivered, "")
	delivered, err := commands.NewRegisterDeliveryCommandHandler(
		commandUoW{factory}, commands.CapacityPolicy{}, clock).Handle(ctx, deliveryCmd)
	require.NoError(t, err)
	assert.Equal(t, request.Completed, delivered.Request.Status())

	stored, err := factory.Create().RequestRepository().Get(ctx, req.ID())
	require.NoError(t, err)
	assert.Equal(t, request.Completed, stored.Status())

	_, err = commands.NewRegisterArrivalCommandHandler(commandUoW{factory}, clock).Handle(ctx, arrivalCmd)
	require.ErrorIs(t, err, errs.ErrAlreadyResolved)

	assert.Equal(t, []string{
		event.RequestCreated,
		event.RequestStatusChanged, event.TicketIssued,
		event.TicketArrivalRegistered, event.RequestStatusChanged,
		event.TicketDeliveryRegistered, event.RequestStatusChanged,
	}, publisher.names())
}

func TestWorkflow_FailedAssignmentRollsBack(t *testing.T) {
	ctx := t.Context()
	publisher := &recordingPublisher{}
	factory := newFactory(newSQLiteDB(t), publisher)

	loc := seedLocality(t, factory, 800, 1000)
	req := seedRequest(t, factory, request.Normal, 300)

	cmd, _ := commands.NewAssignRequestCommand(req.ID(), loc.ID(), kernel.NewUUID(), "")
	_, err := assignHandler(commandUoW{factory}, &sequenceCodes{err: errors.New("sequence unavailable")}).
		Handle(ctx, cmd)
	require.Error(t, err)

	assert.Equal(t, 800, getLocality(t, factory, loc.ID()).AvailableLiters())
	stored, err := factory.Create().RequestRepository().Get(ctx, req.ID())
	require.NoError(t, err)
	assert.Equal(t, request.Pending, stored.Status())
	_, err = factory.Create().AssignmentRepository().GetByRequest(ctx, req.ID())
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, []string{event.RequestCreated}, publisher.names())
}

// assignAndArrive drives a fresh request to InProgress and returns its ticket.
func assignAndArrive(t *testing.T, factory ports.UnitOfWorkFactory, quantity int) (*request.Request, *ticket.Ticket) {
	t.Helper()
	ctx := t.Context()

	loc := seedLocality(t, factory, 1000, 1000)
	req := seedRequest(t, factory, request.Normal, quantity)

	assignCmd, err := commands.NewAssignRequestCommand(req.ID(), loc.ID(), kernel.NewUUID(), "")
	require.NoError(t, err)
	assigned, err := assignHandler(commandUoW{factory}, &sequenceCodes{}).Handle(ctx, assignCmd)
	require.NoError(t, err)

	arrivalCmd, _ := commands.NewRegisterArrivalCommand(assigned.Ticket.ID())
	arrived, err := commands.NewRegisterArrivalCommandHandler(
		commandUoW{factory}, kernel.FixedClock{At: testNow}).Handle(ctx, arrivalCmd)
	require.NoError(t, err)
	return arrived.Request, arrived.Ticket
}

func TestWorkflow_StaleWritesAreRejected(t *testing.T) {
	ctx := t.Context()
	factory := newFactory(newSQLiteDB(t), nil)
	req, tk := assignAndArrive(t, factory, 500)

	staleTicket, err := factory.Create().TicketRepository().Get(ctx, tk.ID())
	require.NoError(t, err)
	staleRequest, err := factory.Create().RequestRepository().Get(ctx, req.ID())
	require.NoError(t, err)

	deliveryCmd, _ := commands.NewRegisterDeliveryCommand(tk.ID(), 500, ticket.Delivered, "")
	_, err = commands.NewRegisterDeliveryCommandHandler(
		commandUoW{factory}, commands.CapacityPolicy{}, kernel.FixedClock{At: testNow}).Handle(ctx, deliveryCmd)
	require.NoError(t, err)

	cancelled, err := ticket.NewDelivery(0, ticket.Cancelled, "no show", 500)
	require.NoError(t, err)
	require.NoError(t, staleTicket.RegisterDelivery(cancelled, testNow))
	require.NoError(t, staleRequest.Apply(request.ActionCancel, testNow))

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	err = uow.TicketRepository().Update(ctx, staleTicket)
	require.ErrorIs(t, err, errs.ErrAlreadyResolved)
	err = uow.RequestRepository().Update(ctx, staleRequest)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.NoError(t, uow.Rollback(ctx))

	storedTicket, err := factory.Create().TicketRepository().Get(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, ticket.Delivered, storedTicket.Status())
	storedRequest, err := factory.Create().RequestRepository().Get(ctx, req.ID())
	require.NoError(t, err)
	assert.Equal(t, request.Completed, storedRequest.Status())
}

func TestWorkflow_ConcurrentAssignmentsNeverOversell(t *testing.T) {
	const (
		capacity = 1000
		demand   = 300
		callers  = 10
	)

	ctx := t.Context()
	factory := newFactory(newSQLiteDB(t), nil)
	loc := seedLocality(t, factory, capacity, capacity)

	requests := make([]*request.Request, callers)
	for i := range requests {
		requests[i] = seedRequest(t, factory, request.Normal, demand)
	}

	handler := assignHandler(commandUoW{factory}, &sequenceCodes{})
	var (
		wg           sync.WaitGroup
		succeeded    atomic.Int64
		insufficient atomic.Int64
	)
	for _, req := range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewAssignRequestCommand(req.ID(), loc.ID(), kernel.NewUUID(), "")
			if err != nil {
				return
			}
			_, err = handler.Handle(ctx, cmd)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, errs.ErrInsufficientCapacity):
				insufficient.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(capacity/demand), succeeded.Load())
	assert.Equal(t, int64(callers-capacity/demand), insufficient.Load())
	assert.Equal(t, capacity-(capacity/demand)*demand, getLocality(t, factory, loc.ID()).AvailableLiters())
}

func TestWorkflow_CancelRestoresCapacityUnderPolicy(t *testing.T) {
	testCases := []struct {
		name      string
		policy    commands.CapacityPolicy
		available int
	}{
		{"committed reservation", commands.CapacityPolicy{}, 600},
		{"restore on cancel", commands.CapacityPolicy{RestoreOnCancel: true}, 1000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			factory := newFactory(newSQLiteDB(t), nil)
			loc := seedLocality(t, factory, 1000, 1000)
			req := seedRequest(t, factory, request.Normal, 400)

			assignCmd, _ := commands.NewAssignRequestCommand(req.ID(), loc.ID(), kernel.NewUUID(), "")
			assigned, err := assignHandler(commandUoW{factory}, &sequenceCodes{}).Handle(ctx, assignCmd)
			require.NoError(t, err)

			cancelCmd, _ := commands.NewChangeRequestStatusCommand(req.ID(), request.ActionCancel, "")
			cancelled, err := commands.NewChangeRequestStatusCommandHandler(
				commandUoW{factory}, tc.policy, kernel.FixedClock{At: testNow}).Handle(ctx, cancelCmd)
			require.NoError(t, err)
			assert.Equal(t, request.Cancelled, cancelled.Status())

			tk, err := factory.Create().TicketRepository().Get(ctx, assigned.Ticket.ID())
			require.NoError(t, err)
			assert.Equal(t, ticket.Cancelled, tk.Status())
			assert.Equal(t, commands.DefaultCancellationReason, tk.Notes())

			assert.Equal(t, tc.available, getLocality(t, factory, loc.ID()).AvailableLiters())
		})
	}
}

func TestWorkflow_CreateRequest(t *testing.T) {
	ctx := t.Context()
	publisher := &recordingPublisher{}
	factory := newFactory(newSQLiteDB(t), publisher)

	cmd, err := commands.NewCreateRequestCommand(kernel.NewUUID(), kernel.NewUUID(), request.Commercial, 4000, "hotel")
	require.NoError(t, err)
	created, err := commands.NewCreateRequestCommandHandler(requestUoW{factory}, kernel.FixedClock{At: testNow}).
		Handle(ctx, cmd)
	require.NoError(t, err)

	stored, err := factory.Create().RequestRepository().Get(ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, "hotel", stored.Description())
	assert.Equal(t, 3, stored.Priority())
	assert.Equal(t, []string{event.RequestCreated}, publisher.names())
}
