package commands_test

import (
	"context"
	"time"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/domain/model/assignment"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/locality"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, time.August, 20, 11, 0, 0, 0, time.UTC)

var testClock = kernel.FixedClock{At: testNow}

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockRequestRepository) GetOverduePending(ctx context.Context, now time.Time) ([]*request.Request, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.Request), args.Error(1)
}

type MockLocalityRepository struct{ mock.Mock }

func (m *MockLocalityRepository) Add(ctx context.Context, l *locality.Locality) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLocalityRepository) Update(ctx context.Context, l *locality.Locality) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLocalityRepository) Get(ctx context.Context, id kernel.UUID) (*locality.Locality, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*locality.Locality), args.Error(1)
}

func (m *MockLocalityRepository) GetAllActive(ctx context.Context) ([]*locality.Locality, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*locality.Locality), args.Error(1)
}

func (m *MockLocalityRepository) Reserve(ctx context.Context, id kernel.UUID, liters int) error {
	args := m.Called(ctx, id, liters)
	return args.Error(0)
}

func (m *MockLocalityRepository) Release(ctx context.Context, id kernel.UUID, liters int) error {
	args := m.Called(ctx, id, liters)
	return args.Error(0)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByRequest(ctx context.Context, requestID kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

type MockTicketRepository struct{ mock.Mock }

func (m *MockTicketRepository) Add(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketRepository) Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByRequest(ctx context.Context, requestID kernel.UUID) (*ticket.Ticket, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) RequestRepository() ports.RequestRepository {
	args := m.Called()
	return args.Get(0).(ports.RequestRepository)
}

func (m *MockUoW) LocalityRepository() ports.LocalityRepository {
	args := m.Called()
	return args.Get(0).(ports.LocalityRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) TicketRepository() ports.TicketRepository {
	args := m.Called()
	return args.Get(0).(ports.TicketRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	args := m.Called()
	return args.Get(0).(commands.RequestUoW)
}

type MockLocalityUoWFactory struct{ mock.Mock }

func (m *MockLocalityUoWFactory) Create() commands.LocalityUoW {
	args := m.Called()
	return args.Get(0).(commands.LocalityUoW)
}

type MockTicketCodeGenerator struct{ mock.Mock }

func (m *MockTicketCodeGenerator) Next(ctx context.Context, year int) (ticket.Code, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(ticket.Code), args.Error(1)
}

// workflowMocks wires a MockUoW to fresh repository mocks.
type workflowMocks struct {
	uow         *MockUoW
	factory     *MockUoWFactory
	requests    *MockRequestRepository
	localities  *MockLocalityRepository
	assignments *MockAssignmentRepository
	tickets     *MockTicketRepository
}

func newWorkflowMocks() workflowMocks {
	m := workflowMocks{
		uow:         new(MockUoW),
		factory:     new(MockUoWFactory),
		requests:    new(MockRequestRepository),
		localities:  new(MockLocalityRepository),
		assignments: new(MockAssignmentRepository),
		tickets:     new(MockTicketRepository),
	}
	m.factory.On("Create").Return(m.uow).Once()
	m.uow.On("RequestRepository").Return(m.requests).Maybe()
	m.uow.On("LocalityRepository").Return(m.localities).Maybe()
	m.uow.On("AssignmentRepository").Return(m.assignments).Maybe()
	m.uow.On("TicketRepository").Return(m.tickets).Maybe()
	return m
}

func (m workflowMocks) assertExpectations(t mock.TestingT) {
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.requests.AssertExpectations(t)
	m.localities.AssertExpectations(t)
	m.assignments.AssertExpectations(t)
	m.tickets.AssertExpectations(t)
}
