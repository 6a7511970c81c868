package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	httpin "waterdelivery/internal/adapters/in/http"
	"waterdelivery/internal/adapters/out/eventlog"
	"waterdelivery/internal/adapters/out/kafka"
	"waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/adapters/out/postgres/reportrepo"
	"waterdelivery/internal/adapters/out/redis"
	"waterdelivery/internal/core/application/reporting"
	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/services"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	redis      *goredis.Client
	publisher  ports.EventPublisher
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	logger     *zap.Logger

	closers []func() error
}

// NewCompositionRoot wires the publishers around the given connections. With
// no Kafka brokers configured events are only written to the log.
func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *goredis.Client, logger *zap.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config: config,
		gormDB: gormDB,
		redis:  redisClient,
		clock:  kernel.SystemClock{},
		logger: logger,
	}

	var publisher ports.EventPublisher = eventlog.NewPublisher(logger)
	if len(config.KafkaBrokers) > 0 {
		producer, err := kafka.NewSyncProducer(config.KafkaBrokers)
		if err != nil {
			return nil, err
		}
		kafkaPublisher := kafka.NewEventPublisher(producer, config.KafkaEventsTopic, logger)
		root.closers = append(root.closers, kafkaPublisher.Close)
		publisher = eventlog.Fanout{publisher, kafkaPublisher}
	}
	root.publisher = publisher
	root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)

	return root, nil
}

// Close releases the producers opened by the root.
func (c *CompositionRoot) Close() error {
	var err error
	for _, closeFn := range c.closers {
		err = errors.Join(err, closeFn())
	}
	return err
}

func (c *CompositionRoot) capacityPolicy() commands.CapacityPolicy {
	return commands.CapacityPolicy{RestoreOnCancel: c.config.RestoreCapacityOnCancel}
}

func (c *CompositionRoot) workflowFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateTicketCodeGenerator() *redis.TicketCodeGenerator {
	return redis.NewTicketCodeGenerator(c.redis, "")
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	var f commands.RequestUoWFactory = FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRequestCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateChangeRequestStatusCommandHandler() commands.ChangeRequestStatusCommandHandler {
	return commands.NewChangeRequestStatusCommandHandler(c.workflowFactory(), c.capacityPolicy(), c.clock)
}

func (c *CompositionRoot) CreateAssignRequestCommandHandler() commands.AssignRequestCommandHandler {
	return commands.NewAssignRequestCommandHandler(c.workflowFactory(), c.CreateTicketCodeGenerator(), c.clock)
}

func (c *CompositionRoot) CreateRegisterArrivalCommandHandler() commands.RegisterArrivalCommandHandler {
	return commands.NewRegisterArrivalCommandHandler(c.workflowFactory(), c.clock)
}

func (c *CompositionRoot) CreateRegisterDeliveryCommandHandler() commands.RegisterDeliveryCommandHandler {
	return commands.NewRegisterDeliveryCommandHandler(c.workflowFactory(), c.capacityPolicy(), c.clock)
}

func (c *CompositionRoot) CreateAddLocalityCommandHandler() commands.AddLocalityCommandHandler {
	var f commands.LocalityUoWFactory = FuncLocalityUoWFactory(func() commands.LocalityUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddLocalityCommandHandler(f)
}

func (c *CompositionRoot) CreateSetLocalityActiveCommandHandler() commands.SetLocalityActiveCommandHandler {
	var f commands.LocalityUoWFactory = FuncLocalityUoWFactory(func() commands.LocalityUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetLocalityActiveCommandHandler(f)
}

func (c *CompositionRoot) CreateGetRequestQueryHandler() queries.GetRequestQueryHandler {
	return queries.NewGetRequestQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateGetRequestsQueryHandler() queries.GetRequestsQueryHandler {
	return queries.NewGetRequestsQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateGetLocalityQueryHandler() queries.GetLocalityQueryHandler {
	return queries.NewGetLocalityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLocalitiesQueryHandler() queries.GetLocalitiesQueryHandler {
	return queries.NewGetLocalitiesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSelectCandidatesQueryHandler() queries.SelectCandidatesQueryHandler {
	return queries.NewSelectCandidatesQueryHandler(c.gormDB, services.NewStrategyRegistry())
}

func (c *CompositionRoot) CreateGetTicketByCodeQueryHandler() queries.GetTicketByCodeQueryHandler {
	return queries.NewGetTicketByCodeQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenTicketsByLocalityQueryHandler() queries.GetOpenTicketsByLocalityQueryHandler {
	return queries.NewGetOpenTicketsByLocalityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueRequestsQueryHandler() queries.GetOverdueRequestsQueryHandler {
	return queries.NewGetOverdueRequestsQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateReports() httpin.Reports {
	var f reporting.ReportUoWFactory = FuncReportUoWFactory(func() reporting.ReportUoW {
		return c.uowFactory.Create()
	})
	return httpin.Reports{
		Generator: reporting.NewGenerator(f, reportrepo.NewGormReportCalculator(c.gormDB), c.publisher, c.clock, c.logger),
		Invoker:   reporting.NewInvoker(c.clock, c.logger),
		Reader:    reporting.NewReader(f),
	}
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateRequest:       c.CreateCreateRequestCommandHandler(),
		ChangeRequestStatus: c.CreateChangeRequestStatusCommandHandler(),
		AssignRequest:       c.CreateAssignRequestCommandHandler(),
		RegisterArrival:     c.CreateRegisterArrivalCommandHandler(),
		RegisterDelivery:    c.CreateRegisterDeliveryCommandHandler(),
		AddLocality:         c.CreateAddLocalityCommandHandler(),
		SetLocalityActive:   c.CreateSetLocalityActiveCommandHandler(),

		GetRequest:               c.CreateGetRequestQueryHandler(),
		GetRequests:              c.CreateGetRequestsQueryHandler(),
		GetLocality:              c.CreateGetLocalityQueryHandler(),
		GetLocalities:            c.CreateGetLocalitiesQueryHandler(),
		SelectCandidates:         c.CreateSelectCandidatesQueryHandler(),
		GetTicketByCode:          c.CreateGetTicketByCodeQueryHandler(),
		GetOpenTicketsByLocality: c.CreateGetOpenTicketsByLocalityQueryHandler(),
	}, c.CreateReports(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetOverdueRequestsQueryHandler(),
		c.publisher,
		c.clock,
		c.config.OverdueScanSchedule,
		c.logger,
	)
}

// SeedTicketCodes raises the Redis counter of the current year to the highest
// sequence already stored, so that a fresh Redis never reissues a code.
func (c *CompositionRoot) SeedTicketCodes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	year := c.clock.Now().Year()
	query, err := queries.NewGetLastTicketSequenceQuery(year)
	if err != nil {
		return err
	}

	last, err := queries.NewGetLastTicketSequenceQueryHandler(c.gormDB).Handle(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to read last ticket sequence: %w", err)
	}

	if err = c.CreateTicketCodeGenerator().Seed(ctx, year, last); err != nil {
		return err
	}
	c.logger.Info("ticket codes seeded", zap.Int("year", year), zap.Int64("sequence", last))
	return nil
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncLocalityUoWFactory func() commands.LocalityUoW

func (f FuncLocalityUoWFactory) Create() commands.LocalityUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncReportUoWFactory func() reporting.ReportUoW

func (f FuncReportUoWFactory) Create() reporting.ReportUoW {
	return f()
}
