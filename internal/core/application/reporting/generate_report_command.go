package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/report"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/pkg/errs"

	"go.uber.org/zap"
)

type (
	// ReportUoW is the unit of work used by report commands.
	ReportUoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		LocalityRepository() ports.LocalityRepository
		ReportRepository() ports.ReportRepository
	}

	// ReportUoWFactory creates report units of work.
	ReportUoWFactory interface {
		Create() ReportUoW
	}
)

// Generator builds GenerateReportCommand values sharing the same collaborators.
type Generator struct {
	uowFactory ReportUoWFactory
	calculator ports.ReportCalculator
	publisher  ports.EventPublisher
	clock      kernel.Clock
	logger     *zap.Logger
}

// NewGenerator creates a Generator. publisher may be nil.
func NewGenerator(
	uowFactory ReportUoWFactory,
	calculator ports.ReportCalculator,
	publisher ports.EventPublisher,
	clock kernel.Clock,
	logger *zap.Logger,
) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		uowFactory: uowFactory,
		calculator: calculator,
		publisher:  publisher,
		clock:      clock,
		logger:     logger.Named("reporting"),
	}
}

// NewGenerateReportCommand validates the inputs. The report id is fixed here
// so that a redo recreates the same snapshot.
func (g *Generator) NewGenerateReportCommand(
	localityID, managerID kernel.UUID,
	kind string,
	periodStart, periodEnd time.Time,
) (*GenerateReportCommand, error) {
	k, kindErr := report.KindFromString(kind)
	period, periodErr := report.NewPeriod(periodStart, periodEnd)

	if err := errors.Join(localityID.Validate(), managerID.Validate(), kindErr, periodErr); err != nil {
		return nil, err
	}

	return &GenerateReportCommand{
		generator:  g,
		reportID:   kernel.NewUUID(),
		localityID: localityID,
		managerID:  managerID,
		kind:       k,
		period:     period,
	}, nil
}

// GenerateReportCommand computes and stores a report snapshot. Undo deletes
// the snapshot.
type GenerateReportCommand struct {
	generator  *Generator
	reportID   kernel.UUID
	localityID kernel.UUID
	managerID  kernel.UUID
	kind       report.Kind
	period     report.Period

	generated *report.Report
}

func (c *GenerateReportCommand) ReportID() kernel.UUID { return c.reportID }

// Report returns the snapshot stored by the last Execute, nil before it.
func (c *GenerateReportCommand) Report() *report.Report { return c.generated }

// Execute fails with an *errs.ObjectNotFoundError for an unknown locality.
func (c *GenerateReportCommand) Execute(ctx context.Context) (string, error) {
	g := c.generator

	// Metrics are read outside the transaction; the calculator has its own
	// connection.
	metrics, err := g.calculator.Calculate(ctx, c.localityID, c.period)
	if err != nil {
		return "", fmt.Errorf("calculate report metrics: %w", err)
	}

	uow := g.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.LocalityRepository().Get(ctx, c.localityID); err != nil {
		return "", err
	}

	generated, err := report.NewReport(c.reportID, c.localityID, c.managerID, c.kind, c.period, metrics, g.clock.Now())
	if err != nil {
		return "", err
	}

	if err = uow.ReportRepository().Add(ctx, generated); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	c.generated = generated
	c.publish(ctx, generated)

	return generated.Summary(), nil
}

// Undo deletes the snapshot. A snapshot that is already gone counts as undone.
func (c *GenerateReportCommand) Undo(ctx context.Context) error {
	uow := c.generator.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ReportRepository().Delete(ctx, c.reportID); err != nil && !errs.IsNotFound(err) {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	c.generated = nil
	return nil
}

func (c *GenerateReportCommand) Describe() string {
	return fmt.Sprintf("generate %s report %s for locality %s (%s..%s)",
		c.kind, c.reportID, c.localityID,
		c.period.Start.Format(time.DateOnly), c.period.End.Format(time.DateOnly))
}

func (c *GenerateReportCommand) publish(ctx context.Context, generated *report.Report) {
	g := c.generator
	if g.publisher == nil {
		return
	}

	e := event.New(event.ReportGenerated, generated.ID(), generated.GeneratedAt(), map[string]any{
		"localityId":    generated.LocalityID().String(),
		"managerId":     generated.ManagerID().String(),
		"kind":          string(generated.Kind()),
		"totalRequests": generated.Metrics().TotalRequests,
	})
	if err := g.publisher.Publish(ctx, e); err != nil {
		g.logger.Warn("failed to publish domain events", zap.Int("count", 1), zap.Error(err))
	}
}

// Reader lists stored snapshots.
type Reader struct {
	uowFactory ReportUoWFactory
}

func NewReader(uowFactory ReportUoWFactory) Reader {
	return Reader{uowFactory: uowFactory}
}

// ByLocality returns up to limit snapshots of a locality, newest first. A
// limit of zero or less returns all of them.
func (r Reader) ByLocality(ctx context.Context, localityID kernel.UUID, limit int) ([]*report.Report, error) {
	if err := localityID.Validate(); err != nil {
		return nil, err
	}
	return r.uowFactory.Create().ReportRepository().GetByLocality(ctx, localityID, limit)
}

// ByID returns one snapshot or an *errs.ObjectNotFoundError.
func (r Reader) ByID(ctx context.Context, id kernel.UUID) (*report.Report, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.uowFactory.Create().ReportRepository().Get(ctx, id)
}
