package jobs

import (
	"context"
	"fmt"

	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OverdueScanJob raises request.overdue for every Pending request past its deadline.
type OverdueScanJob struct {
	handler   queries.GetOverdueRequestsQueryHandler
	publisher ports.EventPublisher
	clock     kernel.Clock
	schedule  string
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewOverdueScanJob creates the job. schedule is a cron spec with seconds or a
// descriptor such as "@every 1m".
func NewOverdueScanJob(
	handler queries.GetOverdueRequestsQueryHandler,
	publisher ports.EventPublisher,
	clock kernel.Clock,
	schedule string,
	logger *zap.Logger,
) *OverdueScanJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverdueScanJob{
		handler:   handler,
		publisher: publisher,
		clock:     clock,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.Named("overdue_scan_job"),
	}
}

// Start registers the scan on its schedule and starts the scheduler.
func (j *OverdueScanJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.logger.Error("overdue scan failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("overdue scan job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running scan to finish.
func (j *OverdueScanJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("overdue scan job stopped")
}

// Run performs one scan and returns the number of overdue requests found.
func (j *OverdueScanJob) Run(ctx context.Context) (int, error) {
	overdue, err := j.handler.Handle(ctx, queries.NewGetOverdueRequestsQuery())
	if err != nil {
		return 0, err
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	now := j.clock.Now()
	events := make([]event.Event, 0, len(overdue))
	for _, r := range overdue {
		events = append(events, event.New(event.RequestOverdue, r.ID, now, map[string]any{
			"category":  r.Category,
			"quantity":  r.Quantity,
			"priority":  r.Priority,
			"deadline":  r.Deadline,
			"overdueBy": r.Overdue.String(),
		}))
	}

	if j.publisher != nil {
		if err = j.publisher.Publish(ctx, events...); err != nil {
			j.logger.Warn("failed to publish domain events", zap.Int("count", len(events)), zap.Error(err))
		}
	}

	j.logger.Info("overdue requests found", zap.Int("count", len(overdue)))
	return len(overdue), nil
}
