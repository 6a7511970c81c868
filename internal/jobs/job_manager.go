package jobs

import (
	"fmt"

	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/ports"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	overdueScanJob *OverdueScanJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	overdueHandler queries.GetOverdueRequestsQueryHandler,
	publisher ports.EventPublisher,
	clock kernel.Clock,
	overdueSchedule string,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		overdueScanJob: NewOverdueScanJob(overdueHandler, publisher, clock, overdueSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueScanJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue scan job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueScanJob.Stop()
}
