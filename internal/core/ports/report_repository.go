package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/report"
)

// ReportRepository stores report snapshots.
type ReportRepository interface {
	// Add persists a new snapshot.
	Add(ctx context.Context, aggregate *report.Report) error

	// Delete removes a snapshot. A missing snapshot returns an
	// *errs.ObjectNotFoundError.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get returns a snapshot or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*report.Report, error)

	// GetByLocality returns the most recent snapshots of a locality, newest first.
	GetByLocality(ctx context.Context, localityID kernel.UUID, limit int) ([]*report.Report, error)
}
