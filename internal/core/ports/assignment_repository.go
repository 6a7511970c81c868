package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/assignment"
	"waterdelivery/internal/core/domain/model/kernel"
)

// AssignmentRepository stores assignments. Assignments are never updated.
type AssignmentRepository interface {
	// Add persists a new assignment. A second assignment for the same request
	// violates a unique constraint and fails.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// GetByRequest returns the assignment of a request or an *errs.ObjectNotFoundError.
	GetByRequest(ctx context.Context, requestID kernel.UUID) (*assignment.Assignment, error)
}
