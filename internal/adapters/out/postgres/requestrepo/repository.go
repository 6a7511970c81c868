package requestrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRequestRepository implements ports.RequestRepository using GORM.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate event.Aggregate)
}

// NewGormRequestRepository creates a request repository.
func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new request.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the status with a conditional statement:
//
//	UPDATE requests SET status = $1 WHERE id = $2 AND status = $3
//
// where $3 is the status the aggregate was loaded with. No affected row means
// another transaction moved the request first; the write is refused with
// errs.ErrInvalidTransition so that concurrent transitions never overwrite
// each other. Category, quantity and deadline never change.
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), aggregate.StoredStatus().String()).
		Update("status", aggregate.Status().String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.staleWrite(ctx, aggregate)
	}

	aggregate.MarkStored()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRequestRepository) staleWrite(ctx context.Context, aggregate *request.Request) error {
	var current []string
	err := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Pluck("status", &current).Error
	if err != nil {
		return err
	}
	if len(current) == 0 {
		return errs.NewObjectNotFoundError("requestId", aggregate.ID().String())
	}

	return fmt.Errorf("%w: request %s is %s, expected %s",
		errs.ErrInvalidTransition, aggregate.ID(), current[0], aggregate.StoredStatus())
}

// Get loads a request by id.
func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("requestId", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// GetOverduePending lists Pending requests past their deadline, earliest
// deadline first.
func (r *GormRequestRepository) GetOverduePending(ctx context.Context, now time.Time) ([]*request.Request, error) {
	var dtos []RequestDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND deadline < ?", request.Pending.String(), now.UTC()).
		Order("deadline, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*request.Request, 0, len(dtos))
	for _, dto := range dtos {
		req, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}
