package ticketrepo

import (
	"context"
	"errors"
	"fmt"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTicketRepository implements ports.TicketRepository using GORM.
type GormTicketRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate event.Aggregate)
}

// NewGormTicketRepository creates a ticket repository.
func NewGormTicketRepository(db *gorm.DB, tracker aggregateTracker) *GormTicketRepository {
	return &GormTicketRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a newly issued ticket. A duplicate code fails on the unique index.
func (r *GormTicketRepository) Add(ctx context.Context, aggregate *ticket.Ticket) error {
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

// Update writes the delivery fields only if storage still holds the status
// the ticket was loaded with. A ticket resolved by another transaction in the
// meantime yields errs.ErrAlreadyResolved, any other concurrent move
// errs.ErrInvalidTransition.
func (r *GormTicketRepository) Update(ctx context.Context, aggregate *ticket.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TicketDTO{}).
		Where("id = ? AND status = ?", dto.ID, aggregate.StoredStatus().String()).
		Updates(map[string]any{
			"status":             dto.Status,
			"arrival_at":         dto.ArrivalAt,
			"delivered_quantity": dto.DeliveredQuantity,
			"notes":              dto.Notes,
		})
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

func (r *GormTicketRepository) staleWrite(ctx context.Context, aggregate *ticket.Ticket) error {
	current, err := r.Get(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	if current.Status().IsTerminal() {
		return fmt.Errorf("%w: ticket %s is %s", errs.ErrAlreadyResolved, aggregate.Code(), current.Status())
	}
	return fmt.Errorf("%w: ticket %s is %s, expected %s",
		errs.ErrInvalidTransition, aggregate.Code(), current.Status(), aggregate.StoredStatus())
}

// Get loads a ticket by id.
func (r *GormTicketRepository) Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "ticketId", id.String(), "id = ?", id.Bytes())
}

// GetByRequest loads the ticket of a request.
func (r *GormTicketRepository) GetByRequest(ctx context.Context, requestID kernel.UUID) (*ticket.Ticket, error) {
	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "requestId", requestID.String(), "request_id = ?", requestID.Bytes())
}

func (r *GormTicketRepository) first(
	ctx context.Context,
	param, key string,
	query string,
	args ...any,
) (*ticket.Ticket, error) {
	var dto TicketDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}

	return ToDomain(dto)
}
