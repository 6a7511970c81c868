package localityrepo

import (
	"context"
	"errors"
	"fmt"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/locality"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLocalityRepository implements ports.LocalityRepository using GORM.
type GormLocalityRepository struct {
	db *gorm.DB
}

// NewGormLocalityRepository creates a locality repository.
func NewGormLocalityRepository(db *gorm.DB) *GormLocalityRepository {
	return &GormLocalityRepository{db: db}
}

// Add inserts a new locality with its initial capacity.
func (r *GormLocalityRepository) Add(ctx context.Context, aggregate *locality.Locality) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes name, address and the active flag. Capacity columns are only
// ever changed by Reserve and Release.
func (r *GormLocalityRepository) Update(ctx context.Context, aggregate *locality.Locality) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&LocalityDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"name":    aggregate.Name(),
			"address": aggregate.Address(),
			"active":  aggregate.IsActive(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("localityId", aggregate.ID().String())
	}

	return nil
}

// Get loads a locality by id.
func (r *GormLocalityRepository) Get(ctx context.Context, id kernel.UUID) (*locality.Locality, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LocalityDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("localityId", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// GetAllActive lists active localities ordered by id.
func (r *GormLocalityRepository) GetAllActive(ctx context.Context) ([]*locality.Locality, error) {
	var dtos []LocalityDTO
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	localities := make([]*locality.Locality, 0, len(dtos))
	for _, dto := range dtos {
		l, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		localities = append(localities, l)
	}

	return localities, nil
}

// Reserve runs a single conditional decrement:
//
//	UPDATE localities SET available_liters = available_liters - $1
//	WHERE id = $2 AND active = $3 AND available_liters >= $4
//
// No affected row means the locality lacked capacity at the moment of the
// statement, whatever an earlier read said.
func (r *GormLocalityRepository) Reserve(ctx context.Context, id kernel.UUID, liters int) error {
	if err := validateLiters(id, liters); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&LocalityDTO{}).
		Where("id = ? AND active = ? AND available_liters >= ?", id.Bytes(), true, liters).
		Update("available_liters", gorm.Expr("available_liters - ?", liters))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: locality %s cannot supply %d liters", errs.ErrInsufficientCapacity, id, liters)
	}

	return nil
}

// Release runs a single conditional increment bounded by max_capacity_liters.
// A missing locality is reported as not found rather than as an overflow.
func (r *GormLocalityRepository) Release(ctx context.Context, id kernel.UUID, liters int) error {
	if err := validateLiters(id, liters); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&LocalityDTO{}).
		Where("id = ? AND available_liters + ? <= max_capacity_liters", id.Bytes(), liters).
		Update("available_liters", gorm.Expr("available_liters + ?", liters))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&LocalityDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("localityId", id.String())
		}
		return fmt.Errorf("%w: locality %s cannot take back %d liters", errs.ErrCapacityOverflow, id, liters)
	}

	return nil
}

func validateLiters(id kernel.UUID, liters int) error {
	var litersErr error
	if liters <= 0 {
		litersErr = errs.NewValueIsInvalidErrorWithCause("liters", fmt.Errorf("%d is not greater than 0", liters))
	}
	return errors.Join(id.Validate(), litersErr)
}
