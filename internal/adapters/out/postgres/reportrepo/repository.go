package reportrepo

import (
	"context"
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/report"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReportRepository implements ports.ReportRepository using GORM.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a report repository.
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Add inserts a snapshot.
func (r *GormReportRepository) Add(ctx context.Context, aggregate *report.Report) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Delete removes a snapshot.
func (r *GormReportRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&ReportDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("reportId", id.String())
	}

	return nil
}

// Get loads a snapshot by id.
func (r *GormReportRepository) Get(ctx context.Context, id kernel.UUID) (*report.Report, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReportDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("reportId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByLocality lists the newest snapshots of a locality. A limit of zero or
// less returns all of them.
func (r *GormReportRepository) GetByLocality(
	ctx context.Context,
	localityID kernel.UUID,
	limit int,
) ([]*report.Report, error) {
	if err := localityID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Where("locality_id = ?", localityID.Bytes()).
		Order("generated_at DESC, id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []ReportDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	reports := make([]*report.Report, 0, len(dtos))
	for _, dto := range dtos {
		rep, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}

	return reports, nil
}
