// Package reportrepo stores report snapshots and computes their metrics from
// the assignment, request and ticket tables.
package reportrepo

import (
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/report"

	"github.com/google/uuid"
)

// ReportDTO is the row layout of the reports table. Metrics are kept as JSON.
type ReportDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	LocalityID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_reports_locality_generated,priority:1"`
	ManagerID   uuid.UUID      `gorm:"type:uuid;not null"`
	Kind        string         `gorm:"type:varchar(16);not null"`
	PeriodStart time.Time      `gorm:"not null"`
	PeriodEnd   time.Time      `gorm:"not null"`
	Metrics     report.Metrics `gorm:"type:jsonb;serializer:json;not null"`
	GeneratedAt time.Time      `gorm:"not null;index:idx_reports_locality_generated,priority:2"`
}

// TableName overrides the GORM default.
func (ReportDTO) TableName() string {
	return "reports"
}

func fromDomain(r *report.Report) ReportDTO {
	return ReportDTO{
		ID:          r.ID().Bytes(),
		LocalityID:  r.LocalityID().Bytes(),
		ManagerID:   r.ManagerID().Bytes(),
		Kind:        string(r.Kind()),
		PeriodStart: r.Period().Start,
		PeriodEnd:   r.Period().End,
		Metrics:     r.Metrics(),
		GeneratedAt: r.GeneratedAt(),
	}
}

func toDomain(dto ReportDTO) (*report.Report, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	localityID, err := kernel.UUIDFromBytes(dto.LocalityID[:])
	if err != nil {
		return nil, err
	}

	managerID, err := kernel.UUIDFromBytes(dto.ManagerID[:])
	if err != nil {
		return nil, err
	}

	kind, err := report.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}

	period, err := report.NewPeriod(dto.PeriodStart, dto.PeriodEnd)
	if err != nil {
		return nil, err
	}

	return report.RestoreReport(id, localityID, managerID, kind, period, dto.Metrics, dto.GeneratedAt.UTC())
}
