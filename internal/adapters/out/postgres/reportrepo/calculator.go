package reportrepo

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/report"

	"gorm.io/gorm"
)

// GormReportCalculator computes metrics over the requests assigned to a
// locality inside a period.
type GormReportCalculator struct {
	db *gorm.DB
}

// NewGormReportCalculator creates a calculator reading from db.
func NewGormReportCalculator(db *gorm.DB) *GormReportCalculator {
	return &GormReportCalculator{db: db}
}

type categoryTotals struct {
	Category  string
	Total     int
	Requested int
	Delivered int
}

// Calculate groups assigned requests by category. The window is inclusive
// on both ends.
func (c *GormReportCalculator) Calculate(
	ctx context.Context,
	localityID kernel.UUID,
	period report.Period,
) (report.Metrics, error) {
	if err := localityID.Validate(); err != nil {
		return report.Metrics{}, err
	}

	var rows []categoryTotals
	err := c.db.WithContext(ctx).Raw(`
		SELECT
			r.category AS category,
			COUNT(*) AS total,
			COALESCE(SUM(r.quantity), 0) AS requested,
			COALESCE(SUM(t.delivered_quantity), 0) AS delivered
		FROM assignments a
		JOIN requests r ON r.id = a.request_id
		LEFT JOIN tickets t ON t.request_id = a.request_id
		WHERE a.locality_id = ? AND a.assigned_at >= ? AND a.assigned_at <= ?
		GROUP BY r.category
		ORDER BY r.category
	`, localityID.Bytes(), period.Start, period.End).Scan(&rows).Error
	if err != nil {
		return report.Metrics{}, err
	}

	var total, requested, delivered int
	byCategory := make(map[string]int, len(rows))
	for _, row := range rows {
		total += row.Total
		requested += row.Requested
		delivered += row.Delivered
		byCategory[row.Category] = row.Total
	}

	return report.NewMetrics(total, requested, delivered, byCategory), nil
}
