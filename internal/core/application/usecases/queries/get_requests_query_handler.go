package queries

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type GetRequestsQueryHandler struct {
	db    *gorm.DB
	clock kernel.Clock
}

func NewGetRequestsQueryHandler(db *gorm.DB, clock kernel.Clock) GetRequestsQueryHandler {
	return GetRequestsQueryHandler{db: db, clock: clock}
}

// Handle orders the result by creation time descending, then id.
func (h GetRequestsQueryHandler) Handle(ctx context.Context, query GetRequestsQuery) ([]GetRequestQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := h.db.WithContext(ctx).
		Table("requests r").
		Select(requestReadColumns).
		Joins("LEFT JOIN assignments a ON a.request_id = r.id").
		Joins("LEFT JOIN tickets t ON t.request_id = r.id")
	if query.status != nil {
		stmt = stmt.Where("r.status = ?", query.status.String())
	}
	if query.requesterID != nil {
		stmt = stmt.Where("r.requester_id = ?", query.requesterID.Bytes())
	}

	rows, err := stmt.Order("r.created_at DESC, r.id").Limit(query.limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := h.clock.Now()
	requests := make([]GetRequestQueryResponse, 0)
	for rows.Next() {
		item, scanErr := scanRequestRead(rows, now)
		if scanErr != nil {
			return nil, scanErr
		}
		requests = append(requests, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
