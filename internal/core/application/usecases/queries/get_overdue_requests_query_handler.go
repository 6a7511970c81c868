package queries

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOverdueRequestsQueryHandler struct {
	db    *gorm.DB
	clock kernel.Clock
}

func NewGetOverdueRequestsQueryHandler(db *gorm.DB, clock kernel.Clock) GetOverdueRequestsQueryHandler {
	return GetOverdueRequestsQueryHandler{db: db, clock: clock}
}

// Handle orders the result by deadline, then id.
func (h GetOverdueRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueRequestsQuery,
) ([]GetOverdueRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now().UTC()
	overdue := make([]GetOverdueRequestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			category,
			quantity,
			deadline
		FROM requests
		WHERE status = ?
			AND deadline < ?
		ORDER BY deadline, id
	`, request.Pending.String(), now).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOverdueRequestsQueryResponse
		var id uuid.UUID
		var deadline time.Time

		if err = rows.Scan(&id, &item.Category, &item.Quantity, &deadline); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		category, catErr := request.CategoryFromString(item.Category)
		if catErr != nil {
			return nil, catErr
		}
		item.Priority = category.Priority()
		item.Deadline = deadline.UTC()
		item.Overdue = now.Sub(item.Deadline)

		overdue = append(overdue, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return overdue, nil
}
