package queries

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ticket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOpenTicketsByLocalityQueryHandler struct {
	db *gorm.DB
}

func NewGetOpenTicketsByLocalityQueryHandler(db *gorm.DB) GetOpenTicketsByLocalityQueryHandler {
	return GetOpenTicketsByLocalityQueryHandler{db: db}
}

// Handle returns an empty slice for a locality without open tickets, including
// an unknown one.
func (h GetOpenTicketsByLocalityQueryHandler) Handle(
	ctx context.Context,
	query GetOpenTicketsByLocalityQuery,
) ([]GetOpenTicketsByLocalityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tickets := make([]GetOpenTicketsByLocalityQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.code,
			t.status,
			t.issued_at,
			r.id,
			r.category,
			r.quantity,
			r.created_at,
			r.deadline
		FROM tickets t
		JOIN assignments a ON a.request_id = t.request_id
		JOIN requests r ON r.id = t.request_id
		WHERE a.locality_id = ?
			AND t.status IN (?, ?)
		ORDER BY r.created_at, t.code
	`, query.localityID.Bytes(), ticket.Pending.String(), ticket.InProgress.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOpenTicketsByLocalityQueryResponse
		var ticketID, requestID uuid.UUID
		var issuedAt, createdAt, deadline time.Time

		err = rows.Scan(
			&ticketID,
			&item.Code,
			&item.Status,
			&issuedAt,
			&requestID,
			&item.Category,
			&item.Quantity,
			&createdAt,
			&deadline,
		)
		if err != nil {
			return nil, err
		}

		if item.TicketID, err = kernel.UUIDFromBytes(ticketID[:]); err != nil {
			return nil, err
		}
		if item.RequestID, err = kernel.UUIDFromBytes(requestID[:]); err != nil {
			return nil, err
		}
		item.IssuedAt = issuedAt.UTC()
		item.RequestCreatedAt = createdAt.UTC()
		item.RequestDeadline = deadline.UTC()

		tickets = append(tickets, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}
