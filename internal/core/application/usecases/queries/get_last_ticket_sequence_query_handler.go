package queries

import (
	"context"
	"fmt"

	"waterdelivery/internal/core/domain/model/ticket"

	"gorm.io/gorm"
)

type GetLastTicketSequenceQueryHandler struct {
	db *gorm.DB
}

func NewGetLastTicketSequenceQueryHandler(db *gorm.DB) GetLastTicketSequenceQueryHandler {
	return GetLastTicketSequenceQueryHandler{db: db}
}

// Handle returns 0 when no ticket was issued in the year. Codes are compared
// by their parsed sequence since sequences above 999 outgrow the padding.
func (h GetLastTicketSequenceQueryHandler) Handle(ctx context.Context, query GetLastTicketSequenceQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	rows, err := h.db.WithContext(ctx).Raw(
		`SELECT code FROM tickets WHERE code LIKE ?`,
		fmt.Sprintf("TKT-%d-%%", query.year),
	).Rows()
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var last int64
	for rows.Next() {
		var raw string
		if err = rows.Scan(&raw); err != nil {
			return 0, err
		}

		code, parseErr := ticket.ParseCode(raw)
		if parseErr != nil {
			return 0, parseErr
		}
		last = max(last, code.Sequence())
	}

	return last, rows.Err()
}
