package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetTicketByCodeQueryHandler struct {
	db *gorm.DB
}

func NewGetTicketByCodeQueryHandler(db *gorm.DB) GetTicketByCodeQueryHandler {
	return GetTicketByCodeQueryHandler{db: db}
}

// Handle returns an *errs.ObjectNotFoundError for an unknown code.
func (h GetTicketByCodeQueryHandler) Handle(
	ctx context.Context,
	query GetTicketByCodeQuery,
) (GetTicketByCodeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTicketByCodeQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.code,
			t.status,
			t.issued_at,
			t.arrival_at,
			t.delivered_quantity,
			t.notes,
			r.id,
			r.status,
			r.category,
			r.quantity,
			r.deadline,
			l.id,
			l.name,
			l.address
		FROM tickets t
		JOIN requests r ON r.id = t.request_id
		JOIN assignments a ON a.request_id = t.request_id
		JOIN localities l ON l.id = a.locality_id
		WHERE t.code = ?
	`, query.code.String()).Row()

	var (
		response                        GetTicketByCodeQueryResponse
		ticketID, requestID, localityID uuid.UUID
		issuedAt, deadline              time.Time
		arrivalAt                       *time.Time
	)
	err := row.Scan(
		&ticketID,
		&response.Code,
		&response.Status,
		&issuedAt,
		&arrivalAt,
		&response.DeliveredQuantity,
		&response.Notes,
		&requestID,
		&response.RequestStatus,
		&response.Category,
		&response.Quantity,
		&deadline,
		&localityID,
		&response.LocalityName,
		&response.LocalityAddress,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTicketByCodeQueryResponse{}, errs.NewObjectNotFoundError("ticketCode", query.code.String())
	}
	if err != nil {
		return GetTicketByCodeQueryResponse{}, err
	}

	if response.TicketID, err = kernel.UUIDFromBytes(ticketID[:]); err != nil {
		return GetTicketByCodeQueryResponse{}, err
	}
	if response.RequestID, err = kernel.UUIDFromBytes(requestID[:]); err != nil {
		return GetTicketByCodeQueryResponse{}, err
	}
	if response.LocalityID, err = kernel.UUIDFromBytes(localityID[:]); err != nil {
		return GetTicketByCodeQueryResponse{}, err
	}

	response.IssuedAt = issuedAt.UTC()
	response.RequestDeadline = deadline.UTC()
	if arrivalAt != nil {
		at := arrivalAt.UTC()
		response.ArrivalAt = &at
	}

	return response, nil
}
