package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetRequestQueryHandler struct {
	db    *gorm.DB
	clock kernel.Clock
}

// NewGetRequestQueryHandler needs a clock to flag overdue requests.
func NewGetRequestQueryHandler(db *gorm.DB, clock kernel.Clock) GetRequestQueryHandler {
	return GetRequestQueryHandler{db: db, clock: clock}
}

// Handle returns an *errs.ObjectNotFoundError for an unknown id.
func (h GetRequestQueryHandler) Handle(ctx context.Context, query GetRequestQuery) (GetRequestQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRequestQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT `+requestReadColumns+`
		FROM requests r
		LEFT JOIN assignments a ON a.request_id = r.id
		LEFT JOIN tickets t ON t.request_id = r.id
		WHERE r.id = ?
	`, query.requestID.Bytes()).Row()

	response, err := scanRequestRead(row, h.clock.Now())
	if errors.Is(err, sql.ErrNoRows) {
		return GetRequestQueryResponse{}, errs.NewObjectNotFoundError("requestId", query.requestID)
	}
	return response, err
}

// requestReadColumns is the select list scanned by scanRequestRead.
const requestReadColumns = `
			r.id,
			r.requester_id,
			r.category,
			r.quantity,
			r.description,
			r.status,
			r.created_at,
			r.deadline,
			a.locality_id,
			t.code`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequestRead(row rowScanner, now time.Time) (GetRequestQueryResponse, error) {
	var (
		id, requesterID     uuid.UUID
		localityID          uuid.NullUUID
		category, status    string
		description         string
		quantity            int
		createdAt, deadline time.Time
		ticketCode          sql.NullString
	)
	err := row.Scan(&id, &requesterID, &category, &quantity, &description, &status,
		&createdAt, &deadline, &localityID, &ticketCode)
	if err != nil {
		return GetRequestQueryResponse{}, err
	}

	req, err := restoreRequest(id, requesterID, category, quantity, description, status, createdAt, deadline)
	if err != nil {
		return GetRequestQueryResponse{}, err
	}

	response := GetRequestQueryResponse{
		ID:          req.ID(),
		RequesterID: req.RequesterID(),
		Category:    req.Category().String(),
		Quantity:    req.Quantity(),
		Description: req.Description(),
		Status:      req.Status().String(),
		Priority:    req.Priority(),
		CreatedAt:   req.CreatedAt(),
		Deadline:    req.Deadline(),
		Overdue:     req.IsOverdue(now),
	}

	if localityID.Valid {
		lid, idErr := kernel.UUIDFromBytes(localityID.UUID[:])
		if idErr != nil {
			return GetRequestQueryResponse{}, idErr
		}
		response.LocalityID = &lid
	}
	if ticketCode.Valid {
		response.TicketCode = &ticketCode.String
	}

	return response, nil
}

// restoreRequest rebuilds the aggregate so that priority and overdue come
// from the domain rules rather than from SQL.
func restoreRequest(
	id, requesterID uuid.UUID,
	category string,
	quantity int,
	description, status string,
	createdAt, deadline time.Time,
) (*request.Request, error) {
	rid, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	requester, err := kernel.UUIDFromBytes(requesterID[:])
	if err != nil {
		return nil, err
	}
	cat, err := request.CategoryFromString(category)
	if err != nil {
		return nil, err
	}
	st, err := request.StatusFromString(status)
	if err != nil {
		return nil, err
	}
	return request.RestoreRequest(rid, requester, cat, quantity, description, st, createdAt.UTC(), deadline.UTC())
}
