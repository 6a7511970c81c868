package queries

import (
	"context"
	"database/sql"
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ticket"
	"waterdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const localityReadColumns = `
			l.id,
			l.name,
			l.address,
			l.available_liters,
			l.max_capacity_liters,
			l.active,
			(
				SELECT COUNT(*)
				FROM tickets t
				JOIN assignments a ON a.request_id = t.request_id
				WHERE a.locality_id = l.id
					AND t.status IN (?, ?)
			)`

func openTicketStatuses() []any {
	return []any{ticket.Pending.String(), ticket.InProgress.String()}
}

type GetLocalitiesQueryHandler struct {
	db *gorm.DB
}

func NewGetLocalitiesQueryHandler(db *gorm.DB) GetLocalitiesQueryHandler {
	return GetLocalitiesQueryHandler{db: db}
}

// Handle orders the result by name, then id.
func (h GetLocalitiesQueryHandler) Handle(
	ctx context.Context,
	query GetLocalitiesQuery,
) ([]GetLocalityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := h.db.WithContext(ctx).
		Table("localities l").
		Select(localityReadColumns, openTicketStatuses()...)
	if query.activeOnly {
		stmt = stmt.Where("l.active = ?", true)
	}

	rows, err := stmt.Order("l.name, l.id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	localities := make([]GetLocalityQueryResponse, 0)
	for rows.Next() {
		item, scanErr := scanLocalityRead(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		localities = append(localities, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return localities, nil
}

type GetLocalityQueryHandler struct {
	db *gorm.DB
}

func NewGetLocalityQueryHandler(db *gorm.DB) GetLocalityQueryHandler {
	return GetLocalityQueryHandler{db: db}
}

// Handle returns an *errs.ObjectNotFoundError for an unknown id.
func (h GetLocalityQueryHandler) Handle(ctx context.Context, query GetLocalityQuery) (GetLocalityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLocalityQueryResponse{}, err
	}

	args := append(openTicketStatuses(), query.localityID.Bytes())
	row := h.db.WithContext(ctx).Raw(`
		SELECT `+localityReadColumns+`
		FROM localities l
		WHERE l.id = ?
	`, args...).Row()

	item, err := scanLocalityRead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return GetLocalityQueryResponse{}, errs.NewObjectNotFoundError("localityId", query.localityID)
	}
	return item, err
}

func scanLocalityRead(row rowScanner) (GetLocalityQueryResponse, error) {
	var (
		item        GetLocalityQueryResponse
		id          uuid.UUID
		openTickets int64
	)
	err := row.Scan(&id, &item.Name, &item.Address, &item.AvailableLiters,
		&item.MaxCapacityLiters, &item.Active, &openTickets)
	if err != nil {
		return GetLocalityQueryResponse{}, err
	}

	if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetLocalityQueryResponse{}, err
	}
	item.OpenTickets = int(openTickets)

	return item, nil
}
