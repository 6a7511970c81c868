// Package ticketrepo maps tickets to the tickets table.
package ticketrepo

import (
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/ticket"

	"github.com/google/uuid"
)

// TicketDTO is the row layout of the tickets table.
type TicketDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Code              string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Status            string    `gorm:"type:varchar(16);not null;index"`
	IssuedAt          time.Time `gorm:"not null"`
	ArrivalAt         *time.Time
	DeliveredQuantity *int
	Notes             string `gorm:"type:text;not null;default:''"`
}

// TableName overrides the GORM default.
func (TicketDTO) TableName() string {
	return "tickets"
}

func fromDomain(t *ticket.Ticket) TicketDTO {
	return TicketDTO{
		ID:                t.ID().Bytes(),
		RequestID:         t.RequestID().Bytes(),
		Code:              t.Code().String(),
		Status:            t.Status().String(),
		IssuedAt:          t.IssuedAt(),
		ArrivalAt:         t.ArrivalAt(),
		DeliveredQuantity: t.DeliveredQuantity(),
		Notes:             t.Notes(),
	}
}

// ToDomain rebuilds a ticket from its row.
func ToDomain(dto TicketDTO) (*ticket.Ticket, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}

	code, err := ticket.ParseCode(dto.Code)
	if err != nil {
		return nil, err
	}

	status, err := ticket.DeliveryStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var arrivalAt *time.Time
	if dto.ArrivalAt != nil {
		at := dto.ArrivalAt.UTC()
		arrivalAt = &at
	}

	return ticket.RestoreTicket(
		id,
		requestID,
		code,
		status,
		dto.IssuedAt.UTC(),
		arrivalAt,
		dto.DeliveredQuantity,
		dto.Notes,
	)
}
