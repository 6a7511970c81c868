// Package requestrepo maps request aggregates to the requests table.
package requestrepo

import (
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// RequestDTO is the row layout of the requests table.
type RequestDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index"`
	Category    string    `gorm:"type:varchar(16);not null"`
	Quantity    int       `gorm:"not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	Status      string    `gorm:"type:varchar(16);not null;index:idx_requests_status_deadline,priority:1"`
	CreatedAt   time.Time `gorm:"not null"`
	Deadline    time.Time `gorm:"not null;index:idx_requests_status_deadline,priority:2"`
}

// TableName overrides the GORM default.
func (RequestDTO) TableName() string {
	return "requests"
}

func fromDomain(r *request.Request) RequestDTO {
	return RequestDTO{
		ID:          r.ID().Bytes(),
		RequesterID: r.RequesterID().Bytes(),
		Category:    r.Category().String(),
		Quantity:    r.Quantity(),
		Description: r.Description(),
		Status:      r.Status().String(),
		CreatedAt:   r.CreatedAt(),
		Deadline:    r.Deadline(),
	}
}

// ToDomain rebuilds a request from its row.
func ToDomain(dto RequestDTO) (*request.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requesterID, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}

	category, err := request.CategoryFromString(dto.Category)
	if err != nil {
		return nil, err
	}

	status, err := request.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return request.RestoreRequest(
		id,
		requesterID,
		category,
		dto.Quantity,
		dto.Description,
		status,
		dto.CreatedAt.UTC(),
		dto.Deadline.UTC(),
	)
}
