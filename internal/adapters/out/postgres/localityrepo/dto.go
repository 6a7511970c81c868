// Package localityrepo maps localities to the localities table and owns the
// conditional capacity statements.
package localityrepo

import (
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/locality"

	"github.com/google/uuid"
)

// LocalityDTO is the row layout of the localities table. The capacity check
// constraint mirrors 0 <= available_liters <= max_capacity_liters.
type LocalityDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Address           string    `gorm:"type:text;not null;default:''"`
	AvailableLiters   int       `gorm:"not null;check:chk_localities_capacity,available_liters >= 0 AND available_liters <= max_capacity_liters"` //nolint:lll
	MaxCapacityLiters int       `gorm:"not null"`
	Active            bool      `gorm:"not null;index"`
}

// TableName overrides the GORM default.
func (LocalityDTO) TableName() string {
	return "localities"
}

func fromDomain(l *locality.Locality) LocalityDTO {
	return LocalityDTO{
		ID:                l.ID().Bytes(),
		Name:              l.Name(),
		Address:           l.Address(),
		AvailableLiters:   l.AvailableLiters(),
		MaxCapacityLiters: l.MaxCapacityLiters(),
		Active:            l.IsActive(),
	}
}

// ToDomain rebuilds a locality from its row.
func ToDomain(dto LocalityDTO) (*locality.Locality, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return locality.RestoreLocality(
		id,
		dto.Name,
		dto.Address,
		dto.AvailableLiters,
		dto.MaxCapacityLiters,
		dto.Active,
	)
}
