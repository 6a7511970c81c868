// Package assignmentrepo maps assignments to the assignments table.
package assignmentrepo

import (
	"time"

	"waterdelivery/internal/core/domain/model/assignment"
	"waterdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO is the row layout of the assignments table. request_id is
// unique: a request is bound to one locality at most once.
type AssignmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	LocalityID uuid.UUID `gorm:"type:uuid;not null;index"`
	AdvisorID  uuid.UUID `gorm:"type:uuid;not null"`
	Notes      string    `gorm:"type:text;not null;default:''"`
	AssignedAt time.Time `gorm:"not null"`
}

// TableName overrides the GORM default.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         a.ID().Bytes(),
		RequestID:  a.RequestID().Bytes(),
		LocalityID: a.LocalityID().Bytes(),
		AdvisorID:  a.AdvisorID().Bytes(),
		Notes:      a.Notes(),
		AssignedAt: a.AssignedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.RequestID, dto.LocalityID, dto.AdvisorID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return assignment.RestoreAssignment(ids[0], ids[1], ids[2], ids[3], dto.Notes, dto.AssignedAt.UTC())
}
