// Package assignmentrepo persists rider-assignment records. Records are
// append-mostly: one row per (re)assignment, kept as history.
package assignmentrepo

import (
	"time"

	"okdelivery/internal/core/domain/model/assignment"
	"okdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for assignment records.
type AssignmentDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	PackageID        uuid.UUID `gorm:"type:uuid;index"`
	RiderID          uuid.UUID `gorm:"type:uuid;index"`
	AssignedByUserID uuid.UUID `gorm:"type:uuid"`
	AssignedAt       time.Time
	Status           string
}

// TableName specifies the database table name for assignment records.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(record *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:               record.ID().Bytes(),
		PackageID:        record.PackageID().Bytes(),
		RiderID:          record.RiderID().Bytes(),
		AssignedByUserID: record.AssignedByUserID().Bytes(),
		AssignedAt:       record.AssignedAt(),
		Status:           record.Status().String(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	packageID, err := kernel.UUIDFromBytes(dto.PackageID[:])
	if err != nil {
		return nil, err
	}

	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	assignedBy, err := kernel.UUIDFromBytes(dto.AssignedByUserID[:])
	if err != nil {
		return nil, err
	}

	status, err := assignment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(id, packageID, riderID, assignedBy, dto.AssignedAt, status)
}
