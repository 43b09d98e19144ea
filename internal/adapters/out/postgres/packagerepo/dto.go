// Package packagerepo persists package aggregates. It maps the domain model
// to the packages table and back, keeping the status as its wire string so
// the read side and external consumers share one vocabulary.
package packagerepo

import (
	"time"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// PackageDTO represents the database structure for persisting package
// aggregates. Indexed by merchant, rider, and status for the dispatch and
// list queries.
type PackageDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MerchantID     uuid.UUID  `gorm:"type:uuid;index"`
	CurrentRiderID *uuid.UUID `gorm:"type:uuid;index"`
	TrackingCode   string     `gorm:"uniqueIndex"`
	Status         string     `gorm:"index"`
	DeliveryNotes  string
	AssignedAt     *time.Time
	CreatedAt      time.Time
}

// TableName specifies the database table name for package entities.
func (PackageDTO) TableName() string {
	return "packages"
}

func fromDomain(pkg *parcel.Package) PackageDTO {
	var riderID *uuid.UUID
	if id := pkg.CurrentRider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	return PackageDTO{
		ID:             pkg.ID().Bytes(),
		MerchantID:     pkg.MerchantID().Bytes(),
		CurrentRiderID: riderID,
		TrackingCode:   pkg.TrackingCode(),
		Status:         pkg.Status().String(),
		DeliveryNotes:  pkg.DeliveryNotes(),
		AssignedAt:     pkg.AssignedAt(),
		CreatedAt:      pkg.CreatedAt(),
	}
}

func toDomain(dto PackageDTO) (*parcel.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.CurrentRiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.CurrentRiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	status, err := parcel.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return parcel.RestorePackage(
		id, merchantID,
		dto.TrackingCode,
		status,
		riderID,
		dto.DeliveryNotes,
		dto.AssignedAt,
		dto.CreatedAt,
	)
}
