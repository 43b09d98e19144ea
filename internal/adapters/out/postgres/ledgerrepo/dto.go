// Package ledgerrepo persists the append-only package status ledger. Rows are
// inserted once and never updated or deleted.
package ledgerrepo

import (
	"time"

	"okdelivery/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// LedgerEntryDTO represents the database structure for ledger rows.
type LedgerEntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PackageID uuid.UUID `gorm:"type:uuid;index"`
	Status    string
	ActorID   uuid.UUID `gorm:"type:uuid"`
	ActorKind string
	Notes     string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for ledger rows.
func (LedgerEntryDTO) TableName() string {
	return "status_ledger"
}

func fromDomain(entry *ledger.Entry) LedgerEntryDTO {
	dto := LedgerEntryDTO{
		ID:        entry.ID().Bytes(),
		PackageID: entry.PackageID().Bytes(),
		Status:    entry.Status().String(),
		ActorID:   entry.ActorID().Bytes(),
		ActorKind: entry.ActorKind().String(),
		Notes:     entry.Notes(),
		CreatedAt: entry.CreatedAt(),
	}

	if location := entry.Location(); location != nil {
		lat := location.Latitude()
		lng := location.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}

	return dto
}
