// Package locationlog persists the best-effort rider position history. The
// log sits outside the unit of work: callers write to it after their primary
// transaction commits and treat failures as log-and-continue.
package locationlog

import (
	"context"
	"time"

	"okdelivery/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationRecordDTO represents the database structure for position samples.
type LocationRecordDTO struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	RiderID   uuid.UUID  `gorm:"type:uuid;index"`
	PackageID *uuid.UUID `gorm:"type:uuid;index"`
	Latitude  float64
	Longitude float64
	Speed     *float64
	Heading   *float64
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for position samples.
func (LocationRecordDTO) TableName() string {
	return "rider_locations"
}

// GormRiderLocationLog implements RiderLocationLog using GORM.
type GormRiderLocationLog struct {
	db *gorm.DB
}

// NewGormRiderLocationLog creates a new GORM location log.
func NewGormRiderLocationLog(db *gorm.DB) *GormRiderLocationLog {
	return &GormRiderLocationLog{db: db}
}

// Append inserts one position sample.
func (l *GormRiderLocationLog) Append(ctx context.Context, record ports.LocationRecord) error {
	dto := LocationRecordDTO{
		RiderID:   record.RiderID.Bytes(),
		Latitude:  record.Latitude,
		Longitude: record.Longitude,
		Speed:     record.Speed,
		Heading:   record.Heading,
		CreatedAt: record.CreatedAt,
	}

	if record.PackageID != nil {
		raw := record.PackageID.Bytes()
		dto.PackageID = &raw
	}

	return l.db.WithContext(ctx).Create(&dto).Error
}
