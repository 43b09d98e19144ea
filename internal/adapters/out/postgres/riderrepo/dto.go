// Package riderrepo persists rider aggregates, including the authoritative
// current position. Positional history lives in the locationlog package.
package riderrepo

import (
	"time"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for persisting rider aggregates.
type RiderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string
	Phone              string
	Status             string `gorm:"index"`
	Latitude           *float64
	Longitude          *float64
	LastLocationUpdate *time.Time `gorm:"index"`
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(rdr *rider.Rider) RiderDTO {
	dto := RiderDTO{
		ID:                 rdr.ID().Bytes(),
		Name:               rdr.Name(),
		Phone:              rdr.Phone(),
		Status:             rdr.Status().String(),
		LastLocationUpdate: rdr.LastLocationUpdate(),
	}

	if position := rdr.Position(); position != nil {
		lat := position.Latitude()
		lng := position.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}

	return dto
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := rider.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var position *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		position = &point
	}

	return rider.RestoreRider(id, dto.Name, dto.Phone, status, position, dto.LastLocationUpdate)
}
