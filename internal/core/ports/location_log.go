package ports

import (
	"context"
	"time"

	"okdelivery/internal/core/domain/model/kernel"
)

// LocationRecord is one best-effort rider position sample. The package
// reference is optional: riders may report position without an active
// delivery. Speed and heading are optional sensor readings.
type LocationRecord struct {
	RiderID   kernel.UUID
	PackageID *kernel.UUID
	Latitude  float64
	Longitude float64
	Speed     *float64
	Heading   *float64
	CreatedAt time.Time
}

// RiderLocationLog defines the persistence contract for the rider position
// history. Writes are best-effort: callers catch and log failures and never
// let them fail the owning request.
type RiderLocationLog interface {
	// Append persists one position sample.
	Append(ctx context.Context, record LocationRecord) error
}
