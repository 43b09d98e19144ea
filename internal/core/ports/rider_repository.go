package ports

import (
	"context"
	"time"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider aggregate.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider aggregate.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider by its unique identifier.
	// Returns an ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetAllIdleSince retrieves riders that are not offline but whose last
	// location update is older than the cutoff. Used by the liveness job.
	GetAllIdleSince(ctx context.Context, cutoff time.Time) ([]*rider.Rider, error)
}
