package ports

import (
	"context"
	"time"

	"okdelivery/internal/core/domain/model/kernel"
)

// StatusChangedEvent is broadcast after a package status transition commits.
type StatusChangedEvent struct {
	PackageID  kernel.UUID
	Status     string
	MerchantID kernel.UUID
}

// LocationUpdatedEvent is broadcast after a rider position write commits.
type LocationUpdatedEvent struct {
	RiderID   kernel.UUID
	Latitude  float64
	Longitude float64
	PackageID *kernel.UUID
	SentAt    time.Time
}

// BroadcastHub fans events out to every configured sink. Publishing never
// returns an error to the caller: each sink is individually wrapped so its
// failures and timeouts are caught and logged, and one sink's failure cannot
// affect another sink or the publishing request. Delivery is at-most-once per
// sink and unordered across sinks; a missed broadcast is recovered only by the
// next event or by clients re-fetching authoritative state.
type BroadcastHub interface {
	// PublishStatusChanged delivers a status-change event to all sinks.
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent)

	// PublishLocationUpdated delivers a location-update event to all sinks.
	PublishLocationUpdated(ctx context.Context, event LocationUpdatedEvent)
}
