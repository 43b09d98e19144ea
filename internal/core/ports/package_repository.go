// Package ports defines the contracts between the application core and the
// infrastructure adapters: repositories, the unit of work, and the broadcast
// hub. These interfaces enable dependency inversion and testability.
package ports

import (
	"context"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/parcel"
)

// PackageRepository defines the persistence contract for package aggregates.
type PackageRepository interface {
	// Add persists a new package aggregate.
	Add(ctx context.Context, aggregate *parcel.Package) error

	// Update persists changes to an existing package aggregate.
	Update(ctx context.Context, aggregate *parcel.Package) error

	// Get retrieves a package by its unique identifier.
	// Returns an ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Package, error)

	// GetAllByMerchantInStatus retrieves every package belonging to the
	// merchant whose status matches exactly. Used by the merchant-wide pickup
	// assignment to select the pending set.
	GetAllByMerchantInStatus(ctx context.Context, merchantID kernel.UUID, status parcel.Status) ([]*parcel.Package, error)
}
