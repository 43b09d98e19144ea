package ports

import (
	"context"

	"okdelivery/internal/core/domain/model/kernel"
)

// Merchant is a read-only view of a merchant. Merchant management lives
// outside this service; assignments only need the display fields.
type Merchant struct {
	ID              kernel.UUID
	BusinessName    string
	BusinessAddress string
}

// MerchantRepository defines the read-only lookup contract for merchants.
type MerchantRepository interface {
	// Get retrieves a merchant by its unique identifier.
	// Returns an ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (Merchant, error)
}
