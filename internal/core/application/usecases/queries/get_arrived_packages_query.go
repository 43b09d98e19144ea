package queries

import (
	"errors"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/pkg/guard"
)

var ErrGetArrivedPackagesQueryIsNotConstructed = errors.New(
	"GetArrivedPackagesQuery must be created via NewGetArrivedPackagesQuery constructor",
)

// GetArrivedPackagesQuery retrieves the office queue: packages still in
// registered status, waiting for a pickup rider. Optionally narrowed to one
// merchant.
type GetArrivedPackagesQuery struct {
	merchantID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetArrivedPackagesQuery creates an office queue query. A nil merchantID
// selects all merchants.
func NewGetArrivedPackagesQuery(merchantID *kernel.UUID) (GetArrivedPackagesQuery, error) {
	if merchantID != nil {
		if err := merchantID.Validate(); err != nil {
			return GetArrivedPackagesQuery{}, err
		}
	}

	return GetArrivedPackagesQuery{
		merchantID: merchantID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetArrivedPackagesQuery) Validate() error {
	return q.guard.Validate(ErrGetArrivedPackagesQueryIsNotConstructed)
}

// MerchantID returns the merchant filter, or nil for all merchants.
func (q GetArrivedPackagesQuery) MerchantID() *kernel.UUID {
	return q.merchantID
}
