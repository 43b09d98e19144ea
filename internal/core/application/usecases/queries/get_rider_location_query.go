package queries

import (
	"errors"
	"time"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/pkg/guard"
)

var ErrGetRiderLocationQueryIsNotConstructed = errors.New(
	"GetRiderLocationQuery must be created via NewGetRiderLocationQuery constructor",
)

// GetRiderLocationQuery retrieves one rider's current position and status.
type GetRiderLocationQuery struct {
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRiderLocationQuery creates a query for a rider's current position.
func NewGetRiderLocationQuery(riderID kernel.UUID) (GetRiderLocationQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderLocationQuery{}, err
	}

	return GetRiderLocationQuery{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderLocationQueryIsNotConstructed)
}

// RiderID returns the identifier of the rider to look up.
func (q GetRiderLocationQuery) RiderID() kernel.UUID {
	return q.riderID
}

// GetRiderLocationQueryResponse is a rider's current position. Latitude and
// longitude are nil when the rider has never reported a position.
type GetRiderLocationQueryResponse struct {
	RiderID            kernel.UUID
	Status             string
	Latitude           *float64
	Longitude          *float64
	LastLocationUpdate *time.Time
}
