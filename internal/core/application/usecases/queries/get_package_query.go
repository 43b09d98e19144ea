package queries

import (
	"errors"
	"time"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/pkg/guard"
)

var ErrGetPackageQueryIsNotConstructed = errors.New(
	"GetPackageQuery must be created via NewGetPackageQuery constructor",
)

// GetPackageQuery retrieves one package with its merchant, current rider,
// assignment history, and the full status ledger.
type GetPackageQuery struct {
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPackageQuery creates a query for one package's detail view.
func NewGetPackageQuery(packageID kernel.UUID) (GetPackageQuery, error) {
	if err := packageID.Validate(); err != nil {
		return GetPackageQuery{}, err
	}

	return GetPackageQuery{
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPackageQuery) Validate() error {
	return q.guard.Validate(ErrGetPackageQueryIsNotConstructed)
}

// PackageID returns the identifier of the package to load.
func (q GetPackageQuery) PackageID() kernel.UUID {
	return q.packageID
}

// LedgerEntryResponse is one status ledger row with the actor's display name
// resolved from the office-user or rider table.
type LedgerEntryResponse struct {
	Status    string
	ActorKind string
	ActorName string
	Notes     string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
}

// AssignmentResponse is one historical rider assignment.
type AssignmentResponse struct {
	RiderID    kernel.UUID
	RiderName  string
	AssignedAt time.Time
	Status     string
}

// GetPackageQueryResponse is the package detail view.
type GetPackageQueryResponse struct {
	ID              kernel.UUID
	TrackingCode    string
	Status          string
	DeliveryNotes   string
	MerchantName    string
	MerchantAddress string
	RiderName       *string
	AssignedAt      *time.Time
	CreatedAt       time.Time
	History         []LedgerEntryResponse
	Assignments     []AssignmentResponse
}
