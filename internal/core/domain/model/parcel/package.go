package parcel

import (
	"errors"
	"time"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/pkg/errs"
)

var (
	// ErrPackageIsNotConstructed is returned when a Package instance was not
	// created through NewPackage or RestorePackage.
	ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage or RestorePackage")

	// ErrTrackingCodeIsRequired is returned when a package is created without
	// a tracking code.
	ErrTrackingCodeIsRequired = errs.NewValueIsRequiredError("tracking code")

	// ErrStatusIsNotRequestable is returned when a transition targets a status
	// outside the fixed requestable set.
	ErrStatusIsNotRequestable = errs.NewValueIsInvalidError("status is not a requestable transition target")

	// ErrRiderNotAllowedForStatus is returned when a persisted row carries a
	// rider reference on a status that does not hold one.
	ErrRiderNotAllowedForStatus = errs.NewValueIsInvalidError(
		"rider reference is not allowed for a status that does not hold a rider")
)

// Package is the aggregate root of the delivery-office bounded context. It
// carries the immutable tracking code, the merchant reference, the current
// rider reference (nil unless a rider holds the package), and the lifecycle
// status.
//
// Invariants:
//   - Must have valid package and merchant identifiers and a tracking code
//   - The rider reference is cleared when the status moves to ReturnToOffice,
//     ReturnedToMerchant, or Cancelled
//   - Packages are never destroyed; terminal statuses end the lifecycle
type Package struct {
	id             kernel.UUID
	merchantID     kernel.UUID
	trackingCode   string
	status         Status
	currentRiderID *kernel.UUID
	deliveryNotes  string
	assignedAt     *time.Time
	createdAt      time.Time

	isConstructed bool
}

// NewPackage creates a Package in Registered status. Package registration
// itself happens at the merchant boundary; this constructor exists for that
// boundary and for tests.
func NewPackage(id, merchantID kernel.UUID, trackingCode string, createdAt time.Time) (*Package, error) {
	p := &Package{
		status:        Registered,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setMerchantID(merchantID),
		p.setTrackingCode(trackingCode),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePackage rebuilds a Package from persistence. It revalidates the
// identifier fields and rejects a rider reference on a status that does not
// hold one. The reverse is not enforced: the permissive transition rule can
// legally leave AssignedToRider with no rider bound.
func RestorePackage(
	id, merchantID kernel.UUID,
	trackingCode string,
	status Status,
	currentRiderID *kernel.UUID,
	deliveryNotes string,
	assignedAt *time.Time,
	createdAt time.Time,
) (*Package, error) {
	p := &Package{
		deliveryNotes: deliveryNotes,
		assignedAt:    assignedAt,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setMerchantID(merchantID),
		p.setTrackingCode(trackingCode),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	p.status = status

	if currentRiderID != nil {
		if err := currentRiderID.Validate(); err != nil {
			return nil, err
		}
		if !status.HoldsRider() {
			return nil, ErrRiderNotAllowedForStatus
		}
		p.currentRiderID = currentRiderID
	}

	return p, nil
}

// Validate ensures the Package was constructed through a factory function.
func (p *Package) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackageIsNotConstructed
	}
	return nil
}

// IsEqual compares two packages by identifier.
func (p *Package) IsEqual(other *Package) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the package's unique identifier.
func (p *Package) ID() kernel.UUID {
	return p.id
}

// MerchantID returns the owning merchant's identifier.
func (p *Package) MerchantID() kernel.UUID {
	return p.merchantID
}

// TrackingCode returns the immutable external tracking code.
func (p *Package) TrackingCode() string {
	return p.trackingCode
}

// Status returns the current lifecycle status.
func (p *Package) Status() Status {
	return p.status
}

// CurrentRider returns the identifier of the rider currently bound to the
// package, or nil when no rider holds it.
func (p *Package) CurrentRider() *kernel.UUID {
	return p.currentRiderID
}

// DeliveryNotes returns the free-text notes attached to the latest transition.
func (p *Package) DeliveryNotes() string {
	return p.deliveryNotes
}

// AssignedAt returns the time of the latest rider assignment, or nil.
func (p *Package) AssignedAt() *time.Time {
	return p.assignedAt
}

// CreatedAt returns the package registration time.
func (p *Package) CreatedAt() time.Time {
	return p.createdAt
}

// ChangeStatus moves the package to the requested status and replaces the
// delivery notes. The target must be in the requestable set; the current
// status is deliberately not checked against the target. Statuses that end
// a rider's involvement clear the rider reference.
func (p *Package) ChangeStatus(target Status, notes string) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !target.CanBeRequested() {
		return ErrStatusIsNotRequestable
	}

	p.status = target
	p.deliveryNotes = notes
	if target.ClearsRider() {
		p.currentRiderID = nil
	}
	return nil
}

// AssignTo binds a rider to the package, moving it to AssignedToRider and
// stamping the assignment time. Reassignment of an already-assigned package is
// permitted; the last assignment wins.
func (p *Package) AssignTo(riderID kernel.UUID, at time.Time) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	p.status = AssignedToRider
	p.currentRiderID = &riderID
	p.assignedAt = &at
	return nil
}

func (p *Package) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Package) setMerchantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.merchantID = id
	return nil
}

func (p *Package) setTrackingCode(code string) error {
	if code == "" {
		return ErrTrackingCodeIsRequired
	}
	p.trackingCode = code
	return nil
}
