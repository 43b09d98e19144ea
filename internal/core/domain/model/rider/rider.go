package rider

import (
	"errors"
	"time"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/pkg/errs"
)

var (
	// ErrRiderIsNotConstructed is returned when a Rider instance was not
	// created through NewRider or RestoreRider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider")

	// ErrNameIsRequired is returned when a rider is created without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("rider name")
)

// Rider is the aggregate root of the rider-tracking bounded context. It holds
// the rider's availability status and current position. The position is the
// authoritative current-state; positional history lives in the best-effort
// location log.
//
// Positions are last-write-wins: concurrent reports are not ordered, and a
// stale report may overwrite a newer one. This matches the deployed system.
type Rider struct {
	id                 kernel.UUID
	name               string
	phone              string
	status             Status
	position           *kernel.GeoPoint
	lastLocationUpdate *time.Time

	isConstructed bool
}

// NewRider creates a Rider in Offline status with no known position.
func NewRider(id kernel.UUID, name, phone string) (*Rider, error) {
	r := &Rider{
		status:        Offline,
		phone:         phone,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider rebuilds a Rider from persistence.
func RestoreRider(
	id kernel.UUID,
	name, phone string,
	status Status,
	position *kernel.GeoPoint,
	lastLocationUpdate *time.Time,
) (*Rider, error) {
	r := &Rider{
		phone:              phone,
		lastLocationUpdate: lastLocationUpdate,
		isConstructed:      true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	r.status = status

	if position != nil {
		if err := position.Validate(); err != nil {
			return nil, err
		}
		r.position = position
	}

	return r, nil
}

// Validate ensures the Rider was constructed through a factory function.
func (r *Rider) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRiderIsNotConstructed
	}
	return nil
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID {
	return r.id
}

// Name returns the rider's display name.
func (r *Rider) Name() string {
	return r.name
}

// Phone returns the rider's phone number.
func (r *Rider) Phone() string {
	return r.phone
}

// Status returns the rider's availability status.
func (r *Rider) Status() Status {
	return r.status
}

// Position returns the rider's last reported position, or nil when the rider
// has never reported one.
func (r *Rider) Position() *kernel.GeoPoint {
	return r.position
}

// LastLocationUpdate returns the time of the last position report, or nil.
func (r *Rider) LastLocationUpdate() *time.Time {
	return r.lastLocationUpdate
}

// ReportPosition records the rider's current position. An offline rider is
// promoted to Available: a position report is treated as a liveness signal.
func (r *Rider) ReportPosition(position kernel.GeoPoint, at time.Time) error {
	if err := position.Validate(); err != nil {
		return err
	}

	r.position = &position
	r.lastLocationUpdate = &at

	if r.status == Offline {
		r.status = Available
	}
	return nil
}

// MarkOffline drops the rider to Offline. Called by the liveness job when
// position reports stop arriving.
func (r *Rider) MarkOffline() {
	r.status = Offline
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}
