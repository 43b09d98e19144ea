// Package ledger contains the append-only package status history. Entries are
// immutable and monotonically ordered by creation time per package; the ledger
// is the sole source of truth for "what happened when" and is never rewritten.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/parcel"
	"okdelivery/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created through
// NewEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry")

// ActorKind identifies what kind of actor caused a status transition.
type ActorKind int

const (
	// ActorUnknown represents an invalid or undefined actor kind.
	ActorUnknown ActorKind = iota

	// ActorOffice is delivery-office staff.
	ActorOffice

	// ActorRider is a rider reporting through the rider app.
	ActorRider

	// ActorSystem is an automated transition (jobs, callbacks).
	ActorSystem
)

func getActorKindStrings() map[ActorKind]string {
	return map[ActorKind]string{
		ActorUnknown: "unknown",
		ActorOffice:  "office",
		ActorRider:   "rider",
		ActorSystem:  "system",
	}
}

// ActorKindFromString parses a wire-format actor kind string.
func ActorKindFromString(s string) (ActorKind, error) {
	switch s {
	case "office":
		return ActorOffice, nil
	case "rider":
		return ActorRider, nil
	case "system":
		return ActorSystem, nil
	default:
		return ActorUnknown, errs.NewValueIsInvalidErrorWithCause(
			"actor kind is invalid", fmt.Errorf("%q is not a valid actor kind", s))
	}
}

// Validate checks that the ActorKind is one of the defined kinds.
func (k ActorKind) Validate() error {
	switch k {
	case ActorOffice, ActorRider, ActorSystem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"actor kind is invalid", fmt.Errorf("%d is not a valid actor kind", k))
	}
}

// String returns the wire-format name of the actor kind.
func (k ActorKind) String() string {
	if str, ok := getActorKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// Entry is one immutable row of the status ledger. It records the resulting
// status of a transition (never the prior one), who caused it, an optional
// free-text note, and an optional geocoordinate.
type Entry struct {
	id        kernel.UUID
	packageID kernel.UUID
	status    parcel.Status
	actorID   kernel.UUID
	actorKind ActorKind
	notes     string
	location  *kernel.GeoPoint
	createdAt time.Time

	isConstructed bool
}

// NewEntry creates a ledger entry for a committed status transition.
func NewEntry(
	id, packageID kernel.UUID,
	status parcel.Status,
	actorID kernel.UUID,
	actorKind ActorKind,
	notes string,
	location *kernel.GeoPoint,
	createdAt time.Time,
) (*Entry, error) {
	e := &Entry{
		notes:         notes,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		packageID.Validate(),
		status.Validate(),
		actorID.Validate(),
		actorKind.Validate(),
	); err != nil {
		return nil, err
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		e.location = location
	}

	e.id = id
	e.packageID = packageID
	e.status = status
	e.actorID = actorID
	e.actorKind = actorKind
	return e, nil
}

// Validate ensures the Entry was constructed through NewEntry.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// PackageID returns the package the entry belongs to.
func (e *Entry) PackageID() kernel.UUID {
	return e.packageID
}

// Status returns the resulting status recorded by this entry.
func (e *Entry) Status() parcel.Status {
	return e.status
}

// ActorID returns the identifier of the actor who caused the transition.
func (e *Entry) ActorID() kernel.UUID {
	return e.actorID
}

// ActorKind returns what kind of actor caused the transition.
func (e *Entry) ActorKind() ActorKind {
	return e.actorKind
}

// Notes returns the free-text note attached to the transition.
func (e *Entry) Notes() string {
	return e.notes
}

// Location returns the optional geocoordinate of the transition, or nil.
func (e *Entry) Location() *kernel.GeoPoint {
	return e.location
}

// CreatedAt returns the entry creation time.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}
