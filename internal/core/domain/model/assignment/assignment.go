// Package assignment contains the RiderAssignment record. One record is
// created per assignment event; reassignment appends a new record and leaves
// prior ones as history, so the set doubles as the assignment audit trail.
package assignment

import (
	"errors"
	"fmt"
	"time"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/pkg/errs"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment was not created
// through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment or RestoreAssignment")

// Status represents the state of one assignment record.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Assigned means the assignment is the rider's active binding to the package.
	Assigned

	// Completed means the rider finished the pickup or delivery.
	Completed

	// Revoked means the assignment was explicitly withdrawn.
	Revoked
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Assigned:      "assigned",
		Completed:     "completed",
		Revoked:       "revoked",
	}
}

// StatusFromString parses a wire-format assignment status string.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"assignment status", fmt.Errorf("unknown assignment status %q", s))
}

// Validate checks that the Status is one of the defined states.
func (s Status) Validate() error {
	switch s {
	case Assigned, Completed, Revoked:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"assignment status is invalid", fmt.Errorf("%d is not a valid assignment status", s))
	}
}

// String returns the wire-format name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Assignment is one rider-assignment event: which rider was bound to which
// package, by whom, and when. Records are append-mostly; after creation only
// the status may change (to Completed or Revoked).
type Assignment struct {
	id               kernel.UUID
	packageID        kernel.UUID
	riderID          kernel.UUID
	assignedByUserID kernel.UUID
	assignedAt       time.Time
	status           Status

	isConstructed bool
}

// NewAssignment creates an Assignment record in Assigned status.
func NewAssignment(id, packageID, riderID, assignedByUserID kernel.UUID, assignedAt time.Time) (*Assignment, error) {
	a := &Assignment{
		assignedAt:    assignedAt,
		status:        Assigned,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		packageID.Validate(),
		riderID.Validate(),
		assignedByUserID.Validate(),
	); err != nil {
		return nil, err
	}

	a.id = id
	a.packageID = packageID
	a.riderID = riderID
	a.assignedByUserID = assignedByUserID
	return a, nil
}

// RestoreAssignment rebuilds an Assignment from persistence.
func RestoreAssignment(
	id, packageID, riderID, assignedByUserID kernel.UUID,
	assignedAt time.Time,
	status Status,
) (*Assignment, error) {
	a, err := NewAssignment(id, packageID, riderID, assignedByUserID, assignedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	a.status = status
	return a, nil
}

// Validate ensures the Assignment was constructed through a factory function.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ID returns the assignment record's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// PackageID returns the assigned package's identifier.
func (a *Assignment) PackageID() kernel.UUID {
	return a.packageID
}

// RiderID returns the assigned rider's identifier.
func (a *Assignment) RiderID() kernel.UUID {
	return a.riderID
}

// AssignedByUserID returns the identifier of the actor who made the assignment.
func (a *Assignment) AssignedByUserID() kernel.UUID {
	return a.assignedByUserID
}

// AssignedAt returns the assignment time.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// Status returns the assignment record's status.
func (a *Assignment) Status() Status {
	return a.status
}

// Complete marks the assignment as finished.
func (a *Assignment) Complete() {
	a.status = Completed
}

// Revoke marks the assignment as withdrawn.
func (a *Assignment) Revoke() {
	a.status = Revoked
}
