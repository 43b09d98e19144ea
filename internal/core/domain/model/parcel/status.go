package parcel

import (
	"fmt"

	"okdelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of a package.
//
// Main path:
//
//	Registered ──> ArrivedAtOffice ──> AssignedToRider ──> ReadyForDelivery ──> InTransit ──> Delivered
//
// Side branches: ReturnToOffice, ReturnedToMerchant, Cancelled, and Failed
// (reachable from any active state via explicit office action).
//
// Office actors may request only the statuses in the requestable set (see
// CanBeRequested); the state machine intentionally does not validate that the
// current status permits the requested target, matching the permissive behavior
// of the deployed system.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Registered is the initial status set when a merchant registers a package.
	Registered

	// ArrivedAtOffice means the package has been received at the delivery office.
	ArrivedAtOffice

	// AssignedToRider means a rider has been bound to the package for pickup or delivery.
	AssignedToRider

	// ReadyForDelivery means the rider has received the package from the office.
	ReadyForDelivery

	// InTransit means the rider is on the way to the customer.
	InTransit

	// Delivered is a terminal status: the package reached the customer.
	Delivered

	// ReturnToOffice means the package is being brought back to the office.
	ReturnToOffice

	// ReturnedToMerchant is a terminal status: the package went back to its merchant.
	ReturnedToMerchant

	// Cancelled is a terminal status set by explicit office action.
	Cancelled

	// Failed marks a delivery that could not be completed.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "unknown",
		Registered:         "registered",
		ArrivedAtOffice:    "arrived_at_office",
		AssignedToRider:    "assigned_to_rider",
		ReadyForDelivery:   "ready_for_delivery",
		InTransit:          "in_transit",
		Delivered:          "delivered",
		ReturnToOffice:     "return_to_office",
		ReturnedToMerchant: "returned_to_merchant",
		Cancelled:          "cancelled",
		Failed:             "failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Registered:         "registered",
		ArrivedAtOffice:    "arrived_at_office",
		AssignedToRider:    "assigned_to_rider",
		ReadyForDelivery:   "ready_for_delivery",
		InTransit:          "in_transit",
		Delivered:          "delivered",
		ReturnToOffice:     "return_to_office",
		ReturnedToMerchant: "returned_to_merchant",
		Cancelled:          "cancelled",
		Failed:             "failed",
	}
}

// StatusFromString parses a wire-format status string such as "arrived_at_office".
// Unrecognized strings produce a ValueIsInvalidError.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
// Implements fmt.Stringer; safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanBeRequested reports whether office staff may request this status as a
// transition target. Only the fixed requestable set is accepted; arbitrary
// statuses (including Delivered, which riders reach through their own flow)
// are rejected at this gate.
func (s Status) CanBeRequested() bool {
	switch s {
	case ArrivedAtOffice, AssignedToRider, ReturnToOffice, ReturnedToMerchant, Cancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status ends the package lifecycle.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == ReturnedToMerchant || s == Cancelled
}

// ClearsRider reports whether entering this status releases the package's
// current rider reference.
func (s Status) ClearsRider() bool {
	return s == ReturnToOffice || s == ReturnedToMerchant || s == Cancelled
}

// HoldsRider reports whether the status requires a rider to be bound to the
// package. Used to validate the rider-reference invariant on rehydration.
func (s Status) HoldsRider() bool {
	switch s {
	case AssignedToRider, ReadyForDelivery, InTransit:
		return true
	default:
		return false
	}
}
