// Package services contains stateless domain services that encode business
// rules spanning more than one aggregate.
package services

import (
	"okdelivery/internal/core/domain/model/parcel"
)

// Classification labels the intent of a rider assignment.
type Classification int

const (
	// Pickup means the rider collects the package from its merchant and brings
	// it to the office.
	Pickup Classification = iota

	// Delivery means the rider takes a package already at the office out to
	// the customer.
	Delivery
)

// String returns the wire-format name of the classification.
func (c Classification) String() string {
	if c == Delivery {
		return "delivery"
	}
	return "pickup"
}

// AssignmentClassifier is a domain service that labels a rider assignment as
// pickup or delivery based on the package's pre-assignment status.
//
// Business rule: a package sitting at the office (ArrivedAtOffice) is assigned
// for delivery; any other eligible status (in practice Registered) means the
// rider must first collect the package from its merchant. The classification
// is a derived label only; the target status is AssignedToRider in both cases.
type AssignmentClassifier struct{}

// NewAssignmentClassifier creates a new AssignmentClassifier instance.
func NewAssignmentClassifier() AssignmentClassifier {
	return AssignmentClassifier{}
}

// Classify returns the assignment classification for a package's
// pre-assignment status.
func (AssignmentClassifier) Classify(status parcel.Status) Classification {
	if status == parcel.ArrivedAtOffice {
		return Delivery
	}
	return Pickup
}
