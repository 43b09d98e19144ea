package rider

import (
	"fmt"

	"okdelivery/internal/pkg/errs"
)

// Status represents a rider's availability state.
//
// Offline riders are promoted to Available as soon as they report a position
// (reporting implies the rider is using the app). The reverse edge is driven
// by the liveness job when position reports stop arriving.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Offline means the rider is not active.
	Offline

	// Available means the rider is active and can take assignments.
	Available

	// Busy means the rider is actively working deliveries.
	Busy
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Offline:       "offline",
		Available:     "available",
		Busy:          "busy",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Offline:   "offline",
		Available: "available",
		Busy:      "busy",
	}
}

// StatusFromString parses a wire-format rider status string.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"rider status is invalid", fmt.Errorf("%q is not a valid rider status", s))
}

// Validate checks that the Status is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"rider status is invalid", fmt.Errorf("%d is not a valid rider status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
