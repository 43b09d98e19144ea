package commands

import (
	"errors"
	"time"

	"okdelivery/internal/pkg/errs"
	"okdelivery/internal/pkg/guard"
)

var (
	ErrMarkIdleRidersOfflineCommandIsNotConstructed = errors.New(
		"MarkIdleRidersOfflineCommand must be created via NewMarkIdleRidersOfflineCommand constructor",
	)

	// ErrThresholdIsRequired is returned when the idle threshold is not positive.
	ErrThresholdIsRequired = errs.NewValueIsRequiredError("idle threshold")
)

// MarkIdleRidersOfflineCommand demotes riders whose last position report is
// older than the threshold. Issued on a schedule by the liveness job.
type MarkIdleRidersOfflineCommand struct { //nolint:recvcheck //using for validation
	threshold time.Duration

	guard guard.ConstructorGuard
}

// NewMarkIdleRidersOfflineCommand creates a command with the given idle
// threshold. The threshold must be positive.
func NewMarkIdleRidersOfflineCommand(threshold time.Duration) (MarkIdleRidersOfflineCommand, error) {
	if threshold <= 0 {
		return MarkIdleRidersOfflineCommand{}, ErrThresholdIsRequired
	}

	return MarkIdleRidersOfflineCommand{
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkIdleRidersOfflineCommand) Validate() error {
	return c.guard.Validate(ErrMarkIdleRidersOfflineCommandIsNotConstructed)
}

// Threshold returns how long a rider may stay silent before going offline.
func (c MarkIdleRidersOfflineCommand) Threshold() time.Duration {
	return c.threshold
}
