package commands

import (
	"errors"
	"time"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/pkg/guard"
)

var ErrReportRiderLocationCommandIsNotConstructed = errors.New(
	"ReportRiderLocationCommand must be created via NewReportRiderLocationCommand constructor",
)

// ReportRiderLocationCommand carries one rider position sample. Both ingress
// paths (the rider's own session and the external tracker callback) build the
// same command; the handler does not distinguish the source.
type ReportRiderLocationCommand struct { //nolint:recvcheck //using for validation
	riderID   kernel.UUID
	position  kernel.GeoPoint
	packageID *kernel.UUID
	speed     *float64
	heading   *float64
	sentAt    time.Time

	guard guard.ConstructorGuard
}

// NewReportRiderLocationCommand creates a command to record a rider position.
// packageID, speed and heading are optional and may be nil.
func NewReportRiderLocationCommand(
	riderID kernel.UUID,
	position kernel.GeoPoint,
	packageID *kernel.UUID,
	speed *float64,
	heading *float64,
	sentAt time.Time,
) (ReportRiderLocationCommand, error) {
	cmd := ReportRiderLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	validations := []error{
		riderID.Validate(),
		position.Validate(),
	}
	if packageID != nil {
		validations = append(validations, packageID.Validate())
	}
	if err := errors.Join(validations...); err != nil {
		return ReportRiderLocationCommand{}, err
	}

	cmd.riderID = riderID
	cmd.position = position
	cmd.packageID = packageID
	cmd.speed = speed
	cmd.heading = heading
	cmd.sentAt = sentAt
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportRiderLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportRiderLocationCommandIsNotConstructed)
}

// RiderID returns the reporting rider's identifier.
func (c ReportRiderLocationCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Position returns the reported coordinates.
func (c ReportRiderLocationCommand) Position() kernel.GeoPoint {
	return c.position
}

// PackageID returns the package the rider is currently delivering, or nil.
func (c ReportRiderLocationCommand) PackageID() *kernel.UUID {
	return c.packageID
}

// Speed returns the reported speed, or nil when the sensor sent none.
func (c ReportRiderLocationCommand) Speed() *float64 {
	return c.speed
}

// Heading returns the reported heading, or nil when the sensor sent none.
func (c ReportRiderLocationCommand) Heading() *float64 {
	return c.heading
}

// SentAt returns the device-side timestamp of the sample.
func (c ReportRiderLocationCommand) SentAt() time.Time {
	return c.sentAt
}
