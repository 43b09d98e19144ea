package commands

import (
	"errors"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand binds one rider to one package. The assignment is
// classified as pickup or delivery from the package's pre-assignment status;
// in both cases the package moves to assigned_to_rider.
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	packageID  kernel.UUID
	riderID    kernel.UUID
	assignedBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand creates a command to assign a rider to a package.
func NewAssignRiderCommand(packageID, riderID, assignedBy kernel.UUID) (AssignRiderCommand, error) {
	cmd := AssignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		packageID.Validate(),
		riderID.Validate(),
		assignedBy.Validate(),
	); err != nil {
		return AssignRiderCommand{}, err
	}

	cmd.packageID = packageID
	cmd.riderID = riderID
	cmd.assignedBy = assignedBy
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

// PackageID returns the identifier of the package to assign.
func (c AssignRiderCommand) PackageID() kernel.UUID {
	return c.packageID
}

// RiderID returns the identifier of the rider to bind.
func (c AssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// AssignedBy returns the identifier of the acting office user.
func (c AssignRiderCommand) AssignedBy() kernel.UUID {
	return c.assignedBy
}
