package commands

import (
	"errors"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/pkg/errs"
	"okdelivery/internal/pkg/guard"
)

var (
	ErrBulkAssignRiderCommandIsNotConstructed = errors.New(
		"BulkAssignRiderCommand must be created via NewBulkAssignRiderCommand constructor",
	)

	// ErrPackageIDsAreRequired is returned when the bulk assignment carries no
	// package identifiers.
	ErrPackageIDsAreRequired = errs.NewValueIsRequiredError("package ids")
)

// BulkAssignRiderCommand binds one rider to a set of packages. Each package is
// processed independently: per-package atomicity, no cross-package rollback.
type BulkAssignRiderCommand struct { //nolint:recvcheck //using for validation
	packageIDs []kernel.UUID
	riderID    kernel.UUID
	assignedBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewBulkAssignRiderCommand creates a command to assign a rider to several
// packages. Requires at least one package identifier.
func NewBulkAssignRiderCommand(packageIDs []kernel.UUID, riderID, assignedBy kernel.UUID) (BulkAssignRiderCommand, error) {
	cmd := BulkAssignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if len(packageIDs) == 0 {
		return BulkAssignRiderCommand{}, ErrPackageIDsAreRequired
	}

	joined := []error{riderID.Validate(), assignedBy.Validate()}
	for _, id := range packageIDs {
		joined = append(joined, id.Validate())
	}
	if err := errors.Join(joined...); err != nil {
		return BulkAssignRiderCommand{}, err
	}

	cmd.packageIDs = packageIDs
	cmd.riderID = riderID
	cmd.assignedBy = assignedBy
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkAssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrBulkAssignRiderCommandIsNotConstructed)
}

// PackageIDs returns the identifiers of the packages to assign.
func (c BulkAssignRiderCommand) PackageIDs() []kernel.UUID {
	return c.packageIDs
}

// RiderID returns the identifier of the rider to bind.
func (c BulkAssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// AssignedBy returns the identifier of the acting office user.
func (c BulkAssignRiderCommand) AssignedBy() kernel.UUID {
	return c.assignedBy
}
