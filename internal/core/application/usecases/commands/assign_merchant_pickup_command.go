package commands

import (
	"errors"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/pkg/guard"
)

var ErrAssignMerchantPickupCommandIsNotConstructed = errors.New(
	"AssignMerchantPickupCommand must be created via NewAssignMerchantPickupCommand constructor",
)

// AssignMerchantPickupCommand binds one rider to every registered package of a
// merchant in a single all-or-nothing batch.
type AssignMerchantPickupCommand struct { //nolint:recvcheck //using for validation
	merchantID kernel.UUID
	riderID    kernel.UUID
	assignedBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignMerchantPickupCommand creates a command for a merchant-wide pickup
// assignment.
func NewAssignMerchantPickupCommand(merchantID, riderID, assignedBy kernel.UUID) (AssignMerchantPickupCommand, error) {
	cmd := AssignMerchantPickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		merchantID.Validate(),
		riderID.Validate(),
		assignedBy.Validate(),
	); err != nil {
		return AssignMerchantPickupCommand{}, err
	}

	cmd.merchantID = merchantID
	cmd.riderID = riderID
	cmd.assignedBy = assignedBy
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignMerchantPickupCommand) Validate() error {
	return c.guard.Validate(ErrAssignMerchantPickupCommandIsNotConstructed)
}

// MerchantID returns the identifier of the merchant whose registered packages
// are assigned.
func (c AssignMerchantPickupCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

// RiderID returns the identifier of the rider to bind.
func (c AssignMerchantPickupCommand) RiderID() kernel.UUID {
	return c.riderID
}

// AssignedBy returns the identifier of the acting office user.
func (c AssignMerchantPickupCommand) AssignedBy() kernel.UUID {
	return c.assignedBy
}
