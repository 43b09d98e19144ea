package commands

import (
	"errors"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/ledger"
	"okdelivery/internal/core/domain/model/parcel"
	"okdelivery/internal/pkg/errs"
	"okdelivery/internal/pkg/guard"
)

var (
	ErrChangePackageStatusCommandIsNotConstructed = errors.New(
		"ChangePackageStatusCommand must be created via NewChangePackageStatusCommand constructor",
	)

	// ErrTargetStatusIsNotRequestable is returned when the requested target
	// status is outside the fixed set office actors may request.
	ErrTargetStatusIsNotRequestable = errs.NewValueIsInvalidError(
		"status must be one of: arrived_at_office, assigned_to_rider, return_to_office, returned_to_merchant, cancelled",
	)
)

// ChangePackageStatusCommand requests a package status transition. The target
// must be one of the five requestable statuses; the ledger entry records the
// resulting status together with the acting user.
//
// Example:
//
//	cmd, err := NewChangePackageStatusCommand(pkgID, parcel.Cancelled, actorID, ledger.ActorOffice, "customer request")
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type ChangePackageStatusCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	target    parcel.Status
	actorID   kernel.UUID
	actorKind ledger.ActorKind
	notes     string

	guard guard.ConstructorGuard
}

// NewChangePackageStatusCommand creates a command to transition a package.
// Validates identifiers, the actor kind, and that the target status is in the
// requestable set. Arbitrary statuses (including Delivered) are rejected here.
func NewChangePackageStatusCommand(
	packageID kernel.UUID,
	target parcel.Status,
	actorID kernel.UUID,
	actorKind ledger.ActorKind,
	notes string,
) (ChangePackageStatusCommand, error) {
	cmd := ChangePackageStatusCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setTarget(target),
		cmd.setActor(actorID, actorKind),
	); err != nil {
		return ChangePackageStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangePackageStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangePackageStatusCommandIsNotConstructed)
}

// PackageID returns the identifier of the package to transition.
func (c ChangePackageStatusCommand) PackageID() kernel.UUID {
	return c.packageID
}

// Target returns the requested resulting status.
func (c ChangePackageStatusCommand) Target() parcel.Status {
	return c.target
}

// ActorID returns the identifier of the acting user.
func (c ChangePackageStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorKind returns the kind of the acting user.
func (c ChangePackageStatusCommand) ActorKind() ledger.ActorKind {
	return c.actorKind
}

// Notes returns the free-text notes for the transition.
func (c ChangePackageStatusCommand) Notes() string {
	return c.notes
}

func (c *ChangePackageStatusCommand) setPackageID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.packageID = id
	return nil
}

func (c *ChangePackageStatusCommand) setTarget(target parcel.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !target.CanBeRequested() {
		return ErrTargetStatusIsNotRequestable
	}
	c.target = target
	return nil
}

func (c *ChangePackageStatusCommand) setActor(actorID kernel.UUID, actorKind ledger.ActorKind) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := actorKind.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	c.actorKind = actorKind
	return nil
}
