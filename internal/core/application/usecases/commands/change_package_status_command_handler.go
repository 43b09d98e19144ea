package commands

import (
	"context"
	"time"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/ledger"
	"okdelivery/internal/core/domain/model/parcel"
	"okdelivery/internal/core/ports"
)

// ChangePackageStatusCommandHandler performs package status transitions.
// The package row update, the closing of open assignment records on
// rider-releasing targets, and the ledger append are one transaction; the
// broadcast happens after commit and is never allowed to fail the operation.
type ChangePackageStatusCommandHandler struct {
	uowFactory PackageUoWFactory
	hub        ports.BroadcastHub
}

// NewChangePackageStatusCommandHandler creates a handler for status transitions.
func NewChangePackageStatusCommandHandler(
	uowFactory PackageUoWFactory,
	hub ports.BroadcastHub,
) ChangePackageStatusCommandHandler {
	return ChangePackageStatusCommandHandler{
		uowFactory: uowFactory,
		hub:        hub,
	}
}

// Handle applies the transition and appends the ledger entry with the
// resulting status. Returns the updated package on success. A dropped
// broadcast never rolls back the committed change.
func (h ChangePackageStatusCommandHandler) Handle(
	ctx context.Context,
	command ChangePackageStatusCommand,
) (*parcel.Package, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pkg, err := uow.PackageRepository().Get(ctx, command.PackageID())
	if err != nil {
		return nil, err
	}

	if err = pkg.ChangeStatus(command.Target(), command.Notes()); err != nil {
		return nil, err
	}

	if err = uow.PackageRepository().Update(ctx, pkg); err != nil {
		return nil, err
	}

	if pkg.Status().ClearsRider() || pkg.Status().IsTerminal() {
		if err = closeOpenAssignments(ctx, uow, pkg); err != nil {
			return nil, err
		}
	}

	entry, err := ledger.NewEntry(
		kernel.NewUUID(),
		pkg.ID(),
		pkg.Status(),
		command.ActorID(),
		command.ActorKind(),
		command.Notes(),
		nil,
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.hub.PublishStatusChanged(ctx, ports.StatusChangedEvent{
		PackageID:  pkg.ID(),
		Status:     pkg.Status().String(),
		MerchantID: pkg.MerchantID(),
	})

	return pkg, nil
}

// closeOpenAssignments finalizes the package's open assignment records once a
// transition ends the rider's involvement. A delivered package completes the
// record; every other closing status revokes it.
func closeOpenAssignments(ctx context.Context, uow PackageUoW, pkg *parcel.Package) error {
	open, err := uow.AssignmentRepository().GetOpenByPackageID(ctx, pkg.ID())
	if err != nil {
		return err
	}

	for _, record := range open {
		if pkg.Status() == parcel.Delivered {
			record.Complete()
		} else {
			record.Revoke()
		}
		if err = uow.AssignmentRepository().Update(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
