package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"okdelivery/internal/core/domain/model/assignment"
	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/ledger"
	"okdelivery/internal/core/domain/model/parcel"
	"okdelivery/internal/core/ports"
)

// ErrNoPendingPackages is returned when the merchant has no packages in
// registered status; no rider or assignment work is performed in that case.
var ErrNoPendingPackages = errors.New("no registered packages found for this merchant")

// AssignMerchantPickupResult reports a completed merchant-wide pickup
// assignment.
type AssignMerchantPickupResult struct {
	Merchant    ports.Merchant
	RiderID     kernel.UUID
	RiderName   string
	AssignedIDs []kernel.UUID
}

// AssignMerchantPickupCommandHandler assigns a rider to every registered
// package of one merchant inside a single transaction. If any package's write
// fails, every assignment made in the call rolls back and none are considered
// assigned. This is stricter than the bulk assignment, whose per-package
// semantics are documented on BulkAssignRiderCommandHandler.
type AssignMerchantPickupCommandHandler struct {
	uowFactory AssignUoWFactory
	hub        ports.BroadcastHub
}

// NewAssignMerchantPickupCommandHandler creates a handler for merchant-wide
// pickup assignment.
func NewAssignMerchantPickupCommandHandler(uowFactory AssignUoWFactory, hub ports.BroadcastHub) AssignMerchantPickupCommandHandler {
	return AssignMerchantPickupCommandHandler{
		uowFactory: uowFactory,
		hub:        hub,
	}
}

// Handle selects the merchant's registered packages and assigns them all to
// the rider, or none. Broadcasts are sent only after the whole batch commits.
// Returns ErrNoPendingPackages when the merchant has nothing to pick up.
func (h AssignMerchantPickupCommandHandler) Handle(
	ctx context.Context,
	command AssignMerchantPickupCommand,
) (AssignMerchantPickupResult, error) {
	if err := command.Validate(); err != nil {
		return AssignMerchantPickupResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignMerchantPickupResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	merchant, err := uow.MerchantRepository().Get(ctx, command.MerchantID())
	if err != nil {
		return AssignMerchantPickupResult{}, err
	}

	rdr, err := uow.RiderRepository().Get(ctx, command.RiderID())
	if err != nil {
		return AssignMerchantPickupResult{}, err
	}

	pending, err := uow.PackageRepository().GetAllByMerchantInStatus(ctx, merchant.ID, parcel.Registered)
	if err != nil {
		return AssignMerchantPickupResult{}, err
	}
	if len(pending) == 0 {
		return AssignMerchantPickupResult{}, ErrNoPendingPackages
	}

	now := time.Now()
	note := fmt.Sprintf("Assigned to rider %s for pickup from merchant %s", rdr.Name(), merchant.BusinessName)
	assignedIDs := make([]kernel.UUID, 0, len(pending))
	committed := make([]*parcel.Package, 0, len(pending))

	for _, pkg := range pending {
		if err = h.assignPackage(ctx, uow, pkg, rdr.ID(), command.AssignedBy(), note, now); err != nil {
			return AssignMerchantPickupResult{}, err
		}
		assignedIDs = append(assignedIDs, pkg.ID())
		committed = append(committed, pkg)
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignMerchantPickupResult{}, err
	}

	for _, pkg := range committed {
		h.hub.PublishStatusChanged(ctx, ports.StatusChangedEvent{
			PackageID:  pkg.ID(),
			Status:     pkg.Status().String(),
			MerchantID: pkg.MerchantID(),
		})
	}

	return AssignMerchantPickupResult{
		Merchant:    merchant,
		RiderID:     rdr.ID(),
		RiderName:   rdr.Name(),
		AssignedIDs: assignedIDs,
	}, nil
}

func (h AssignMerchantPickupCommandHandler) assignPackage(
	ctx context.Context,
	uow AssignUoW,
	pkg *parcel.Package,
	riderID, assignedBy kernel.UUID,
	note string,
	now time.Time,
) error {
	if err := pkg.AssignTo(riderID, now); err != nil {
		return err
	}

	if err := uow.PackageRepository().Update(ctx, pkg); err != nil {
		return err
	}

	record, err := assignment.NewAssignment(kernel.NewUUID(), pkg.ID(), riderID, assignedBy, now)
	if err != nil {
		return err
	}
	if err = uow.AssignmentRepository().Add(ctx, record); err != nil {
		return err
	}

	entry, err := ledger.NewEntry(
		kernel.NewUUID(), pkg.ID(), pkg.Status(),
		assignedBy, ledger.ActorOffice, note, nil, now,
	)
	if err != nil {
		return err
	}
	return uow.LedgerRepository().Append(ctx, entry)
}
