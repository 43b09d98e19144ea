package commands

import (
	"context"
	"fmt"
	"time"

	"okdelivery/internal/core/domain/model/assignment"
	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/ledger"
	"okdelivery/internal/core/domain/model/parcel"
	"okdelivery/internal/core/domain/services"
	"okdelivery/internal/core/ports"
)

// AssignRiderResult reports a completed single assignment.
type AssignRiderResult struct {
	Classification services.Classification
	Package        *parcel.Package
	RiderName      string
}

// AssignRiderCommandHandler binds a rider to a single package. The package
// write, assignment record, and ledger entry commit as one transaction;
// reassignment of an already-assigned package is permitted (last wins, the
// prior assignment record is revoked and stays as history).
type AssignRiderCommandHandler struct {
	uowFactory AssignUoWFactory
	classifier services.AssignmentClassifier
	hub        ports.BroadcastHub
}

// NewAssignRiderCommandHandler creates a handler for single rider assignment.
func NewAssignRiderCommandHandler(uowFactory AssignUoWFactory, hub ports.BroadcastHub) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		classifier: services.NewAssignmentClassifier(),
		hub:        hub,
	}
}

// Handle performs the assignment and returns its classification. The broadcast
// after commit is best-effort.
func (h AssignRiderCommandHandler) Handle(ctx context.Context, command AssignRiderCommand) (AssignRiderResult, error) {
	if err := command.Validate(); err != nil {
		return AssignRiderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignRiderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	result, err := assignOnePackage(
		ctx, uow, h.classifier,
		command.PackageID(), command.RiderID(), command.AssignedBy(),
		"Assigned to rider %s for %s",
	)
	if err != nil {
		return AssignRiderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignRiderResult{}, err
	}

	h.hub.PublishStatusChanged(ctx, ports.StatusChangedEvent{
		PackageID:  result.Package.ID(),
		Status:     result.Package.Status().String(),
		MerchantID: result.Package.MerchantID(),
	})

	return result, nil
}

// assignOnePackage performs the shared per-package assignment effect inside an
// already-begun transaction: load, classify, bind, revoke superseded records,
// record, ledger. noteFormat receives the rider name and the classification,
// in that order.
func assignOnePackage(
	ctx context.Context,
	uow AssignUoW,
	classifier services.AssignmentClassifier,
	packageID, riderID, assignedBy kernel.UUID,
	noteFormat string,
) (AssignRiderResult, error) {
	pkg, err := uow.PackageRepository().Get(ctx, packageID)
	if err != nil {
		return AssignRiderResult{}, err
	}

	rdr, err := uow.RiderRepository().Get(ctx, riderID)
	if err != nil {
		return AssignRiderResult{}, err
	}

	classification := classifier.Classify(pkg.Status())
	now := time.Now()

	if err = pkg.AssignTo(rdr.ID(), now); err != nil {
		return AssignRiderResult{}, err
	}

	if err = uow.PackageRepository().Update(ctx, pkg); err != nil {
		return AssignRiderResult{}, err
	}

	// a new record supersedes any still-open one; revoked records stay as history
	open, err := uow.AssignmentRepository().GetOpenByPackageID(ctx, pkg.ID())
	if err != nil {
		return AssignRiderResult{}, err
	}
	for _, prior := range open {
		prior.Revoke()
		if err = uow.AssignmentRepository().Update(ctx, prior); err != nil {
			return AssignRiderResult{}, err
		}
	}

	record, err := assignment.NewAssignment(kernel.NewUUID(), pkg.ID(), rdr.ID(), assignedBy, now)
	if err != nil {
		return AssignRiderResult{}, err
	}
	if err = uow.AssignmentRepository().Add(ctx, record); err != nil {
		return AssignRiderResult{}, err
	}

	note := fmt.Sprintf(noteFormat, rdr.Name(), classification)
	entry, err := ledger.NewEntry(
		kernel.NewUUID(), pkg.ID(), pkg.Status(),
		assignedBy, ledger.ActorOffice, note, nil, now,
	)
	if err != nil {
		return AssignRiderResult{}, err
	}
	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return AssignRiderResult{}, err
	}

	return AssignRiderResult{
		Classification: classification,
		Package:        pkg,
		RiderName:      rdr.Name(),
	}, nil
}
