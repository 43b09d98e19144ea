package commands

import (
	"context"
	"log/slog"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/services"
	"okdelivery/internal/core/ports"
)

// BulkAssignResult reports which packages committed and how the assignments
// were classified. AssignedIDs contains only committed packages, so
// len(AssignedIDs) == PickupCount + DeliveryCount always holds.
type BulkAssignResult struct {
	AssignedIDs   []kernel.UUID
	PickupCount   int
	DeliveryCount int
}

// BulkAssignRiderCommandHandler assigns one rider to many packages with
// per-package transactions. A failing package is logged and skipped; packages
// committed before (or after) it stay committed, and the result reflects only
// what committed. This deliberately differs from the merchant-wide pickup
// assignment, which is all-or-nothing across its batch.
type BulkAssignRiderCommandHandler struct {
	uowFactory AssignUoWFactory
	classifier services.AssignmentClassifier
	hub        ports.BroadcastHub
	logger     *slog.Logger
}

// NewBulkAssignRiderCommandHandler creates a handler for bulk rider assignment.
func NewBulkAssignRiderCommandHandler(
	uowFactory AssignUoWFactory,
	hub ports.BroadcastHub,
	logger *slog.Logger,
) BulkAssignRiderCommandHandler {
	return BulkAssignRiderCommandHandler{
		uowFactory: uowFactory,
		classifier: services.NewAssignmentClassifier(),
		hub:        hub,
		logger:     logger.With("component", "bulk_assign_handler"),
	}
}

// Handle verifies the rider exists, then processes every package in its own
// transaction. Returns the committed ids and per-classification counts.
// A rider that does not exist fails the whole call before any assignment.
func (h BulkAssignRiderCommandHandler) Handle(ctx context.Context, command BulkAssignRiderCommand) (BulkAssignResult, error) {
	if err := command.Validate(); err != nil {
		return BulkAssignResult{}, err
	}

	if err := h.checkRiderExists(ctx, command.RiderID()); err != nil {
		return BulkAssignResult{}, err
	}

	result := BulkAssignResult{AssignedIDs: make([]kernel.UUID, 0, len(command.PackageIDs()))}

	for _, packageID := range command.PackageIDs() {
		assigned, err := h.assignOne(ctx, packageID, command.RiderID(), command.AssignedBy())
		if err != nil {
			h.logger.WarnContext(ctx, "bulk assignment skipped package",
				"package_id", packageID.String(),
				"rider_id", command.RiderID().String(),
				"error", err,
			)
			continue
		}

		result.AssignedIDs = append(result.AssignedIDs, packageID)
		if assigned.Classification == services.Delivery {
			result.DeliveryCount++
		} else {
			result.PickupCount++
		}

		h.hub.PublishStatusChanged(ctx, ports.StatusChangedEvent{
			PackageID:  assigned.Package.ID(),
			Status:     assigned.Package.Status().String(),
			MerchantID: assigned.Package.MerchantID(),
		})
	}

	return result, nil
}

func (h BulkAssignRiderCommandHandler) checkRiderExists(ctx context.Context, riderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err := uow.RiderRepository().Get(ctx, riderID)
	return err
}

// assignOne runs the shared per-package assignment effect in its own
// transaction so one package's failure cannot roll back another's commit.
func (h BulkAssignRiderCommandHandler) assignOne(
	ctx context.Context,
	packageID, riderID, assignedBy kernel.UUID,
) (AssignRiderResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignRiderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	result, err := assignOnePackage(
		ctx, uow, h.classifier,
		packageID, riderID, assignedBy,
		"Bulk assigned to rider %s for %s",
	)
	if err != nil {
		return AssignRiderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignRiderResult{}, err
	}

	return result, nil
}
