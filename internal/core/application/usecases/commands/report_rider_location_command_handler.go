package commands

import (
	"context"
	"log/slog"
	"time"

	"okdelivery/internal/core/domain/model/rider"
	"okdelivery/internal/core/ports"
)

// ReportRiderLocationCommandHandler records one rider position sample. The
// rider's current position and last-update timestamp are the primary write
// and run in a transaction; the history row and the broadcast are side
// effects that are logged on failure but never fail the request. Replaying
// the same payload rewrites the same state, so the operation is idempotent.
type ReportRiderLocationCommandHandler struct {
	uowFactory  RiderUoWFactory
	locationLog ports.RiderLocationLog
	hub         ports.BroadcastHub
	logger      *slog.Logger
}

// NewReportRiderLocationCommandHandler creates a handler for rider position
// reports.
func NewReportRiderLocationCommandHandler(
	uowFactory RiderUoWFactory,
	locationLog ports.RiderLocationLog,
	hub ports.BroadcastHub,
	logger *slog.Logger,
) ReportRiderLocationCommandHandler {
	return ReportRiderLocationCommandHandler{
		uowFactory:  uowFactory,
		locationLog: locationLog,
		hub:         hub,
		logger:      logger.With("component", "report_rider_location_handler"),
	}
}

// Handle updates the rider's position, then appends the history row and
// broadcasts the new position. Returns the updated rider.
func (h ReportRiderLocationCommandHandler) Handle(
	ctx context.Context,
	command ReportRiderLocationCommand,
) (*rider.Rider, error) {
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

	rdr, err := uow.RiderRepository().Get(ctx, command.RiderID())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err = rdr.ReportPosition(command.Position(), now); err != nil {
		return nil, err
	}

	if err = uow.RiderRepository().Update(ctx, rdr); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.locationLog.Append(ctx, ports.LocationRecord{
		RiderID:   rdr.ID(),
		PackageID: command.PackageID(),
		Latitude:  command.Position().Latitude(),
		Longitude: command.Position().Longitude(),
		Speed:     command.Speed(),
		Heading:   command.Heading(),
		CreatedAt: now,
	}); err != nil {
		h.logger.WarnContext(ctx, "location history append failed",
			"rider_id", rdr.ID().String(),
			"error", err)
	}

	h.hub.PublishLocationUpdated(ctx, ports.LocationUpdatedEvent{
		RiderID:   rdr.ID(),
		Latitude:  command.Position().Latitude(),
		Longitude: command.Position().Longitude(),
		PackageID: command.PackageID(),
		SentAt:    command.SentAt(),
	})

	return rdr, nil
}
