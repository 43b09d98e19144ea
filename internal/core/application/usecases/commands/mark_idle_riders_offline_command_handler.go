package commands

import (
	"context"
	"log/slog"
	"time"
)

// MarkIdleRidersOfflineCommandHandler reverses the offline-to-available
// promotion that position reports perform: riders that have stopped reporting
// are demoted back to offline so dispatchers do not assign to ghosts.
type MarkIdleRidersOfflineCommandHandler struct {
	uowFactory RiderUoWFactory
	logger     *slog.Logger
}

// NewMarkIdleRidersOfflineCommandHandler creates a handler for the rider
// liveness sweep.
func NewMarkIdleRidersOfflineCommandHandler(uowFactory RiderUoWFactory, logger *slog.Logger) MarkIdleRidersOfflineCommandHandler {
	return MarkIdleRidersOfflineCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "mark_idle_riders_offline_handler"),
	}
}

// Handle demotes every non-offline rider whose last position report is older
// than the command's threshold. Returns the number of riders demoted.
func (h MarkIdleRidersOfflineCommandHandler) Handle(
	ctx context.Context,
	command MarkIdleRidersOfflineCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().Add(-command.Threshold())
	idle, err := uow.RiderRepository().GetAllIdleSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	for _, rdr := range idle {
		rdr.MarkOffline()
		if err = uow.RiderRepository().Update(ctx, rdr); err != nil {
			return 0, err
		}

		h.logger.InfoContext(ctx, "rider marked offline",
			"rider_id", rdr.ID().String())
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(idle), nil
}
