package jobs

import (
	"context"
	"log/slog"
	"time"

	"okdelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RiderLivenessJob demotes riders who stopped reporting their position.
// Runs every minute and marks riders offline once their last location update
// is older than the configured threshold.
type RiderLivenessJob struct {
	handler   commands.MarkIdleRidersOfflineCommandHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewRiderLivenessJob creates a new job for demoting idle riders.
func NewRiderLivenessJob(
	handler commands.MarkIdleRidersOfflineCommandHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *RiderLivenessJob {
	return &RiderLivenessJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "rider_liveness_job"),
	}
}

// Start begins the rider liveness job to run every minute.
func (j *RiderLivenessJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewMarkIdleRidersOfflineCommand(j.threshold)
		if err != nil {
			j.logger.ErrorContext(ctx, "Rider liveness job misconfigured", "error", err)
			return
		}

		if _, err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Rider liveness job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rider liveness job started (running every minute)",
		"threshold", j.threshold)
	return nil
}

// Stop stops the rider liveness job.
func (j *RiderLivenessJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Rider liveness job stopped")
}
