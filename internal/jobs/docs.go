// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. RiderLivenessJob - Runs every minute to mark riders offline once their
// last location update is older than the configured threshold. Reporting a
// position is the liveness signal that promotes a rider back to available.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(markIdleRidersOfflineHandler, threshold, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job errors are logged and swallowed; the next tick retries from scratch.
// A failed job start is returned to the caller so startup can abort.
package jobs
