// Package jobs provides scheduled background tasks for the water delivery engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OverdueScanJob - lists Pending requests whose deadline has passed and
// raises a request.overdue event for each of them. The scan is advisory: it
// never changes a request.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(overdueHandler, publisher, clock, "@every 1m", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules accept the six-field cron syntax (with seconds) and descriptors
// such as "@every 30s".
//
// # Error Handling
//
// - A failed scan is logged and retried at the next tick
// - A failed publish is logged and does not stop the scan
// - Failed job starts will stop any already running jobs
package jobs
