// Package jobs provides scheduled background tasks for the courier tracking service.
//
// Jobs use github.com/robfig/cron/v3.
//
// # Available Jobs
//
// IdleReaperJob calls Tracker.Sweep on REAPER_SCHEDULE (default "@every 1m"). The sweep
// flushes and evicts couriers idle for longer than the idle threshold and prunes stale
// store re-entry cooldowns. The tracker also sweeps every ReapEvery pings, so the job
// only matters for quiet periods with no traffic.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(tracker, "@every 1m", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A sweep never fails as a whole. Couriers whose final flush fails stay in memory and
// are retried on the next sweep; the job logs how many were kept. Overlapping runs are
// skipped.
package jobs
