package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

const sweepTimeout = 30 * time.Second

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	idleReaperJob *IdleReaperJob
}

// NewJobManager creates a job manager. An empty reaperSchedule disables the idle
// reaper job; the tracker still sweeps in-band.
func NewJobManager(sweeper Sweeper, reaperSchedule string, logger *slog.Logger) *JobManager {
	jm := &JobManager{}
	if reaperSchedule != "" {
		jm.idleReaperJob = NewIdleReaperJob(sweeper, reaperSchedule, sweepTimeout, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.idleReaperJob != nil {
		if err := jm.idleReaperJob.Start(); err != nil {
			return fmt.Errorf("failed to start idle reaper job: %w", err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.idleReaperJob != nil {
		jm.idleReaperJob.Stop()
	}
}
