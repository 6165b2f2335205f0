package jobs

import (
	"context"
	"log/slog"
	"time"

	"couriertracking/internal/core/application/tracking"

	"github.com/robfig/cron/v3"
)

// Sweeper evicts idle couriers and stale cooldown entries.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) tracking.SweepResult
}

// IdleReaperJob runs the tracker's idle sweep on a cron schedule, in addition to the
// sweep the tracker triggers itself every ReapEvery pings.
type IdleReaperJob struct {
	sweeper  Sweeper
	schedule string
	timeout  time.Duration
	clock    func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewIdleReaperJob creates the job. schedule accepts standard five-field specs and
// descriptors such as "@every 1m". Each run is bounded by timeout.
func NewIdleReaperJob(sweeper Sweeper, schedule string, timeout time.Duration, logger *slog.Logger) *IdleReaperJob {
	return &IdleReaperJob{
		sweeper:  sweeper,
		schedule: schedule,
		timeout:  timeout,
		clock:    time.Now,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "idle_reaper_job"),
	}
}

// Start registers the sweep and starts the scheduler.
func (j *IdleReaperJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Idle reaper job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *IdleReaperJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Idle reaper job stopped")
}

func (j *IdleReaperJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	res := j.sweeper.Sweep(ctx, j.clock())
	if res.FlushFailures > 0 {
		j.logger.WarnContext(ctx, "Idle couriers kept after failed flush", "count", res.FlushFailures)
	}
}
