package tracking

import (
	"context"
	"time"
)

// SweepResult summarizes one idle sweep.
type SweepResult struct {
	PrunedCooldowns int
	ReapedCouriers  int
	// FlushFailures counts idle couriers kept in memory because their final flush failed.
	FlushFailures int
}

// Sweep prunes cooldown entries recorded more than two cooldown windows before now and
// evicts couriers whose last ping was received more than IdleThreshold before now.
// An idle courier is evicted only after a successful final flush; if it pinged or
// accrued distance in the meantime it stays. Sweeps never overlap.
func (t *Tracker) Sweep(ctx context.Context, now time.Time) SweepResult {
	t.sweepMu.Lock()
	defer t.sweepMu.Unlock()
	return t.sweepLocked(ctx, now)
}

func (t *Tracker) sweepLocked(ctx context.Context, now time.Time) SweepResult {
	var res SweepResult
	res.PrunedCooldowns = t.cooldowns.prune(now.Add(-2 * t.cfg.EntranceCooldown))

	isIdle := func(st *courierState) bool {
		return now.Sub(st.lastPingAt) > t.cfg.IdleThreshold
	}

	for courierID, st := range t.states.collect(isIdle) {
		st.flushMu.Lock()
		if err := t.flushLocked(ctx, courierID, st); err != nil {
			st.flushMu.Unlock()
			res.FlushFailures++
			continue
		}
		reaped := t.states.removeIf(courierID, st, func(st *courierState) bool {
			return isIdle(st) && st.unflushed == 0
		})
		st.flushMu.Unlock()

		if reaped {
			res.ReapedCouriers++
			t.logger.Debug("reaped idle courier", "courier_id", courierID)
		}
	}

	if res.ReapedCouriers > 0 {
		t.metrics.CouriersReaped(res.ReapedCouriers)
	}
	t.metrics.TrackedCouriers(t.states.len())

	if res.PrunedCooldowns > 0 || res.ReapedCouriers > 0 || res.FlushFailures > 0 {
		t.logger.Info("idle sweep",
			"pruned_cooldowns", res.PrunedCooldowns,
			"reaped_couriers", res.ReapedCouriers,
			"flush_failures", res.FlushFailures,
			"tracked_couriers", t.states.len())
	}
	return res
}
