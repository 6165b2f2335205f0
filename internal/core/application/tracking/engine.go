package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/core/domain/model/travel"
	"couriertracking/internal/core/domain/services"
	"couriertracking/internal/core/ports"
	"couriertracking/internal/pkg/errs"
)

// ErrPingIsInvalid wraps every validation failure reported by RecordPing.
var ErrPingIsInvalid = errors.New("ping is invalid")

// Ping is one observed courier position. TimeMs is the caller-supplied event time in
// Unix milliseconds.
type Ping struct {
	CourierID string
	Location  kernel.Location
	TimeMs    int64
}

func (p Ping) validate() error {
	var errList []error
	if strings.TrimSpace(p.CourierID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("courierId"))
	}
	if err := p.Location.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return fmt.Errorf("%w: %w", ErrPingIsInvalid, err)
	}
	return nil
}

// Tracker is the aggregation engine. It is safe for concurrent use.
//
// Example:
//
//	tracker, err := tracking.NewTracker(tracking.DefaultConfig(), directory, uowFactory,
//	    tracking.WithLogger(logger),
//	    tracking.WithObservers(notify.NewLoggingObserver(logger)),
//	)
//	if err != nil {
//	    return err
//	}
//	_ = tracker.RecordPing(ctx, tracking.Ping{CourierID: "c-1", Location: loc, TimeMs: ms})
//	total, err := tracker.TotalDistance(ctx, "c-1")
type Tracker struct {
	cfg        Config
	geofences  *services.GeofenceDirectory
	uowFactory ports.UnitOfWorkFactory

	distance  kernel.DistanceCalculator
	clock     Clock
	logger    *slog.Logger
	metrics   Metrics
	observers observerSet

	policy    syncPolicy
	states    *stateStore
	cooldowns *cooldownTable

	pings   atomic.Uint64
	sweepMu sync.Mutex
}

// NewTracker builds a Tracker. geofences may be empty but not nil.
func NewTracker(
	cfg Config,
	geofences *services.GeofenceDirectory,
	uowFactory ports.UnitOfWorkFactory,
	opts ...Option,
) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if geofences == nil {
		return nil, errs.NewValueIsRequiredError("geofences")
	}
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}

	t := &Tracker{
		cfg:        cfg,
		geofences:  geofences,
		uowFactory: uowFactory,
		distance:   kernel.HaversineCalculator{},
		clock:      SystemClock,
		logger:     slog.Default(),
		metrics:    noopMetrics{},
		policy:     syncPolicy{frequency: cfg.SyncFrequency, timeout: cfg.SyncTimeout},
		states:     newStateStore(),
		cooldowns:  newCooldownTable(cfg.EntranceCooldown),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("component", "tracker")
	t.observers.logger = t.logger
	t.observers.metrics = t.metrics

	return t, nil
}

// RecordPing processes one ping. Only an invalid ping yields an error; storage and
// observer failures are logged and leave the engine consistent. An accepted ping always
// runs to completion: cancellation of ctx does not reach the storage writes.
func (t *Tracker) RecordPing(ctx context.Context, p Ping) error {
	if err := p.validate(); err != nil {
		return err
	}
	ctx = context.WithoutCancel(ctx)

	now := t.clock()
	lat, lng := p.Location.Latitude(), p.Location.Longitude()

	var (
		added       float64
		syncNow     bool
		count       uint64
		hadPosition bool
		rejected    float64
	)
	st, created := t.states.upsert(p.CourierID, func(st *courierState) {
		if st.hasPosition {
			added = t.distance.Distance(st.latitude, st.longitude, lat, lng)
			if math.IsNaN(added) || math.IsInf(added, 0) || added < 0 {
				rejected = added
				added = 0
			}
			st.unflushed += added
			hadPosition = true
		}
		st.hasPosition = true
		st.latitude, st.longitude = lat, lng
		st.lastPingAt = now
		st.pingCount++
		count = st.pingCount
		syncNow = t.policy.due(st.pingCount, st.synced, st.lastSyncAt, now)
	})
	if rejected != 0 {
		t.logger.Warn("ignored invalid distance increment",
			"courier_id", p.CourierID, "meters", rejected)
	}
	t.metrics.PingRecorded()
	if created {
		t.metrics.TrackedCouriers(t.states.len())
	}
	t.logger.Debug("ping recorded",
		"courier_id", p.CourierID,
		"ping_count", count,
		"added_meters", added,
		"first_observation", !hadPosition)

	t.detectEntrances(ctx, p, now)

	if syncNow {
		st.flushMu.Lock()
		_ = t.flushLocked(ctx, p.CourierID, st)
		st.flushMu.Unlock()
	}

	if n := t.pings.Add(1); n%t.cfg.ReapEvery == 0 {
		if t.sweepMu.TryLock() {
			t.sweepLocked(ctx, t.clock())
			t.sweepMu.Unlock()
		}
	}

	return nil
}

func (t *Tracker) detectEntrances(ctx context.Context, p Ping, now time.Time) {
	for _, g := range t.geofences.Within(p.Location, t.distance) {
		key := cooldownKey{courierID: p.CourierID, storeID: g.StoreID}
		if !t.cooldowns.tryEnter(key, p.TimeMs, now) {
			t.metrics.EntranceSuppressed()
			t.logger.Debug("store entrance suppressed by cooldown",
				"courier_id", p.CourierID, "store", g.Name)
			continue
		}

		t.metrics.EntranceRecorded()
		t.logger.Info("store entrance",
			"courier_id", p.CourierID,
			"store_id", g.StoreID,
			"store", g.Name,
			"entrance_time_ms", p.TimeMs)

		if err := t.saveEntrance(ctx, p.CourierID, g, p.TimeMs); err != nil {
			t.logger.Error("failed to persist store entrance",
				"courier_id", p.CourierID, "store", g.Name, "error", err)
		}

		t.observers.notify(ctx, StoreEntranceEvent{
			CourierID:      p.CourierID,
			StoreID:        g.StoreID,
			StoreName:      g.Name,
			EntranceTimeMs: p.TimeMs,
		})
	}
}

func (t *Tracker) saveEntrance(ctx context.Context, courierID string, g services.Geofence, eventMs int64) error {
	entrance, err := travel.NewStoreEntrance(courierID, g.StoreID, g.Name, time.UnixMilli(eventMs).UTC())
	if err != nil {
		return err
	}
	return t.uowFactory.Create().StoreEntranceRepository().Add(ctx, entrance)
}

// Flush forces the courier's pending distance into durable storage. Unknown couriers
// have nothing pending and return nil. On error the pending amount is kept.
func (t *Tracker) Flush(ctx context.Context, courierID string) error {
	st, ok := t.states.get(courierID)
	if !ok {
		return nil
	}
	st.flushMu.Lock()
	defer st.flushMu.Unlock()
	return t.flushLocked(ctx, courierID, st)
}

// FlushAll flushes every tracked courier with pending distance and returns how many
// flushes failed. Used on shutdown so accepted pings are not lost.
func (t *Tracker) FlushAll(ctx context.Context) int {
	hasPending := func(st *courierState) bool {
		return st.unflushed > 0
	}

	var failed int
	for courierID, st := range t.states.collect(hasPending) {
		st.flushMu.Lock()
		if err := t.flushLocked(ctx, courierID, st); err != nil {
			failed++
		}
		st.flushMu.Unlock()
	}
	return failed
}

// flushLocked requires st.flushMu. The amount read here is subtracted only after the
// durable write succeeds, so increments that land during the write stay pending.
func (t *Tracker) flushLocked(ctx context.Context, courierID string, st *courierState) error {
	snap := st.read()
	now := t.clock()

	if snap.unflushed <= 0 {
		st.mu.Lock()
		st.synced = true
		st.lastSyncAt = now
		st.mu.Unlock()
		t.metrics.FlushCompleted(FlushSkipped, 0)
		return nil
	}

	var loc *kernel.Location
	if snap.hasPosition {
		if l, err := kernel.NewLocation(snap.latitude, snap.longitude); err == nil {
			loc = &l
		}
	}

	if err := t.writeSummary(ctx, courierID, snap.unflushed, loc, now); err != nil {
		t.metrics.FlushCompleted(FlushFailed, 0)
		t.logger.Error("flush failed, distance kept pending",
			"courier_id", courierID, "pending_meters", snap.unflushed, "error", err)
		return err
	}

	st.mu.Lock()
	st.unflushed -= snap.unflushed
	if st.unflushed < 0 {
		st.unflushed = 0
	}
	st.synced = true
	st.lastSyncAt = now
	st.mu.Unlock()

	t.metrics.FlushCompleted(FlushWritten, snap.unflushed)
	t.logger.Debug("flushed", "courier_id", courierID, "meters", snap.unflushed)
	return nil
}

func (t *Tracker) writeSummary(
	ctx context.Context,
	courierID string,
	meters float64,
	loc *kernel.Location,
	now time.Time,
) error {
	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TravelSummaryRepository()
	summary, err := repo.Get(ctx, courierID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		summary, err = travel.NewSummary(courierID, now)
	}
	if err != nil {
		return err
	}

	if err = summary.AddDistance(meters, now); err != nil {
		return err
	}
	if loc != nil {
		if err = summary.MoveTo(*loc, now); err != nil {
			return err
		}
	}

	if err = repo.Save(ctx, summary); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// TotalDistance flushes the courier and returns the durable total in meters. Unknown
// couriers yield 0. When the flush fails the still-pending amount is added to the
// durable total so the answer covers every processed ping; the error is returned only
// when the durable read itself fails.
func (t *Tracker) TotalDistance(ctx context.Context, courierID string) (float64, error) {
	var pending float64
	if st, ok := t.states.get(courierID); ok {
		st.flushMu.Lock()
		defer st.flushMu.Unlock()
		if err := t.flushLocked(ctx, courierID, st); err != nil {
			pending = st.read().unflushed
		}
	}

	summary, err := t.uowFactory.Create().TravelSummaryRepository().Get(ctx, courierID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return pending, nil
	}
	if err != nil {
		return 0, err
	}
	return summary.TotalDistance() + pending, nil
}

// ShouldSync evaluates the sync policy for a tracked courier. Unknown couriers return false.
func (t *Tracker) ShouldSync(courierID string) bool {
	st, ok := t.states.get(courierID)
	if !ok {
		return false
	}
	snap := st.read()
	return t.policy.due(snap.pingCount, snap.synced, snap.lastSyncAt, t.clock())
}

// Pending returns the courier's unflushed distance in meters.
func (t *Tracker) Pending(courierID string) (float64, bool) {
	st, ok := t.states.get(courierID)
	if !ok {
		return 0, false
	}
	return st.read().unflushed, true
}

// TrackedCouriers returns the number of couriers held in memory.
func (t *Tracker) TrackedCouriers() int {
	return t.states.len()
}

// Config returns the engine configuration.
func (t *Tracker) Config() Config {
	return t.cfg
}
