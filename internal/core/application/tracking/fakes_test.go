package tracking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"couriertracking/internal/core/application/tracking"
	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/core/domain/model/store"
	"couriertracking/internal/core/domain/model/travel"
	"couriertracking/internal/core/domain/services"
	"couriertracking/internal/core/ports"
	"couriertracking/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeStorage is an in-memory ports.UnitOfWorkFactory with failure injection.
type fakeStorage struct {
	mu          sync.Mutex
	summaries   map[string]*travel.Summary
	entrances   []*travel.StoreEntrance
	saves       int
	saveErr     error
	getErr      error
	entranceErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{summaries: make(map[string]*travel.Summary)}
}

func (s *fakeStorage) Create() ports.UnitOfWork { return &fakeUoW{s: s} }

func (s *fakeStorage) failSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

func (s *fakeStorage) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *fakeStorage) total(courierID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sum, ok := s.summaries[courierID]; ok {
		return sum.TotalDistance()
	}
	return 0
}

func (s *fakeStorage) entranceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entrances)
}

type fakeUoW struct{ s *fakeStorage }

func (u *fakeUoW) Begin(context.Context) error    { return nil }
func (u *fakeUoW) Commit(context.Context) error   { return nil }
func (u *fakeUoW) Rollback(context.Context) error { return nil }

func (u *fakeUoW) TravelSummaryRepository() ports.TravelSummaryRepository {
	return fakeSummaryRepo{u.s}
}

func (u *fakeUoW) StoreEntranceRepository() ports.StoreEntranceRepository {
	return fakeEntranceRepo{u.s}
}

func (u *fakeUoW) StoreRepository() ports.StoreRepository { return nil }

type fakeSummaryRepo struct{ s *fakeStorage }

func (r fakeSummaryRepo) Get(ctx context.Context, courierID string) (*travel.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.getErr != nil {
		return nil, r.s.getErr
	}
	sum, ok := r.s.summaries[courierID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("courierId", courierID)
	}
	return travel.RestoreSummary(sum.ID(), sum.CourierID(), sum.TotalDistance(), sum.Location(),
		sum.LastUpdated(), sum.CreatedAt())
}

func (r fakeSummaryRepo) Save(ctx context.Context, summary *travel.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.saveErr != nil {
		return r.s.saveErr
	}
	r.s.saves++
	r.s.summaries[summary.CourierID()] = summary
	return nil
}

type fakeEntranceRepo struct{ s *fakeStorage }

func (r fakeEntranceRepo) Add(ctx context.Context, e *travel.StoreEntrance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.entranceErr != nil {
		return r.s.entranceErr
	}
	r.s.entrances = append(r.s.entrances, e)
	return nil
}

func (r fakeEntranceRepo) ListByCourier(context.Context, string) ([]*travel.StoreEntrance, error) {
	return nil, nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []tracking.StoreEntranceEvent
}

func (o *recordingObserver) OnStoreEntrance(_ context.Context, e tracking.StoreEntranceEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
	return nil
}

func (o *recordingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.events)
}

func loc(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	l, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return l
}

func directory(t *testing.T, radius float64, stores ...*store.Store) *services.GeofenceDirectory {
	t.Helper()
	dir, err := services.NewGeofenceDirectory(stores, radius)
	require.NoError(t, err)
	return dir
}

func ortakoy(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.RestoreStore(1, "Ortaköy MMM Migros", loc(t, 41.0840, 29.0093), 0)
	require.NoError(t, err)
	return s
}

type harness struct {
	tracker  *tracking.Tracker
	storage  *fakeStorage
	clock    *fakeClock
	observer *recordingObserver
}

func newHarness(t *testing.T, cfg tracking.Config, dir *services.GeofenceDirectory, opts ...tracking.Option) *harness {
	t.Helper()
	h := &harness{
		storage:  newFakeStorage(),
		clock:    newFakeClock(),
		observer: &recordingObserver{},
	}
	base := []tracking.Option{
		tracking.WithClock(h.clock.Now),
		tracking.WithObservers(h.observer),
	}
	tr, err := tracking.NewTracker(cfg, dir, h.storage, append(base, opts...)...)
	require.NoError(t, err)
	h.tracker = tr
	return h
}

func (h *harness) ping(t *testing.T, courierID string, lat, lng float64, timeMs int64) {
	t.Helper()
	require.NoError(t, h.tracker.RecordPing(t.Context(), tracking.Ping{
		CourierID: courierID,
		Location:  loc(t, lat, lng),
		TimeMs:    timeMs,
	}))
}
