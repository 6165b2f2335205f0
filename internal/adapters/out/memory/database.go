// Package memory implements the tracking ports in process memory. It backs the
// service when DB_DRIVER=memory and mirrors the postgres adapter's semantics:
// summaries upsert by courier, entrances list newest first, store names are unique.
package memory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/core/domain/model/store"
	"couriertracking/internal/core/domain/model/travel"
	"couriertracking/internal/pkg/errs"
)

// ErrDuplicateStoreName mirrors the unique constraint on store names.
var ErrDuplicateStoreName = errors.New("store name already exists")

// Database is the shared in-memory state behind every unit of work.
type Database struct {
	mu        sync.RWMutex
	summaries map[string]*travel.Summary
	entrances map[string][]entranceRow
	stores    []storeRow
	nextStore int64
}

type entranceRow struct {
	entrance *travel.StoreEntrance
	seq      int
}

type storeRow struct {
	id     int64
	name   string
	lat    float64
	lng    float64
	radius float64
}

// NewDatabase creates an empty database.
func NewDatabase() *Database {
	return &Database{
		summaries: make(map[string]*travel.Summary),
		entrances: make(map[string][]entranceRow),
	}
}

func (d *Database) getSummary(courierID string) (*travel.Summary, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stored, ok := d.summaries[courierID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("courierId", courierID)
	}
	return copySummary(stored, stored.ID(), stored.CreatedAt())
}

// applySummaries upserts by courier. An existing row keeps its id and creation time.
func (d *Database) applySummaries(summaries []*travel.Summary) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, s := range summaries {
		id, createdAt := s.ID(), s.CreatedAt()
		if existing, ok := d.summaries[s.CourierID()]; ok {
			id, createdAt = existing.ID(), existing.CreatedAt()
		}
		stored, err := copySummary(s, id, createdAt)
		if err != nil {
			return err
		}
		d.summaries[s.CourierID()] = stored
	}
	return nil
}

func (d *Database) listEntrances(courierID string) []*travel.StoreEntrance {
	d.mu.RLock()
	rows := append([]entranceRow(nil), d.entrances[courierID]...)
	d.mu.RUnlock()

	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := rows[i].entrance.EntranceTime(), rows[j].entrance.EntranceTime()
		if ti.Equal(tj) {
			return rows[i].seq > rows[j].seq
		}
		return ti.After(tj)
	})

	out := make([]*travel.StoreEntrance, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.entrance)
	}
	return out
}

func (d *Database) applyEntrances(entrances []*travel.StoreEntrance) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, e := range entrances {
		rows := d.entrances[e.CourierID()]
		d.entrances[e.CourierID()] = append(rows, entranceRow{entrance: e, seq: len(rows)})
	}
}

func (d *Database) countStores() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return int64(len(d.stores))
}

func (d *Database) allStores() ([]*store.Store, error) {
	d.mu.RLock()
	rows := append([]storeRow(nil), d.stores...)
	d.mu.RUnlock()

	out := make([]*store.Store, 0, len(rows))
	for _, r := range rows {
		loc, err := kernel.NewLocation(r.lat, r.lng)
		if err != nil {
			return nil, err
		}
		s, err := store.RestoreStore(r.id, r.name, loc, r.radius)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// applyStores assigns identifiers in insertion order and fails atomically on duplicate names.
func (d *Database) applyStores(stores []*store.Store) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	seen := make(map[string]struct{}, len(d.stores)+len(stores))
	for _, r := range d.stores {
		seen[strings.ToLower(r.name)] = struct{}{}
	}
	for _, s := range stores {
		key := strings.ToLower(s.Name())
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateStoreName, s.Name())
		}
		seen[key] = struct{}{}
	}

	for _, s := range stores {
		d.nextStore++
		s.AssignID(d.nextStore)
		d.stores = append(d.stores, storeRow{
			id:     d.nextStore,
			name:   s.Name(),
			lat:    s.Location().Latitude(),
			lng:    s.Location().Longitude(),
			radius: s.RadiusMeters(),
		})
	}
	return nil
}

// copySummary detaches stored state from the caller's aggregate.
func copySummary(s *travel.Summary, id kernel.UUID, createdAt time.Time) (*travel.Summary, error) {
	var loc *kernel.Location
	if l := s.Location(); l != nil {
		c := *l
		loc = &c
	}
	return travel.RestoreSummary(id, s.CourierID(), s.TotalDistance(), loc, s.LastUpdated(), createdAt)
}
