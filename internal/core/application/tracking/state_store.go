package tracking

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
)

const shardCount = 32

// courierState is the transient state of one courier.
//
// mu guards every field below it. flushMu serializes flushes of this courier and is
// always acquired before mu. A removed entry is no longer reachable from the store;
// writers that still hold a pointer to it must look the courier up again.
type courierState struct {
	flushMu sync.Mutex

	mu          sync.Mutex
	removed     bool
	hasPosition bool
	latitude    float64
	longitude   float64
	lastPingAt  time.Time
	unflushed   float64
	pingCount   uint64
	synced      bool
	lastSyncAt  time.Time
}

// snapshot is a consistent copy of the fields a flush or query needs.
type snapshot struct {
	hasPosition bool
	latitude    float64
	longitude   float64
	unflushed   float64
	pingCount   uint64
	synced      bool
	lastSyncAt  time.Time
	lastPingAt  time.Time
}

func (s *courierState) read() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		hasPosition: s.hasPosition,
		latitude:    s.latitude,
		longitude:   s.longitude,
		unflushed:   s.unflushed,
		pingCount:   s.pingCount,
		synced:      s.synced,
		lastSyncAt:  s.lastSyncAt,
		lastPingAt:  s.lastPingAt,
	}
}

type stateShard struct {
	mu      sync.Mutex
	entries map[string]*courierState
}

// stateStore maps courier ids to their transient state.
// Lock order is shard before entry; nothing acquires a shard while holding an entry.
type stateStore struct {
	shards [shardCount]stateShard
	size   atomic.Int64
}

func newStateStore() *stateStore {
	s := &stateStore{}
	for i := range s.shards {
		s.shards[i].entries = make(map[string]*courierState)
	}
	return s
}

func (s *stateStore) shard(courierID string) *stateShard {
	return &s.shards[xxhash.Sum64String(courierID)%shardCount]
}

// get returns the live entry for courierID.
func (s *stateStore) get(courierID string) (*courierState, bool) {
	sh := s.shard(courierID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	st, ok := sh.entries[courierID]
	return st, ok
}

func (s *stateStore) getOrCreate(courierID string) (*courierState, bool) {
	sh := s.shard(courierID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if st, ok := sh.entries[courierID]; ok {
		return st, false
	}
	st := &courierState{}
	sh.entries[courierID] = st
	s.size.Add(1)
	return st, true
}

// upsert applies fn to the courier's entry under its lock, creating the entry first if
// needed. It returns the entry fn ran against and whether that entry was created.
func (s *stateStore) upsert(courierID string, fn func(st *courierState)) (*courierState, bool) {
	for {
		st, created := s.getOrCreate(courierID)
		st.mu.Lock()
		if st.removed {
			st.mu.Unlock()
			continue
		}
		fn(st)
		st.mu.Unlock()
		return st, created
	}
}

// removeIf deletes st from the store when it is still the live entry for courierID and
// pred holds. pred runs with both the shard and entry locks held.
func (s *stateStore) removeIf(courierID string, st *courierState, pred func(st *courierState) bool) bool {
	sh := s.shard(courierID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if cur, ok := sh.entries[courierID]; !ok || cur != st {
		return false
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if !pred(st) {
		return false
	}
	st.removed = true
	delete(sh.entries, courierID)
	s.size.Add(-1)
	return true
}

// collect returns the entries matching pred. Shards are visited one at a time, so the
// result is not a global snapshot.
func (s *stateStore) collect(pred func(st *courierState) bool) map[string]*courierState {
	out := make(map[string]*courierState)
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for id, st := range sh.entries {
			st.mu.Lock()
			match := pred(st)
			st.mu.Unlock()
			if match {
				out[id] = st
			}
		}
		sh.mu.Unlock()
	}
	return out
}

func (s *stateStore) len() int {
	return int(s.size.Load())
}
