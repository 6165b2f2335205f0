package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncPolicy_Due(t *testing.T) {
	p := syncPolicy{frequency: 10, timeout: 5 * time.Minute}
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		count    uint64
		synced   bool
		lastSync time.Time
		want     bool
	}{
		{"never synced", 1, false, time.Time{}, true},
		{"count multiple", 20, true, now, true},
		{"count not multiple", 21, true, now, false},
		{"zero count is not a multiple", 0, true, now, false},
		{"timeout exceeded", 3, true, now.Add(-5*time.Minute - time.Millisecond), true},
		{"timeout exactly reached", 3, true, now.Add(-5 * time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.due(tt.count, tt.synced, tt.lastSync, now))
		})
	}
}

func TestCooldownTable_TryEnter(t *testing.T) {
	c := newCooldownTable(time.Minute)
	now := time.Now()
	key := cooldownKey{courierID: "C1", storeID: 1}

	assert.True(t, c.tryEnter(key, 1_000, now))
	assert.False(t, c.tryEnter(key, 31_000, now))
	assert.False(t, c.tryEnter(key, 61_000, now), "exactly one window later is suppressed")
	assert.True(t, c.tryEnter(key, 61_001, now))
	assert.False(t, c.tryEnter(key, 500, now), "late pings fall inside the window")

	assert.True(t, c.tryEnter(cooldownKey{courierID: "C1", storeID: 2}, 61_001, now))
	assert.True(t, c.tryEnter(cooldownKey{courierID: "C2", storeID: 1}, 61_001, now))
	assert.Equal(t, 3, c.len())
}

func TestCooldownTable_Prune(t *testing.T) {
	c := newCooldownTable(time.Minute)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	c.tryEnter(cooldownKey{"old", 1}, 0, base)
	c.tryEnter(cooldownKey{"new", 1}, 0, base.Add(time.Minute))

	assert.Equal(t, 1, c.prune(base.Add(time.Second)))
	assert.Equal(t, 1, c.len())
	assert.True(t, c.tryEnter(cooldownKey{"old", 1}, 1, base), "pruned key starts over")
}

func TestStateStore_UpsertAndRemoveIf(t *testing.T) {
	s := newStateStore()

	first, created := s.upsert("C1", func(st *courierState) { st.pingCount++ })
	require.True(t, created)
	again, created := s.upsert("C1", func(st *courierState) { st.pingCount++ })
	require.False(t, created)
	require.Same(t, first, again)
	assert.Equal(t, uint64(2), first.read().pingCount)
	assert.Equal(t, 1, s.len())

	assert.False(t, s.removeIf("C1", first, func(st *courierState) bool { return st.pingCount > 5 }))
	assert.False(t, s.removeIf("C1", &courierState{}, func(*courierState) bool { return true }), "stale pointer")
	assert.True(t, s.removeIf("C1", first, func(*courierState) bool { return true }))
	assert.True(t, first.removed)
	assert.Zero(t, s.len())

	fresh, created := s.upsert("C1", func(st *courierState) { st.pingCount++ })
	assert.True(t, created)
	assert.NotSame(t, first, fresh)
	assert.Equal(t, uint64(1), fresh.read().pingCount)
}

func TestStateStore_Collect(t *testing.T) {
	s := newStateStore()
	for _, id := range []string{"a", "b", "c"} {
		s.upsert(id, func(st *courierState) { st.unflushed = float64(len(id)) })
	}
	s.upsert("b", func(st *courierState) { st.pingCount = 9 })

	got := s.collect(func(st *courierState) bool { return st.pingCount == 9 })
	require.Len(t, got, 1)
	assert.Contains(t, got, "b")
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	err := Config{}.Validate()
	require.Error(t, err)
	for _, p := range []string{"storeRadiusMeters", "entranceCooldown", "syncFrequency", "syncTimeout", "idleThreshold", "reapEvery"} {
		assert.Contains(t, err.Error(), p)
	}
}
