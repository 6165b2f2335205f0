package tracking

import (
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

type cooldownKey struct {
	courierID string
	storeID   int64
}

type cooldownEntry struct {
	lastEntranceMs int64
	recordedAt     time.Time
}

type cooldownShard struct {
	mu      sync.Mutex
	entries map[cooldownKey]cooldownEntry
}

// cooldownTable remembers the last entrance per courier and store.
type cooldownTable struct {
	windowMs int64
	shards   [shardCount]cooldownShard
}

func newCooldownTable(window time.Duration) *cooldownTable {
	c := &cooldownTable{windowMs: window.Milliseconds()}
	for i := range c.shards {
		c.shards[i].entries = make(map[cooldownKey]cooldownEntry)
	}
	return c
}

func (c *cooldownTable) shard(key cooldownKey) *cooldownShard {
	d := xxhash.New()
	_, _ = d.WriteString(key.courierID)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.FormatInt(key.storeID, 10))
	return &c.shards[d.Sum64()%shardCount]
}

// tryEnter reports whether an entrance at eventMs is outside the cooldown window of the
// previous one, and if so records it. The check and the update are atomic per key.
// An event exactly one window after the previous one is still suppressed.
func (c *cooldownTable) tryEnter(key cooldownKey, eventMs int64, now time.Time) bool {
	sh := c.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if prev, ok := sh.entries[key]; ok && eventMs-prev.lastEntranceMs <= c.windowMs {
		return false
	}
	sh.entries[key] = cooldownEntry{lastEntranceMs: eventMs, recordedAt: now}
	return true
}

// prune drops entries recorded before cutoff and returns how many were removed.
func (c *cooldownTable) prune(cutoff time.Time) int {
	removed := 0
	for i := range c.shards {
		sh := &c.shards[i]
		sh.mu.Lock()
		for k, e := range sh.entries {
			if e.recordedAt.Before(cutoff) {
				delete(sh.entries, k)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

func (c *cooldownTable) len() int {
	n := 0
	for i := range c.shards {
		sh := &c.shards[i]
		sh.mu.Lock()
		n += len(sh.entries)
		sh.mu.Unlock()
	}
	return n
}
