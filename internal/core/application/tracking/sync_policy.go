package tracking

import "time"

// syncPolicy decides when a courier's accumulator moves to durable storage.
// Either trigger is sufficient:
//   - count: the ping count is a positive multiple of frequency
//   - time: the courier was never synced, or the last sync is older than timeout
type syncPolicy struct {
	frequency uint64
	timeout   time.Duration
}

func (p syncPolicy) due(pingCount uint64, synced bool, lastSyncAt, now time.Time) bool {
	if pingCount > 0 && pingCount%p.frequency == 0 {
		return true
	}
	if !synced {
		return true
	}
	return now.Sub(lastSyncAt) > p.timeout
}
