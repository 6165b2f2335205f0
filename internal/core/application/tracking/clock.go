package tracking

import "time"

// Clock returns the current wall-clock time. The engine uses it for receipt times:
// idleness, sync timeouts and cooldown staleness. Event timestamps carried by pings
// are never compared against it.
type Clock func() time.Time

// SystemClock is the production Clock.
func SystemClock() time.Time {
	return time.Now()
}
