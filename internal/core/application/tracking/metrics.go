package tracking

// FlushResult labels the outcome of a flush attempt.
type FlushResult string

const (
	// FlushWritten means a non-zero amount reached durable storage.
	FlushWritten FlushResult = "written"
	// FlushSkipped means there was nothing to write; only the sync time moved.
	FlushSkipped FlushResult = "skipped"
	// FlushFailed means durable storage rejected the write and the amount stayed pending.
	FlushFailed FlushResult = "failed"
)

// Metrics receives engine counters. Implementations must be safe for concurrent use.
type Metrics interface {
	PingRecorded()
	EntranceRecorded()
	EntranceSuppressed()
	FlushCompleted(result FlushResult, meters float64)
	ObserverFailed()
	CouriersReaped(n int)
	TrackedCouriers(n int)
}

type noopMetrics struct{}

func (noopMetrics) PingRecorded()                       {}
func (noopMetrics) EntranceRecorded()                   {}
func (noopMetrics) EntranceSuppressed()                 {}
func (noopMetrics) FlushCompleted(FlushResult, float64) {}
func (noopMetrics) ObserverFailed()                     {}
func (noopMetrics) CouriersReaped(int)                  {}
func (noopMetrics) TrackedCouriers(int)                 {}
