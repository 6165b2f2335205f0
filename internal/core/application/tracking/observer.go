package tracking

import (
	"context"
	"fmt"
	"log/slog"
)

// StoreEntranceEvent describes a courier entering a store geofence.
type StoreEntranceEvent struct {
	CourierID      string
	StoreID        int64
	StoreName      string
	EntranceTimeMs int64
}

// EntranceObserver is notified once per recorded entrance. Observers run synchronously on
// the ping path in registration order; an error or panic in one observer is logged and
// does not affect the others or the entrance itself.
type EntranceObserver interface {
	OnStoreEntrance(ctx context.Context, event StoreEntranceEvent) error
}

// ObserverFunc adapts a function to EntranceObserver.
type ObserverFunc func(ctx context.Context, event StoreEntranceEvent) error

// OnStoreEntrance calls f.
func (f ObserverFunc) OnStoreEntrance(ctx context.Context, event StoreEntranceEvent) error {
	return f(ctx, event)
}

type observerSet struct {
	observers []EntranceObserver
	logger    *slog.Logger
	metrics   Metrics
}

func (s observerSet) notify(ctx context.Context, event StoreEntranceEvent) {
	for i, o := range s.observers {
		if err := s.call(ctx, o, event); err != nil {
			s.metrics.ObserverFailed()
			s.logger.Error("entrance observer failed",
				"observer", i,
				"courier_id", event.CourierID,
				"store", event.StoreName,
				"error", err)
		}
	}
}

func (s observerSet) call(ctx context.Context, o EntranceObserver, event StoreEntranceEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panic: %v", r)
		}
	}()
	return o.OnStoreEntrance(ctx, event)
}
