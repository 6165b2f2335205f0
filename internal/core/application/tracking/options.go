package tracking

import (
	"log/slog"

	"couriertracking/internal/core/domain/model/kernel"
)

// Option customizes a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(t *Tracker) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// WithDistanceCalculator replaces the haversine calculator.
func WithDistanceCalculator(calc kernel.DistanceCalculator) Option {
	return func(t *Tracker) {
		if calc != nil {
			t.distance = calc
		}
	}
}

// WithMetrics installs a metrics sink.
func WithMetrics(m Metrics) Option {
	return func(t *Tracker) {
		if m != nil {
			t.metrics = m
		}
	}
}

// WithObservers registers entrance observers, notified in the given order.
func WithObservers(observers ...EntranceObserver) Option {
	return func(t *Tracker) {
		for _, o := range observers {
			if o != nil {
				t.observers.observers = append(t.observers.observers, o)
			}
		}
	}
}
