package tracking

import (
	"errors"
	"fmt"
	"time"

	"couriertracking/internal/pkg/errs"
)

// Config holds the engine tunables. It is copied into the Tracker at construction and
// never changes afterwards.
type Config struct {
	// StoreRadiusMeters is the geofence radius for stores without their own radius.
	StoreRadiusMeters float64
	// EntranceCooldown is the minimum event-time gap between two entrances of the same
	// courier into the same store.
	EntranceCooldown time.Duration
	// SyncFrequency flushes a courier every SyncFrequency pings.
	SyncFrequency uint64
	// SyncTimeout flushes a courier whose last successful flush is older than this.
	SyncTimeout time.Duration
	// IdleThreshold evicts couriers that have not pinged for longer than this.
	IdleThreshold time.Duration
	// ReapEvery runs the idle sweep every ReapEvery pings across all couriers.
	ReapEvery uint64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		StoreRadiusMeters: 100,
		EntranceCooldown:  60 * time.Second,
		SyncFrequency:     10,
		SyncTimeout:       300 * time.Second,
		IdleThreshold:     time.Hour,
		ReapEvery:         100,
	}
}

// Validate requires every tunable to be positive.
func (c Config) Validate() error {
	var errList []error
	if !(c.StoreRadiusMeters > 0) {
		errList = append(errList, positive("storeRadiusMeters", c.StoreRadiusMeters))
	}
	if c.EntranceCooldown <= 0 {
		errList = append(errList, positive("entranceCooldown", c.EntranceCooldown))
	}
	if c.SyncFrequency == 0 {
		errList = append(errList, positive("syncFrequency", c.SyncFrequency))
	}
	if c.SyncTimeout <= 0 {
		errList = append(errList, positive("syncTimeout", c.SyncTimeout))
	}
	if c.IdleThreshold <= 0 {
		errList = append(errList, positive("idleThreshold", c.IdleThreshold))
	}
	if c.ReapEvery == 0 {
		errList = append(errList, positive("reapEvery", c.ReapEvery))
	}
	return errors.Join(errList...)
}

func positive(param string, v any) error {
	return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%v is not greater than 0", v))
}
