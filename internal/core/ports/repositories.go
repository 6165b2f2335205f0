// Package ports defines the contracts between the tracking core and infrastructure.
// Adapters under internal/adapters implement these interfaces; the core depends only
// on them.
package ports

import (
	"context"

	"couriertracking/internal/core/domain/model/store"
	"couriertracking/internal/core/domain/model/travel"
)

// TravelSummaryRepository persists per-courier travel summaries.
// Get followed by Save behaves as read-modify-write with last-writer-wins semantics.
type TravelSummaryRepository interface {
	// Get returns the summary for courierID or an errs.ObjectNotFoundError when the
	// courier has never been flushed.
	Get(ctx context.Context, courierID string) (*travel.Summary, error)

	// Save inserts or updates the summary, keyed by courier id. Each call is atomic.
	Save(ctx context.Context, summary *travel.Summary) error
}

// StoreEntranceRepository persists store entrance records.
type StoreEntranceRepository interface {
	// Add appends an entrance.
	Add(ctx context.Context, entrance *travel.StoreEntrance) error

	// ListByCourier returns the courier's entrances, newest first.
	// An unknown courier yields an empty slice.
	ListByCourier(ctx context.Context, courierID string) ([]*travel.StoreEntrance, error)
}

// StoreRepository persists the store catalog.
type StoreRepository interface {
	// Add inserts a store and assigns its identifier.
	Add(ctx context.Context, s *store.Store) error

	// Count returns the number of stored stores.
	Count(ctx context.Context) (int64, error)

	// GetAll returns every store ordered by identifier.
	GetAll(ctx context.Context) ([]*store.Store, error)
}
