// Package queries contains read operations. Handlers return read models shaped for the
// inbound adapters rather than domain objects.
package queries

import (
	"context"

	"couriertracking/internal/core/domain/model/store"
	"couriertracking/internal/core/domain/model/travel"
)

type (
	// DistanceReader returns the up-to-date travel distance of a courier.
	DistanceReader interface {
		TotalDistance(ctx context.Context, courierID string) (float64, error)
	}

	// EntranceReader lists store entrances of a courier, newest first.
	EntranceReader interface {
		ListByCourier(ctx context.Context, courierID string) ([]*travel.StoreEntrance, error)
	}

	// StoreReader lists the store catalog.
	StoreReader interface {
		GetAll(ctx context.Context) ([]*store.Store, error)
	}
)
