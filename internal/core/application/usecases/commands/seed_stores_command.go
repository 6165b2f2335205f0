package commands

import (
	"errors"
	"fmt"
	"strings"

	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/core/domain/model/store"
	"couriertracking/internal/pkg/errs"
	"couriertracking/internal/pkg/guard"
)

var (
	ErrSeedStoresCommandIsNotConstructed = errors.New(
		"SeedStoresCommand must be created via NewSeedStoresCommand constructor",
	)
	ErrDuplicateStoreName = errors.New("duplicate store name")
)

// StoreSeed is one entry of the geofence seed source.
type StoreSeed struct {
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// SeedStoresCommand loads the initial store catalog.
type SeedStoresCommand struct { //nolint:recvcheck //using for validation
	stores []*store.Store

	guard guard.ConstructorGuard
}

// NewSeedStoresCommand validates every entry and rejects duplicate names. The order of
// seeds is preserved.
func NewSeedStoresCommand(seeds []StoreSeed) (SeedStoresCommand, error) {
	if len(seeds) == 0 {
		return SeedStoresCommand{}, errs.NewValueIsRequiredError("stores")
	}

	var errList []error
	stores := make([]*store.Store, 0, len(seeds))
	seen := make(map[string]int, len(seeds))

	for i, seed := range seeds {
		location, err := kernel.NewLocation(seed.Latitude, seed.Longitude)
		if err != nil {
			errList = append(errList, fmt.Errorf("stores[%d]: %w", i, err))
			continue
		}
		s, err := store.NewStore(seed.Name, location, seed.RadiusMeters)
		if err != nil {
			errList = append(errList, fmt.Errorf("stores[%d]: %w", i, err))
			continue
		}

		key := strings.ToLower(s.Name())
		if first, dup := seen[key]; dup {
			errList = append(errList, fmt.Errorf("stores[%d]: %w: %q already at stores[%d]",
				i, ErrDuplicateStoreName, s.Name(), first))
			continue
		}
		seen[key] = i
		stores = append(stores, s)
	}

	if err := errors.Join(errList...); err != nil {
		return SeedStoresCommand{}, err
	}

	return SeedStoresCommand{stores: stores, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c SeedStoresCommand) Validate() error {
	return c.guard.Validate(ErrSeedStoresCommandIsNotConstructed)
}

// Stores returns the validated stores in seed order.
func (c SeedStoresCommand) Stores() []*store.Store {
	return c.stores
}
