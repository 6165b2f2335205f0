package store

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/pkg/errs"
)

var (
	// ErrStoreIsNotConstructed is returned when a Store was not created through
	// NewStore or RestoreStore.
	ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")
)

// Store is a geofence: a named point with an optional per-store radius.
//
// The identifier is assigned by persistence. A freshly built Store carries ID 0
// until the repository stores it.
type Store struct {
	id           int64
	name         string
	location     kernel.Location
	radiusMeters float64

	isConstructed bool
}

// NewStore creates a store that has not been persisted yet.
//
// Parameters:
//   - name: display name, unique in the catalog (whitespace is trimmed)
//   - location: geofence center
//   - radiusMeters: geofence radius; 0 selects the process-wide default
//
// Example:
//
//	loc := kernel.MustNewLocation(40.9923307, 29.1244229)
//	s, err := store.NewStore("Ataşehir MMM Migros", loc, 0)
func NewStore(name string, location kernel.Location, radiusMeters float64) (*Store, error) {
	s := &Store{isConstructed: true}

	if err := errors.Join(
		s.setName(name),
		s.setLocation(location),
		s.setRadius(radiusMeters),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreStore rebuilds a persisted store.
func RestoreStore(id int64, name string, location kernel.Location, radiusMeters float64) (*Store, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("storeId", fmt.Errorf("%d is not greater than 0", id))
	}

	s, err := NewStore(name, location, radiusMeters)
	if err != nil {
		return nil, err
	}
	s.id = id
	return s, nil
}

// Validate rejects zero-value stores.
func (s *Store) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStoreIsNotConstructed
	}
	return nil
}

// ID returns the persistence identifier, 0 for stores not yet saved.
func (s *Store) ID() int64 {
	return s.id
}

// AssignID is called by repositories once the store has been inserted.
func (s *Store) AssignID(id int64) {
	s.id = id
}

// Name returns the store name.
func (s *Store) Name() string {
	return s.name
}

// Location returns the geofence center.
func (s *Store) Location() kernel.Location {
	return s.location
}

// RadiusMeters returns the per-store radius, 0 when the default applies.
func (s *Store) RadiusMeters() float64 {
	return s.radiusMeters
}

// EffectiveRadius returns RadiusMeters, or fallback when the store has none.
func (s *Store) EffectiveRadius(fallback float64) float64 {
	if s.radiusMeters > 0 {
		return s.radiusMeters
	}
	return fallback
}

func (s *Store) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *Store) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = location
	return nil
}

func (s *Store) setRadius(radiusMeters float64) error {
	if radiusMeters < 0 || math.IsNaN(radiusMeters) || math.IsInf(radiusMeters, 0) {
		return errs.NewValueIsInvalidErrorWithCause("radius", fmt.Errorf("%v is not a finite non-negative number", radiusMeters))
	}
	s.radiusMeters = radiusMeters
	return nil
}
