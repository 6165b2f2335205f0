package services

import (
	"errors"
	"fmt"

	"couriertracking/internal/core/domain/model/kernel"
	"couriertracking/internal/core/domain/model/store"
	"couriertracking/internal/pkg/errs"
)

// ErrDuplicateStoreName is returned when two stores in a snapshot share a name.
var ErrDuplicateStoreName = errors.New("duplicate store name")

// Geofence is the read-only view of a store used by proximity checks.
// RadiusMeters is already resolved against the process-wide default.
type Geofence struct {
	StoreID      int64
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// GeofenceDirectory holds the geofences known to the process.
//
// Example usage:
//
//	dir, err := services.NewGeofenceDirectory(stores, 100)
//	if err != nil {
//	    return err
//	}
//	for _, g := range dir.Within(pingLocation, kernel.HaversineCalculator{}) {
//	    fmt.Println("entered", g.Name)
//	}
type GeofenceDirectory struct {
	geofences []Geofence
}

// NewGeofenceDirectory snapshots stores in the given order. defaultRadius applies to
// stores without a radius of their own and must be positive.
func NewGeofenceDirectory(stores []*store.Store, defaultRadius float64) (*GeofenceDirectory, error) {
	if defaultRadius <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("radius", fmt.Errorf("%v is not greater than 0", defaultRadius))
	}

	seen := make(map[string]struct{}, len(stores))
	geofences := make([]Geofence, 0, len(stores))
	for _, s := range stores {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[s.Name()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStoreName, s.Name())
		}
		seen[s.Name()] = struct{}{}

		geofences = append(geofences, Geofence{
			StoreID:      s.ID(),
			Name:         s.Name(),
			Latitude:     s.Location().Latitude(),
			Longitude:    s.Location().Longitude(),
			RadiusMeters: s.EffectiveRadius(defaultRadius),
		})
	}

	return &GeofenceDirectory{geofences: geofences}, nil
}

// EmptyGeofenceDirectory returns a directory with no geofences.
func EmptyGeofenceDirectory() *GeofenceDirectory {
	return &GeofenceDirectory{}
}

// Within returns, in load order, the geofences whose center lies at most RadiusMeters
// away from location. The boundary is inclusive.
func (d *GeofenceDirectory) Within(location kernel.Location, calc kernel.DistanceCalculator) []Geofence {
	if d == nil || len(d.geofences) == 0 {
		return nil
	}

	var hits []Geofence
	lat, lng := location.Latitude(), location.Longitude()
	for _, g := range d.geofences {
		if calc.Distance(lat, lng, g.Latitude, g.Longitude) <= g.RadiusMeters {
			hits = append(hits, g)
		}
	}
	return hits
}

// Len returns the number of geofences.
func (d *GeofenceDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.geofences)
}

// All returns a copy of the geofences in load order.
func (d *GeofenceDirectory) All() []Geofence {
	if d == nil {
		return nil
	}
	out := make([]Geofence, len(d.geofences))
	copy(out, d.geofences)
	return out
}
