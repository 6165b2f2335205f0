// Package store provides the Store entity: a named circular geofence around a physical
// store location. Entering the circle is the business event the tracking engine reports.
//
// Key business rules:
//   - Name is required and unique across the catalog
//   - Location is a validated geographic point
//   - RadiusMeters is optional; zero means the process-wide radius applies
//   - Stores are loaded once at startup and are read-only afterwards
package store
