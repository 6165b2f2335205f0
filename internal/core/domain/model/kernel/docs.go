// Package kernel provides the shared primitives of the courier tracking domain.
//
// The package includes:
//   - Location: a validated WGS 84 coordinate value object
//   - Distance and DistanceCalculator: great-circle distance in meters (haversine)
//   - UUID: an identifier value object wrapping github.com/google/uuid
//
// Values are immutable and safe for concurrent use. Zero values are invalid and are
// rejected by Validate, so every instance in circulation went through a constructor.
package kernel
