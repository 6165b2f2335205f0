// Package travel provides the durable side of courier tracking.
//
// The package includes:
//   - Summary: the per-courier odometer aggregate, created lazily on the first flush and
//     mutated only by flushes of the tracking engine
//   - StoreEntrance: an immutable record of a courier entering a store geofence
//
// Key business rules:
//   - One Summary per courier id
//   - TotalDistance never decreases; only non-negative increments are accepted
//   - The last known position is optional until the first flush that carries one
package travel
