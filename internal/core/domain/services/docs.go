// Package services provides domain services that span more than one entity.
//
// The package includes:
//   - GeofenceDirectory: an immutable snapshot of store geofences consulted on every
//     courier ping to find the stores whose circle contains the ping position
//
// The directory is built once at startup and is safe for concurrent reads without
// synchronization.
package services
