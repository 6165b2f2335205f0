// Package tracking is the in-memory aggregation and geofencing engine.
//
// A Tracker consumes courier pings one at a time. For every ping it
//   - adds the haversine distance from the previous position to an unflushed accumulator
//   - checks the ping against every store geofence and records entrances, suppressing
//     repeats for the same courier and store inside the cooldown window
//   - decides whether the accumulator must be flushed into the durable travel summary
//   - periodically sweeps couriers that went idle, flushing them one last time
//
// Per-courier state lives in a sharded map. Each courier entry has its own lock, so pings
// for different couriers never contend beyond a short shard lookup, and concurrent pings
// for the same courier are linearized. Durable I/O happens outside the state lock; the
// accumulator is reduced only after the durable write has been acknowledged.
package tracking
