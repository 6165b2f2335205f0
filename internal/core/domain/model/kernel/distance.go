package kernel

import "math"

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

// DistanceCalculator computes the distance in meters between two coordinates given in degrees.
// The tracking engine depends on this interface so tests can substitute a fixed distance.
type DistanceCalculator interface {
	Distance(lat1, lng1, lat2, lng2 float64) float64
}

// DistanceFunc adapts an ordinary function to DistanceCalculator.
type DistanceFunc func(lat1, lng1, lat2, lng2 float64) float64

// Distance calls f.
func (f DistanceFunc) Distance(lat1, lng1, lat2, lng2 float64) float64 {
	return f(lat1, lng1, lat2, lng2)
}

// HaversineCalculator is the production DistanceCalculator.
type HaversineCalculator struct{}

// Distance returns the haversine distance in meters.
func (HaversineCalculator) Distance(lat1, lng1, lat2, lng2 float64) float64 {
	return Distance(lat1, lng1, lat2, lng2)
}

// Distance returns the great-circle distance in meters between two points using the
// haversine formula on a sphere of radius EarthRadiusMeters.
//
// The result is symmetric bit for bit: every term is either squared after a sign flip
// or a commutative product, so Distance(a, b) == Distance(b, a). Identical points yield 0
// and the result never exceeds half the circumference.
// Inputs are not range checked; validation happens when a Location is constructed.
//
// Example:
//
//	d := kernel.Distance(41.0, 29.0, 41.01, 29.01) // ≈ 1393 m
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	a := sinLat*sinLat + math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*sinLng*sinLng
	// Rounding can push a just past 1 for near-antipodal points.
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
