package spatial

import "github.com/golang/geo/s2"

// Earth radii used to convert S2 angles to distances
const (
	EarthRadiusMeters = 6371000.0
	EarthRadiusKm     = 6371.0
)

// HaversineDistanceKm calculates the great-circle distance between two
// points in kilometers
func HaversineDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}
