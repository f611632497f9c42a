package geo

import (
	"math"

	"school-map-service/internal/domain"
)

const earthRadiusKm = 6371.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// DistanceKm computes the great-circle distance between two points using the
// haversine formula. The result is symmetric in its endpoints and zero for
// identical points. Inputs are not bounds-checked: out-of-range coordinates
// produce a mathematically defined but meaningless result.
func DistanceKm(a, b domain.Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}
