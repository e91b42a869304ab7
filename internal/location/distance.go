package location

import (
	"math"
)

const earthRadiusKm = 6371.0 // Earth's radius in kilometers

// DistanceKm calculates the great-circle distance between two points in
// kilometers using the haversine formula.
func DistanceKm(a, b Coordinate) float64 {
	// Convert to radians
	lat1Rad := toRadians(a.Lat)
	lat2Rad := toRadians(b.Lat)
	deltaLat := toRadians(b.Lat - a.Lat)
	deltaLon := toRadians(b.Lon - a.Lon)

	// Haversine formula
	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
