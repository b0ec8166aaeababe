package geo

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance between two points in
// kilometers using the Haversine formula, rounded to 2 decimal places.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return math.Round(earthRadiusKm*c*100) / 100
}

// FormatDistance renders a distance for display: meters below 1 km,
// kilometers with one decimal otherwise.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
