package utils

import "math"

func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius accepts radii in (0, 100] km.
func ValidateRadius(radiusKm float64) bool {
	return radiusKm > 0 && radiusKm <= 100
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
