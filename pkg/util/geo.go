package util

import (
	"math"
)

const (
	earthRadiusKm  = 6371.0
	kmPerMile      = 1.609344
	RadiusUnitKm   = "km"
	RadiusUnitMile = "miles"
)

// ValidLatitude reports whether lat is a finite value within -90..90.
func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && !math.IsInf(lat, 0) && lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lng is a finite value within -180..180.
func ValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && !math.IsInf(lng, 0) && lng >= -180 && lng <= 180
}

// RadiusToKilometers converts a radius magnitude in the given unit to
// kilometers. Unknown units are treated as kilometers.
func RadiusToKilometers(distance float64, unit string) float64 {
	if unit == RadiusUnitMile {
		return distance * kmPerMile
	}
	return distance
}

// CalculateDistance calculates the distance between two geographic points
// using the Haversine formula.
// Parameters: lat1, lon1, lat2, lon2 in degrees
// Returns: distance in kilometers
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degToRad(lat1)
	lon1Rad := degToRad(lon1)
	lat2Rad := degToRad(lat2)
	lon2Rad := degToRad(lon2)

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// degToRad converts degrees to radians
func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
