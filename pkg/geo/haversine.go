package geo

import "math"

// sin^2(a/2)
func havFunction(angleRad float64) float64 {
	return math.Pow(math.Sin(angleRad/2.0), 2)
}

// HaversineDistance returns the great circle distance between the two points in meters.
func HaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degToRad(latOne)
	longOne = degToRad(longOne)
	latTwo = degToRad(latTwo)
	longTwo = degToRad(longTwo)

	centralAngleRad := 2.0 * math.Asin(math.Sqrt(havFunction(latOne-latTwo)+math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)))
	return earthRadiusM * centralAngleRad
}

// Distance is HaversineDistance for two coordinates.
func Distance(a, b Coordinate) float64 {
	return HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}
