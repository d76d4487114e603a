// Package ride — geo.go contains the pure distance/price computations.
package ride

import "math"

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// PathDistanceKm sums the great-circle distance over consecutive samples.
// Timestamps play no part in the computation. Zero or one sample is a valid
// path of length zero.
func PathDistanceKm(samples []Sample) float64 {
	var total float64
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1].Position, samples[i].Position
		total += haversineKm(a.Lat, a.Lng, b.Lat, b.Lng)
	}
	return total
}

// Fare derives the owed amount from traveled distance. The rate is validated
// positive at trip setup; the clamp keeps the result non-negative anyway.
func Fare(distanceKm, pricePerKm float64) float64 {
	price := distanceKm * pricePerKm
	if price < 0 {
		return 0
	}
	return price
}
