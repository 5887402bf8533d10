package comparison

import (
	"math"
)

// HaversineKm calculates the great-circle distance between two points in
// kilometers. NaN coordinates propagate as NaN; identical points yield 0.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0 // Earth radius km
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// distanceTo returns the distance from the shopper location to a market, or
// nil when no location was supplied. Unknown distance is never conflated
// with zero distance.
func distanceTo(loc *Coordinates, m MarketSummary) *float64 {
	if loc == nil {
		return nil
	}
	d := HaversineKm(loc.Latitude, loc.Longitude, m.Latitude, m.Longitude)
	return &d
}
