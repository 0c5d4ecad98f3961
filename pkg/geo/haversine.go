package geo

import "math"

const earthRadiusMeters = 6_371_000.0

// Haversine returns the great-circle distance in meters between two WGS84
// points given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := degToRad(lat1)
	lat2r := degToRad(lat2)
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// GreatCircleDistanceTo returns the great-circle distance to that, in
// meters. Within the bounds it stays within a fraction of a percent of
// DistanceTo.
func (p PointCh) GreatCircleDistanceTo(that PointCh) float64 {
	lon1, lat1 := p.Degrees()
	lon2, lat2 := that.Degrees()
	return Haversine(lat1, lon1, lat2, lon2)
}
