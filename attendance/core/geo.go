package core

import "math"

const EarthRadiusMeters = 6371000.0

// geofenceTolerance absorbs floating point error at the exact radius boundary.
const geofenceTolerance = 1e-6

// Distance returns the haversine great-circle distance in meters between two WGS84 points.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// WithinRadius reports whether the user position lies inside the circle, boundary included.
func WithinRadius(userLat, userLng, centerLat, centerLng, radiusMeters float64) bool {
	return Distance(userLat, userLng, centerLat, centerLng) <= radiusMeters+geofenceTolerance
}
