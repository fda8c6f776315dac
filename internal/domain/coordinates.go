package domain

import "math"

const earthRadiusMeters = 6371000

// Immutable geographic coordinate (latitude, longitude).
type Coordinate struct {
	Lat float64
	Lng float64
}

// Return coordinate as [lng, lat] for external API compatibility.
func (c Coordinate) CoordsToList() []float64 { return []float64{c.Lng, c.Lat} }

// DistanceKm returns the great-circle distance to other in kilometers
// using the Haversine formula.
func (c Coordinate) DistanceKm(other Coordinate) float64 {
	dLat := deg2rad(other.Lat - c.Lat)
	dLng := deg2rad(other.Lng - c.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(c.Lat))*math.Cos(deg2rad(other.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	cc := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * cc / 1000
}

func deg2rad(deg float64) float64 { return deg * (math.Pi / 180) }

// RoutePoint is one endpoint of a trip: where it is and how the user named it.
type RoutePoint struct {
	Coordinate Coordinate
	Address    string
}
