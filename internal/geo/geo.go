// Package geo computes great-circle distances between airports.
package geo

import (
	"flight-route-service/internal/domain"

	"github.com/umahmood/haversine"
)

// EarthRadiusKm is the mean Earth radius the haversine package uses.
const EarthRadiusKm = 6371.0

// GreatCircleKm returns the haversine distance in kilometers between two
// points given in degrees.
func GreatCircleKm(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lon1},
		haversine.Coord{Lat: lat2, Lon: lon2},
	)
	return km
}

// Between is GreatCircleKm over domain coordinates.
func Between(a, b domain.Coordinates) float64 {
	return GreatCircleKm(a.Lat, a.Lon, b.Lat, b.Lon)
}
