package dto

import "flight-route-service/internal/domain"

type AirportResponse struct {
	Code              string  `json:"code"`
	Name              string  `json:"name"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	MinConnectionTime int     `json:"min_connection_time"`
}

type ListAirportsResponse struct {
	Airports []AirportResponse `json:"airports"`
}

// NewAirportResponse reports the effective minimum connection time, so the
// network default is filled in for airports that do not set one.
func NewAirportResponse(a domain.Airport, defaultMinConnection int) AirportResponse {
	mct := defaultMinConnection
	if a.MinConnectionMinutes != nil {
		mct = *a.MinConnectionMinutes
	}
	return AirportResponse{
		Code:              a.Code,
		Name:              a.Name,
		Latitude:          a.Location.Lat,
		Longitude:         a.Location.Lon,
		MinConnectionTime: mct,
	}
}
