package dto

import "flight-route-service/internal/domain"

type SegmentResponse struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	Day           string  `json:"day"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Duration      int     `json:"duration"`
	Cost          float64 `json:"cost"`
	Distance      float64 `json:"distance"`
}

type JourneyResponse struct {
	TotalCost     float64           `json:"total_cost"`
	TotalDuration int               `json:"total_duration"`
	Segments      []SegmentResponse `json:"segments"`
}

// TripPlanResponse is the itinerary document served by the API and written by
// the CLI. Journeys is keyed by criterion name and omits criteria with no route.
type TripPlanResponse struct {
	Origin        string                     `json:"origin"`
	Destination   string                     `json:"destination"`
	DepartureDay  string                     `json:"departure_day"`
	DepartureTime string                     `json:"departure_time"`
	Journeys      map[string]JourneyResponse `json:"journeys"`
}

func NewTripPlanResponse(p *domain.TripPlan) TripPlanResponse {
	res := TripPlanResponse{
		Origin:        p.Origin,
		Destination:   p.Destination,
		DepartureDay:  p.Day.String(),
		DepartureTime: domain.FormatClock(p.Departure),
		Journeys:      make(map[string]JourneyResponse, len(p.Journeys)),
	}

	for _, j := range p.Journeys {
		segments := make([]SegmentResponse, 0, len(j.Segments))
		for _, s := range j.Segments {
			segments = append(segments, SegmentResponse{
				From:          s.From,
				To:            s.To,
				Day:           s.Day.String(),
				DepartureTime: domain.FormatClock(s.Departure),
				ArrivalTime:   domain.FormatClock(s.Arrival),
				Duration:      s.Duration,
				Cost:          s.Cost,
				Distance:      s.DistanceKm,
			})
		}
		res.Journeys[j.Criterion.String()] = JourneyResponse{
			TotalCost:     j.TotalCost,
			TotalDuration: j.TotalDuration,
			Segments:      segments,
		}
	}

	return res
}
