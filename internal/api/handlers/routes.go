package handlers

import (
	"errors"
	"net/http"
	"strings"

	"flight-route-service/internal/api/dto"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/services"

	"go.uber.org/zap"
)

// DefaultDeparture is used when the request omits a departure time (08:00).
const DefaultDeparture = 480

type RouteHandler struct {
	Planner *services.Planner
}

// Find plans a trip from query parameters:
//
//	GET /routes?from=JFK&to=LAX&day=monday&departure=08:00&criterion=cheapest,fastest
//
// departure accepts minutes or HH:MM; criterion defaults to all three.
func (h *RouteHandler) Find(w http.ResponseWriter, r *http.Request) {
	req, err := parseRouteQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.Planner.PlanTrip(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, dto.NewTripPlanResponse(plan))
	case errors.Is(err, domain.ErrNoPathFound):
		writeError(w, r, http.StatusNotFound, "no route found from "+plan.Origin+" to "+plan.Destination)
	case errors.Is(err, domain.ErrUnknownAirport):
		writeError(w, r, http.StatusNotFound, err.Error())
	case services.IsClientError(err):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		zap.L().Error("plan trip failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func parseRouteQuery(r *http.Request) (services.PlanTripRequest, error) {
	q := r.URL.Query()
	req := services.PlanTripRequest{
		Origin:      strings.TrimSpace(q.Get("from")),
		Destination: strings.TrimSpace(q.Get("to")),
		Departure:   DefaultDeparture,
	}
	if req.Origin == "" || req.Destination == "" {
		return req, errors.New("from and to are required")
	}

	day := q.Get("day")
	if day == "" {
		return req, errors.New("day is required")
	}
	d, err := domain.ParseWeekday(day)
	if err != nil {
		return req, err
	}
	req.Day = d

	if v := q.Get("departure"); v != "" {
		m, err := domain.ParseTimeOfDay(v)
		if err != nil {
			return req, err
		}
		req.Departure = m
	}

	if v := q.Get("criterion"); v != "" {
		for _, name := range strings.Split(v, ",") {
			c, err := domain.ParseCriterion(name)
			if err != nil {
				return req, err
			}
			req.Criteria = append(req.Criteria, c)
		}
	}

	return req, nil
}
