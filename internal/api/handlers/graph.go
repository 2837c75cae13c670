package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"flight-route-service/internal/adapters/dot"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/pathfinder"
	"flight-route-service/internal/services"

	"go.uber.org/zap"
)

type GraphHandler struct {
	Engine *pathfinder.Engine
}

// Network serves the route map in Graphviz DOT. With from/to/day query
// parameters the best itinerary for criterion (default cheapest) is highlighted.
func (h *GraphHandler) Network(w http.ResponseWriter, r *http.Request) {
	var highlight []int
	if r.URL.Query().Get("from") != "" {
		req, err := parseRouteQuery(r)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		c := domain.Cheapest
		if len(req.Criteria) > 0 {
			c = req.Criteria[0]
		}
		res, err := h.Engine.FindPath(r.Context(), pathfinder.Query{
			Origin:      req.Origin,
			Destination: req.Destination,
			Day:         req.Day,
			Departure:   req.Departure,
			Criterion:   c,
		})
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, domain.ErrUnknownAirport) {
				status = http.StatusNotFound
			} else if services.IsClientError(err) {
				status = http.StatusBadRequest
			}
			writeError(w, r, status, err.Error())
			return
		}
		highlight = res.Path
	}

	out, err := dot.Render(h.Engine.Network(), highlight)
	if err != nil {
		zap.L().Error("render network graph failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(out)); err != nil {
		zap.L().Warn("write graph response failed", zap.Error(err))
	}
}
