package handlers

import (
	"net/http"
	"sort"

	"flight-route-service/internal/api/dto"
	"flight-route-service/internal/domain"

	"github.com/go-chi/chi/v5"
)

type AirportHandler struct {
	Network *domain.Network
}

// List returns every airport sorted by code.
func (h *AirportHandler) List(w http.ResponseWriter, r *http.Request) {
	airports := h.Network.Airports()
	sort.Slice(airports, func(i, j int) bool { return airports[i].Code < airports[j].Code })

	res := dto.ListAirportsResponse{Airports: make([]dto.AirportResponse, 0, len(airports))}
	for _, a := range airports {
		res.Airports = append(res.Airports, dto.NewAirportResponse(a, h.Network.DefaultMinConnection()))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *AirportHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	i, ok := h.Network.AirportIndex(code)
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown airport "+code)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewAirportResponse(h.Network.Airport(i), h.Network.DefaultMinConnection()))
}
