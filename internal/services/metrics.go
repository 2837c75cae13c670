package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchTotal counts engine searches by criterion and outcome
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flight_route_search_total",
		Help: "Total route searches by criterion and result",
	}, []string{"criterion", "result"}) // result: found, not_found, error

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flight_route_search_duration_seconds",
		Help:    "Route search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
	}, []string{"criterion"})

	searchExpanded = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flight_route_search_expanded_airports",
		Help:    "Airports closed per route search",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
	})

	segmentCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flight_route_journey_segments",
		Help:    "Flight segments per found journey",
		Buckets: []float64{0, 1, 2, 3, 4, 6, 8},
	})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flight_route_cache_lookups_total",
		Help: "Itinerary cache lookups by result",
	}, []string{"result"}) // hit, miss, error
)
