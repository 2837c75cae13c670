package api

import (
	"net/http"

	"flight-route-service/internal/api/handlers"
	"flight-route-service/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/tevino/abool"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Deps struct {
	Planner *services.Planner
	// Ready is set once the network is loaded; nil means always ready.
	Ready *abool.AtomicBool
	Log   *zap.Logger
	// RoutesPerSecond limits /routes and /network.dot; zero disables the limit.
	RoutesPerSecond float64
	RoutesBurst     int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	ready := d.Ready
	if ready == nil {
		ready = abool.NewBool(true)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestIDContext)
	r.Use(loggingMiddleware(log))
	r.Use(middleware.Recoverer)

	airportHandler := &handlers.AirportHandler{Network: d.Planner.Network()}
	routeHandler := &handlers.RouteHandler{Planner: d.Planner}
	graphHandler := &handlers.GraphHandler{Engine: d.Planner.Engine()}
	readyHandler := &handlers.ReadyHandler{Flag: ready}

	r.Get("/health", handlers.Health)
	r.Get("/ready", readyHandler.Ready)
	r.Get("/airports", airportHandler.List)
	r.Get("/airports/{code}", airportHandler.Get)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if d.RoutesPerSecond > 0 {
			burst := d.RoutesBurst
			if burst <= 0 {
				burst = 1
			}
			r.Use(rateLimit(rate.NewLimiter(rate.Limit(d.RoutesPerSecond), burst)))
		}
		r.Get("/routes", routeHandler.Find)
		r.Get("/network.dot", graphHandler.Network)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}
