package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"flight-route-service/internal/domain"
	"flight-route-service/internal/pathfinder"
	"flight-route-service/internal/platform/obs"
	"flight-route-service/internal/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const tracerName = "flight-route-service/services"

type PlanTripRequest struct {
	Origin      string
	Destination string
	Day         domain.Weekday
	Departure   int
	// Criteria to search; empty means all three.
	Criteria []domain.Criterion
}

// Planner answers trip requests by running one engine search per criterion.
type Planner struct {
	engine *pathfinder.Engine
	cache  ports.ItineraryCache
	log    *zap.Logger
	tracer trace.Tracer
	// network fingerprint, first component of every cache key
	networkKey string
}

// NewPlanner wires an engine with an optional cache (nil disables caching).
func NewPlanner(engine *pathfinder.Engine, cache ports.ItineraryCache, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{
		engine:     engine,
		cache:      cache,
		log:        log,
		tracer:     otel.Tracer(tracerName),
		networkKey: NetworkFingerprint(engine.Network(), engine.MaxExpansions()),
	}
}

func (p *Planner) Network() *domain.Network { return p.engine.Network() }

func (p *Planner) Engine() *pathfinder.Engine { return p.engine }

// PlanTrip searches every requested criterion concurrently and assembles the
// journeys that were found. When no criterion reaches the destination the
// returned plan has no journeys and the error wraps domain.ErrNoPathFound.
func (p *Planner) PlanTrip(ctx context.Context, req PlanTripRequest) (_ *domain.TripPlan, err error) {
	defer obs.Time(ctx, p.log, "planner.PlanTrip")(&err)

	criteria, err := normalizeCriteria(req.Criteria)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	n := p.engine.Network()
	origin, err := n.MustAirportIndex(req.Origin)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	destination, err := n.MustAirportIndex(req.Destination)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	if !req.Day.Valid() {
		return nil, fmt.Errorf("plan trip: day %d: %w", int(req.Day), domain.ErrUnknownWeekday)
	}
	if !domain.ValidClock(req.Departure) {
		return nil, fmt.Errorf("plan trip: departure %d: %w", req.Departure, domain.ErrMalformedTime)
	}

	base := &domain.TripPlan{
		Origin:      n.Airport(origin).Code,
		Destination: n.Airport(destination).Code,
		Day:         req.Day,
		Departure:   req.Departure,
	}

	ctx, span := p.tracer.Start(ctx, "services.Planner.PlanTrip",
		trace.WithAttributes(
			attribute.String("origin", base.Origin),
			attribute.String("destination", base.Destination),
			attribute.String("day", base.Day.String()),
			attribute.Int("departure", base.Departure),
		),
	)
	defer span.End()

	key := CacheKey(p.networkKey, base.Origin, base.Destination, base.Day, base.Departure, criteria)
	if plan, ok := p.cacheGet(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return plan, nil
	}

	journeys := make([]*domain.Journey, len(criteria))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range criteria {
		g.Go(func() error {
			j, err := p.search(gctx, base, c)
			if err != nil {
				return err
			}
			journeys[i] = j
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	plan := base
	for _, j := range journeys {
		if j != nil {
			plan.Journeys = append(plan.Journeys, *j)
		}
	}
	span.SetAttributes(attribute.Int("journeys", len(plan.Journeys)))

	if len(plan.Journeys) == 0 {
		return plan, fmt.Errorf("plan trip %s->%s on %s at %s: %w",
			plan.Origin, plan.Destination, plan.Day, domain.FormatClock(plan.Departure), domain.ErrNoPathFound)
	}

	p.cacheSet(ctx, key, plan)
	return plan, nil
}

// search runs one criterion. A nil journey means the destination was not reached.
func (p *Planner) search(ctx context.Context, base *domain.TripPlan, c domain.Criterion) (*domain.Journey, error) {
	ctx, span := p.tracer.Start(ctx, "pathfinder.Engine.FindPath",
		trace.WithAttributes(attribute.String("criterion", c.String())),
	)
	defer span.End()

	start := time.Now()
	res, err := p.engine.FindPath(ctx, pathfinder.Query{
		Origin:      base.Origin,
		Destination: base.Destination,
		Day:         base.Day,
		Departure:   base.Departure,
		Criterion:   c,
	})
	searchDuration.WithLabelValues(c.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		searchTotal.WithLabelValues(c.String(), "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	searchExpanded.Observe(float64(res.Expanded))
	span.SetAttributes(
		attribute.Bool("found", res.Found),
		attribute.Int("expanded", res.Expanded),
	)

	if !res.Found {
		searchTotal.WithLabelValues(c.String(), "not_found").Inc()
		return nil, nil
	}
	searchTotal.WithLabelValues(c.String(), "found").Inc()
	segmentCount.Observe(float64(len(res.Path)))

	j, err := domain.NewJourney(p.engine.Network(), c, res.Path, res.Cost)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Cache failures are logged and treated as misses; planning never depends on the cache.
func (p *Planner) cacheGet(ctx context.Context, key string) (*domain.TripPlan, bool) {
	if p.cache == nil {
		return nil, false
	}
	plan, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		cacheLookups.WithLabelValues("error").Inc()
		p.log.Warn("itinerary cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		cacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	cacheLookups.WithLabelValues("hit").Inc()
	return plan, true
}

func (p *Planner) cacheSet(ctx context.Context, key string, plan *domain.TripPlan) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Set(ctx, key, plan); err != nil {
		p.log.Warn("itinerary cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// CacheKey identifies a trip request against one network, e.g.
// "9f2c01ab77e3d410|JFK|LAX|monday|480|cheapest,fastest".
func CacheKey(network, origin, destination string, day domain.Weekday, departure int, criteria []domain.Criterion) string {
	names := make([]string, len(criteria))
	for i, c := range criteria {
		names[i] = c.String()
	}
	return strings.Join([]string{network, origin, destination, day.String(), strconv.Itoa(departure), strings.Join(names, ",")}, "|")
}

// normalizeCriteria defaults to all criteria and drops duplicates, keeping
// the canonical cheapest, fastest, optimal order.
func normalizeCriteria(in []domain.Criterion) ([]domain.Criterion, error) {
	if len(in) == 0 {
		return domain.Criteria(), nil
	}

	want := make(map[domain.Criterion]bool, len(in))
	for _, c := range in {
		if !c.Valid() {
			return nil, fmt.Errorf("criterion %d: %w", int(c), domain.ErrUnknownCriterion)
		}
		want[c] = true
	}

	out := make([]domain.Criterion, 0, len(want))
	for _, c := range domain.Criteria() {
		if want[c] {
			out = append(out, c)
		}
	}
	return out, nil
}

// IsClientError reports whether err was caused by the request rather than the service.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrUnknownAirport) ||
		errors.Is(err, domain.ErrMalformedTime) ||
		errors.Is(err, domain.ErrUnknownWeekday) ||
		errors.Is(err, domain.ErrUnknownCriterion)
}
