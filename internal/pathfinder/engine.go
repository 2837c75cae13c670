package pathfinder

import (
	"context"
	"errors"
	"fmt"

	"flight-route-service/internal/domain"
	"flight-route-service/internal/geo"

	"go.uber.org/zap"
)

// DefaultMaxExpansions bounds how many nodes one search may pop from the open
// set. Stale entries discarded by lazy pruning and the goal itself both count.
const DefaultMaxExpansions = 10000

// how often the expansion loop polls the context
const cancelCheckInterval = 256

var errBrokenPredecessors = errors.New("pathfinder: predecessor chain does not reach origin")

// Query is one route request.
type Query struct {
	Origin      string
	Destination string
	Day         domain.Weekday
	Departure   int
	Criterion   domain.Criterion
}

// Result is the outcome of a search. Path holds flight indexes into the
// Network in travel order; it is empty when Found is false or when origin
// equals destination.
type Result struct {
	Path     []int
	Found    bool
	Cost     float64
	// Expanded counts open-set pops.
	Expanded int
}

// Relaxation is reported to a trace hook whenever BestKnown improves.
type Relaxation struct {
	Airport int
	Flight  int
	Cost    float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxExpansions overrides DefaultMaxExpansions. Non-positive values are ignored.
func WithMaxExpansions(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxExpansions = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTrace installs a hook called on every BestKnown improvement.
func WithTrace(fn func(Relaxation)) Option {
	return func(e *Engine) { e.trace = fn }
}

// Engine runs best-first searches over a read-only Network.
// An Engine holds no per-search state and can serve concurrent FindPath calls.
type Engine struct {
	network       *domain.Network
	maxExpansions int
	log           *zap.Logger
	trace         func(Relaxation)
}

// NewEngine returns an engine over n with DefaultMaxExpansions and a no-op logger.
func NewEngine(n *domain.Network, opts ...Option) *Engine {
	e := &Engine{
		network:       n,
		maxExpansions: DefaultMaxExpansions,
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Network returns the network the engine searches.
func (e *Engine) Network() *domain.Network { return e.network }

// MaxExpansions returns the effective expansion cap.
func (e *Engine) MaxExpansions() int { return e.maxExpansions }

// FindPath searches for the lowest-cost itinerary under q.Criterion.
// Unknown airports and invalid query fields are errors; an unreachable
// destination is reported as Result.Found == false.
func (e *Engine) FindPath(ctx context.Context, q Query) (Result, error) {
	origin, err := e.network.MustAirportIndex(q.Origin)
	if err != nil {
		return Result{}, fmt.Errorf("find path: %w", err)
	}
	goal, err := e.network.MustAirportIndex(q.Destination)
	if err != nil {
		return Result{}, fmt.Errorf("find path: %w", err)
	}
	if !q.Day.Valid() {
		return Result{}, fmt.Errorf("find path: day %d: %w", int(q.Day), domain.ErrUnknownWeekday)
	}
	if !domain.ValidClock(q.Departure) {
		return Result{}, fmt.Errorf("find path: departure %d: %w", q.Departure, domain.ErrMalformedTime)
	}
	if !q.Criterion.Valid() {
		return Result{}, fmt.Errorf("find path: criterion %d: %w", int(q.Criterion), domain.ErrUnknownCriterion)
	}

	r := &runner{
		engine:    e,
		criterion: q.Criterion,
		origin:    origin,
		goal:      goal,
		best:      make([]bestKnown, e.network.NumAirports()),
		closed:    make([]bool, e.network.NumAirports()),
		open:      NewQueue(64),
	}
	res, err := r.run(ctx, q.Day, q.Departure)
	if err != nil {
		return Result{}, fmt.Errorf("find path %s->%s: %w", q.Origin, q.Destination, err)
	}

	e.log.Debug("search finished",
		zap.String("origin", q.Origin),
		zap.String("destination", q.Destination),
		zap.Stringer("criterion", q.Criterion),
		zap.Bool("found", res.Found),
		zap.Int("expanded", res.Expanded),
		zap.Int("segments", len(res.Path)),
	)
	return res, nil
}

// bestKnown is the per-airport record of the cheapest arrival seen so far.
type bestKnown struct {
	set     bool
	cost    float64
	flight  int
	arrival int
	day     domain.Weekday
}

// runner holds the mutable state of a single search.
type runner struct {
	engine    *Engine
	criterion domain.Criterion
	origin    int
	goal      int

	best     []bestKnown
	closed   []bool
	open     *Queue
	expanded int
}

func (r *runner) run(ctx context.Context, day domain.Weekday, departure int) (Result, error) {
	n := r.engine.network
	r.best[r.origin] = bestKnown{set: true, cost: 0, flight: -1, arrival: departure, day: day}
	r.open.Push(Node{
		Airport: r.origin,
		Flight:  -1,
		G:       0,
		H:       r.heuristic(r.origin),
		Arrival: departure,
		Day:     day,
	})

	for r.open.Len() > 0 {
		if r.expanded >= r.engine.maxExpansions {
			r.engine.log.Warn("search expansion limit reached",
				zap.Int("limit", r.engine.maxExpansions),
				zap.String("origin", n.Airport(r.origin).Code),
				zap.String("destination", n.Airport(r.goal).Code),
			)
			break
		}
		if r.expanded%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}

		cur, err := r.open.Pop()
		if err != nil {
			return Result{}, err
		}
		r.expanded++

		if cur.Airport == r.goal {
			path, err := r.reconstruct()
			if err != nil {
				return Result{}, err
			}
			return Result{Path: path, Found: true, Cost: cur.G, Expanded: r.expanded}, nil
		}
		if r.closed[cur.Airport] {
			continue
		}
		r.closed[cur.Airport] = true
		r.relax(cur)
	}

	return Result{Found: false, Expanded: r.expanded}, nil
}

func (r *runner) relax(cur Node) {
	n := r.engine.network

	mct := 0
	if cur.Flight >= 0 {
		mct = n.MinConnectionAt(cur.Airport)
	}

	for _, fi := range n.Outgoing(cur.Airport) {
		to := n.Destination(fi)
		if r.closed[to] {
			continue
		}
		f := n.Flight(fi)
		if !ConnectionFeasible(cur.Arrival, cur.Day, f.Departure, f.Day, mct) {
			continue
		}

		wait := WaitTime(cur.Arrival, cur.Day, f.Departure, f.Day)
		g := cur.G + RouteCost(r.criterion, f, wait)
		if b := r.best[to]; b.set && g >= b.cost {
			continue
		}

		r.best[to] = bestKnown{
			set:     true,
			cost:    g,
			flight:  fi,
			arrival: f.Arrival,
			day:     f.ArrivalDay(),
		}
		if r.engine.trace != nil {
			r.engine.trace(Relaxation{Airport: to, Flight: fi, Cost: g})
		}
		r.open.Push(Node{
			Airport: to,
			Flight:  fi,
			G:       g,
			H:       r.heuristic(to),
			Arrival: f.Arrival,
			Day:     f.ArrivalDay(),
		})
	}
}

func (r *runner) heuristic(airport int) float64 {
	n := r.engine.network
	d := geo.Between(n.Airport(airport).Location, n.Airport(r.goal).Location)
	return Heuristic(r.criterion, d)
}

// reconstruct walks predecessor edges back from the goal. The walk is bounded
// by the airport count so a corrupted chain cannot loop forever.
func (r *runner) reconstruct() ([]int, error) {
	n := r.engine.network
	path := make([]int, 0, 8)

	at := r.goal
	for steps := 0; at != r.origin; steps++ {
		if steps >= n.NumAirports() {
			return nil, errBrokenPredecessors
		}
		b := r.best[at]
		if !b.set || b.flight < 0 {
			return nil, errBrokenPredecessors
		}
		path = append(path, b.flight)
		at = n.Origin(b.flight)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
