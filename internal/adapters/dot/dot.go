package dot

import (
	"fmt"
	"sort"
	"strconv"

	"flight-route-service/internal/domain"

	"github.com/awalterschulze/gographviz"
)

const (
	graphName      = "network"
	colorRoute     = "#7f8c8d"
	colorHighlight = "#c0392b"
)

type routeKey struct{ from, to string }

type routeSummary struct {
	flights     int
	cheapest    float64
	highlighted bool
}

// Render draws the network as a Graphviz digraph with one edge per served
// airport pair. Flights listed in highlight (indexes into n) are drawn in red.
func Render(n *domain.Network, highlight []int) (string, error) {
	onPath := make(map[int]bool, len(highlight))
	for _, fi := range highlight {
		if fi < 0 || fi >= n.NumFlights() {
			return "", fmt.Errorf("render graph: flight index %d out of range", fi)
		}
		onPath[fi] = true
	}

	graph := gographviz.NewGraph()
	if err := graph.SetName(graphName); err != nil {
		return "", fmt.Errorf("render graph: %w", err)
	}
	if err := graph.SetDir(true); err != nil {
		return "", fmt.Errorf("render graph: %w", err)
	}
	graph.AddAttr(graphName, "rankdir", "LR")
	graph.AddAttr(graphName, "nodesep", "0.5")
	graph.AddAttr(graphName, "ranksep", "0.8")

	for _, a := range n.Airports() {
		err := graph.AddNode(graphName, a.Code, map[string]string{
			"label":    quote(a.Code),
			"tooltip":  quote(a.Name),
			"shape":    "circle",
			"fontsize": "12",
		})
		if err != nil {
			return "", fmt.Errorf("render graph: add airport %s: %w", a.Code, err)
		}
	}

	routes := make(map[routeKey]*routeSummary)
	for i, f := range n.Flights() {
		if !f.Available {
			continue
		}
		k := routeKey{f.From, f.To}
		s, ok := routes[k]
		if !ok {
			s = &routeSummary{cheapest: f.Cost}
			routes[k] = s
		}
		s.flights++
		if f.Cost < s.cheapest {
			s.cheapest = f.Cost
		}
		if onPath[i] {
			s.highlighted = true
		}
	}

	keys := make([]routeKey, 0, len(routes))
	for k := range routes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		return keys[i].to < keys[j].to
	})

	for _, k := range keys {
		s := routes[k]
		attrs := map[string]string{
			"label": quote(fmt.Sprintf("%dx from %.2f", s.flights, s.cheapest)),
			"color": quote(colorRoute),
		}
		if s.highlighted {
			attrs["color"] = quote(colorHighlight)
			attrs["penwidth"] = "3"
		}
		if err := graph.AddEdge(k.from, k.to, true, attrs); err != nil {
			return "", fmt.Errorf("render graph: add route %s->%s: %w", k.from, k.to, err)
		}
	}

	return graph.String(), nil
}

func quote(s string) string { return strconv.Quote(s) }
