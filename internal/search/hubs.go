package search

import (
	"context"
	"sort"
)

// hubRoute is one bidirectional alliance trunk route.
type hubRoute struct {
	a, b    string
	carrier string
}

// hubRoutes is the static alliance trunk network the default graph serves:
// the major oneworld hubs on each continent plus the intercontinental
// routes connecting them. Curated, not exhaustive; a live schedule feed can
// replace it through the RouteGraph interface.
var hubRoutes = []hubRoute{
	// Europe / Middle East
	{"LHR", "MAD", "BA"},
	{"LHR", "HEL", "AY"},
	{"LHR", "CAI", "BA"},
	{"LHR", "AMM", "RJ"},
	{"MAD", "DOH", "QR"},
	{"CAI", "AMM", "RJ"},
	{"CAI", "DOH", "QR"},
	{"AMM", "DOH", "RJ"},

	// Africa
	{"LHR", "JNB", "BA"},
	{"DOH", "JNB", "QR"},
	{"CAI", "JNB", "QR"},

	// Asia
	{"LHR", "HKG", "CX"},
	{"LHR", "NRT", "JL"},
	{"HEL", "NRT", "AY"},
	{"DOH", "HKG", "QR"},
	{"DOH", "BKK", "QR"},
	{"HKG", "NRT", "CX"},
	{"HKG", "BKK", "CX"},
	{"HKG", "SIN", "CX"},
	{"NRT", "SIN", "JL"},
	{"SIN", "KUL", "MH"},

	// South West Pacific and its Asian gateways
	{"HKG", "SYD", "CX"},
	{"HKG", "MEL", "CX"},
	{"NRT", "SYD", "QF"},
	{"SIN", "SYD", "QF"},
	{"BKK", "SYD", "QF"},
	{"KUL", "SYD", "MH"},
	{"DOH", "SYD", "QR"},
	{"JNB", "SYD", "QF"},
	{"SYD", "MEL", "QF"},
	{"SYD", "AKL", "QF"},
	{"SYD", "NAN", "FJ"},
	{"AKL", "NAN", "FJ"},
	{"MEL", "AKL", "QF"},

	// Pacific crossings
	{"SYD", "LAX", "QF"},
	{"SYD", "DFW", "QF"},
	{"MEL", "LAX", "QF"},
	{"AKL", "LAX", "QF"},
	{"NAN", "LAX", "FJ"},
	{"NAN", "HNL", "FJ"},
	{"HKG", "LAX", "CX"},
	{"HKG", "SFO", "CX"},
	{"NRT", "LAX", "JL"},
	{"NRT", "DFW", "AA"},
	{"NRT", "ORD", "JL"},
	{"AKL", "SCL", "LA"},
	{"SYD", "SCL", "QF"},

	// North America
	{"LAX", "JFK", "AA"},
	{"LAX", "ORD", "AA"},
	{"LAX", "DFW", "AA"},
	{"LAX", "HNL", "AA"},
	{"LAX", "MEX", "AA"},
	{"SFO", "JFK", "AA"},
	{"SFO", "DFW", "AA"},
	{"JFK", "MIA", "AA"},
	{"JFK", "ORD", "AA"},
	{"ORD", "DFW", "AA"},
	{"DFW", "MIA", "AA"},
	{"MEX", "MIA", "AA"},

	// Atlantic crossings
	{"JFK", "LHR", "BA"},
	{"JFK", "MAD", "IB"},
	{"JFK", "HEL", "AY"},
	{"JFK", "AMM", "RJ"},
	{"ORD", "LHR", "BA"},
	{"DFW", "LHR", "BA"},
	{"DFW", "MAD", "IB"},
	{"MIA", "MAD", "AA"},
	{"MEX", "MAD", "IB"},
	{"GRU", "LHR", "BA"},
	{"GRU", "MAD", "IB"},
	{"EZE", "MAD", "IB"},
	{"LIM", "MAD", "IB"},

	// South America
	{"MIA", "GRU", "LA"},
	{"MIA", "SCL", "LA"},
	{"MIA", "LIM", "LA"},
	{"MIA", "EZE", "AA"},
	{"GRU", "SCL", "LA"},
	{"GRU", "EZE", "LA"},
	{"SCL", "EZE", "LA"},
	{"SCL", "LIM", "LA"},
}

// HubGraph is the static RouteGraph over the alliance trunk network.
type HubGraph struct {
	edges map[string][]Edge
}

// NewHubGraph builds the default hub graph. Edges are sorted per airport so
// exploration order, and therefore budget-limited results, are stable.
func NewHubGraph() *HubGraph {
	edges := make(map[string][]Edge)
	for _, r := range hubRoutes {
		edges[r.a] = append(edges[r.a], Edge{To: r.b, Carrier: r.carrier})
		edges[r.b] = append(edges[r.b], Edge{To: r.a, Carrier: r.carrier})
	}
	for code := range edges {
		es := edges[code]
		sort.Slice(es, func(i, j int) bool {
			if es[i].To != es[j].To {
				return es[i].To < es[j].To
			}
			return es[i].Carrier < es[j].Carrier
		})
	}
	return &HubGraph{edges: edges}
}

// Edges returns the direct flights out of an airport. The returned slice is
// shared and must not be mutated.
func (g *HubGraph) Edges(_ context.Context, from string) ([]Edge, error) {
	return g.edges[from], nil
}

// Airports returns every airport in the network, sorted.
func (g *HubGraph) Airports() []string {
	out := make([]string, 0, len(g.edges))
	for code := range g.edges {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// CityPairs returns every directed pair served by the network, sorted. The
// worker uses it to warm the signal cache.
func (g *HubGraph) CityPairs() [][2]string {
	var out [][2]string
	for from, es := range g.edges {
		for _, e := range es {
			out = append(out, [2]string{from, e.To})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// Ensure HubGraph implements RouteGraph.
var _ RouteGraph = (*HubGraph)(nil)
