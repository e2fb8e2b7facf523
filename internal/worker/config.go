// Package worker provides background job processing for worldloop.
package worker

import (
	"time"

	"github.com/worldloop/worldloop/internal/search"
)

// Pair is a directed city pair to warm in the signal cache.
type Pair struct {
	From string
	To   string
}

// RefreshConfig holds configuration for the signal refresh job.
type RefreshConfig struct {
	// Pairs are the city pairs to refresh. If empty, the full hub network
	// is used.
	Pairs []Pair

	// Cabins are the cabin classes to refresh per pair.
	// Default: economy and business.
	Cabins []string

	// Concurrency is the number of concurrent refresh operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each pair refresh.
	// Default: 30 seconds
	Timeout time.Duration
}

// DefaultRefreshConfig returns the default refresh configuration covering
// every directed pair in the hub network.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Pairs:       NetworkPairs(search.NewHubGraph()),
		Cabins:      []string{"economy", "business"},
		Concurrency: 3,
		Timeout:     30 * time.Second,
	}
}

// NetworkPairs returns every directed pair served by a route graph.
func NetworkPairs(g *search.HubGraph) []Pair {
	pairs := g.CityPairs()
	out := make([]Pair, len(pairs))
	for i, p := range pairs {
		out[i] = Pair{From: p[0], To: p[1]}
	}
	return out
}

// TotalLookups returns the number of pair/cabin lookups a run performs.
func (c RefreshConfig) TotalLookups() int {
	return len(c.Pairs) * len(c.Cabins)
}
