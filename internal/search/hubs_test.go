package search

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldloop/worldloop/internal/carrier"
	"github.com/worldloop/worldloop/internal/geo"
)

func TestHubGraphReferenceConsistency(t *testing.T) {
	g := NewHubGraph()

	for _, code := range g.Airports() {
		_, err := geo.Lookup(code)
		require.NoError(t, err, "airport %s missing from reference data", code)

		edges, err := g.Edges(context.Background(), code)
		require.NoError(t, err)
		for _, e := range edges {
			_, err := geo.Lookup(e.To)
			require.NoError(t, err, "destination %s missing from reference data", e.To)
			assert.True(t, carrier.Eligible(e.Carrier), "carrier %s on %s-%s is not bookable", e.Carrier, code, e.To)
		}
	}
}

func TestHubGraphBidirectional(t *testing.T) {
	g := NewHubGraph()

	for _, from := range g.Airports() {
		edges, err := g.Edges(context.Background(), from)
		require.NoError(t, err)
		for _, e := range edges {
			back, err := g.Edges(context.Background(), e.To)
			require.NoError(t, err)
			found := false
			for _, r := range back {
				if r.To == from && r.Carrier == e.Carrier {
					found = true
					break
				}
			}
			assert.True(t, found, "no return edge for %s-%s", from, e.To)
		}
	}
}

func TestHubGraphEdgesSorted(t *testing.T) {
	g := NewHubGraph()

	for _, code := range g.Airports() {
		edges, err := g.Edges(context.Background(), code)
		require.NoError(t, err)
		sorted := sort.SliceIsSorted(edges, func(i, j int) bool {
			if edges[i].To != edges[j].To {
				return edges[i].To < edges[j].To
			}
			return edges[i].Carrier < edges[j].Carrier
		})
		assert.True(t, sorted, "edges out of %s are unsorted", code)
	}
}

func TestHubGraphUnknownAirport(t *testing.T) {
	g := NewHubGraph()
	edges, err := g.Edges(context.Background(), "ZZZ")
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestHubGraphCityPairs(t *testing.T) {
	g := NewHubGraph()

	pairs := g.CityPairs()
	require.NotEmpty(t, pairs)
	assert.Len(t, pairs, 2*len(hubRoutes))

	sorted := sort.SliceIsSorted(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	assert.True(t, sorted)
}
