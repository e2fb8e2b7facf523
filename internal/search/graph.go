package search

import (
	"context"
)

// Edge is one servable direct flight out of an airport.
type Edge struct {
	To      string
	Carrier string
}

// RouteGraph provides the reachable direct-flight edges from an airport.
// Implementations must be safe for concurrent use; the generator calls
// Edges from every worker.
type RouteGraph interface {
	Edges(ctx context.Context, from string) ([]Edge, error)
}
