package signals

import (
	"context"
)

// Repository is the persistent signal cache shared across API and worker
// instances. It stores one row per (directed pair, cabin).
type Repository interface {
	// Get retrieves the stored signal for a directed pair and cabin.
	// Returns ErrNotFound when no row exists.
	Get(ctx context.Context, from, to, cabin string) (SegmentSignal, error)

	// Put creates or replaces the stored signal for its directed pair.
	Put(ctx context.Context, cabin string, sig SegmentSignal) error

	// Prune removes signals checked more than the retention window ago and
	// returns the number of rows removed.
	Prune(ctx context.Context, olderThanDays int) (int, error)
}
