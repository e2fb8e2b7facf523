// Package signals resolves the external per-segment inputs the scorer
// consumes: estimated cost and award seat availability. Providers are
// injected; the package adds caching and resilience so lookups never block
// or abort a search.
package signals

import (
	"errors"
	"time"
)

// Sentinel errors for the signals layer.
var (
	// ErrProviderUnavailable indicates the upstream provider could not be
	// reached and no usable cached value existed.
	ErrProviderUnavailable = errors.New("signal provider unavailable")
	// ErrNotFound indicates no cached signal exists for the requested pair.
	ErrNotFound = errors.New("signal not found")
)

// AvailabilityStatus describes award seat availability on one segment.
type AvailabilityStatus string

const (
	StatusAvailable    AvailabilityStatus = "available"
	StatusLikely       AvailabilityStatus = "likely"
	StatusNotAvailable AvailabilityStatus = "not_available"
	// StatusUnknown is the neutral default: provider failures and unchecked
	// segments both resolve to it and score neither up nor down.
	StatusUnknown AvailabilityStatus = "unknown"
)

// SegmentSignal is the resolved external input for one directed city pair.
type SegmentSignal struct {
	From      string             `json:"from"`
	To        string             `json:"to"`
	Carrier   string             `json:"carrier,omitempty"`
	Status    AvailabilityStatus `json:"status"`
	CostUSD   float64            `json:"cost_usd,omitempty"`
	CheckedAt time.Time          `json:"checked_at,omitempty"`
}

// Key returns the cache key for the signal's directed pair.
func (s SegmentSignal) Key() string { return s.From + "-" + s.To }

// Resolved is the full signal set for one itinerary, handed to the scorer
// as already-resolved values.
type Resolved struct {
	// Segments is keyed by "FROM-TO".
	Segments map[string]SegmentSignal `json:"segments"`
	// TotalCostUSD sums the per-segment estimates; zero when unknown.
	TotalCostUSD float64 `json:"total_cost_usd"`
}

// Lookup returns the signal for a directed pair, or a neutral unknown.
func (r Resolved) Lookup(from, to string) SegmentSignal {
	if s, ok := r.Segments[from+"-"+to]; ok {
		return s
	}
	return SegmentSignal{From: from, To: to, Status: StatusUnknown}
}
