package signals

import (
	"context"
)

// Provider fetches fresh signals for one directed city pair in one cabin.
// Implementations are expected to be slow and unreliable; the Service wraps
// them with caching and resilience.
type Provider interface {
	// Fetch resolves the signal for a directed pair. Implementations return
	// ErrProviderUnavailable (possibly wrapped) when the upstream is down.
	Fetch(ctx context.Context, from, to, cabin string) (SegmentSignal, error)

	// Name identifies the provider in logs and stats.
	Name() string
}

// StaticProvider serves a fixed signal table. Used in tests and as the
// default when no live provider is configured.
type StaticProvider struct {
	Signals map[string]SegmentSignal
}

func (p *StaticProvider) Fetch(_ context.Context, from, to, _ string) (SegmentSignal, error) {
	if s, ok := p.Signals[from+"-"+to]; ok {
		return s, nil
	}
	return SegmentSignal{}, ErrNotFound
}

func (p *StaticProvider) Name() string { return "static" }
