package search

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldloop/worldloop/internal/geo"
	"github.com/worldloop/worldloop/internal/itinerary"
	"github.com/worldloop/worldloop/internal/signals"
)

// availableResolver marks every flown segment available at a flat cost.
type availableResolver struct{}

func (availableResolver) Resolve(_ context.Context, it itinerary.Itinerary) signals.Resolved {
	res := signals.Resolved{Segments: make(map[string]signals.SegmentSignal), TotalCostUSD: 1000}
	for _, seg := range it.Segments {
		if !seg.IsFlown() {
			continue
		}
		res.Segments[seg.Route()] = signals.SegmentSignal{
			From:   seg.From,
			To:     seg.To,
			Status: signals.StatusAvailable,
		}
	}
	return res
}

func newTestOrchestrator(t *testing.T, resolver SignalResolver) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(OrchestratorConfig{
		Generator: newTestGenerator(),
		Signals:   resolver,
		Workers:   4,
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)
	return o
}

func TestSearchReturnsRankedOptions(t *testing.T) {
	o := newTestOrchestrator(t, nil)

	result, err := o.Search(context.Background(), Spec{
		Origin:        "LHR",
		Continents:    3,
		MaxCandidates: 20000,
		TopK:          5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Options)
	assert.LessOrEqual(t, len(result.Options), 5)
	assert.GreaterOrEqual(t, result.Generated, len(result.Options))
	assert.Positive(t, result.Explored)

	for i, opt := range result.Options {
		assert.Equal(t, i+1, opt.Rank)
		segs := opt.Itinerary.Segments
		assert.Equal(t, "LHR", segs[0].From)
		assert.True(t, geo.SameCity(segs[len(segs)-1].To, "LHR"))
	}
}

func TestSearchDedupesRoutes(t *testing.T) {
	o := newTestOrchestrator(t, nil)

	result, err := o.Search(context.Background(), Spec{
		Origin:        "LHR",
		Continents:    3,
		MaxCandidates: 20000,
		TopK:          50,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Options)

	seen := make(map[string]bool)
	for _, opt := range result.Options {
		key := opt.Itinerary.RouteKey()
		assert.False(t, seen[key], "duplicate route %s", key)
		seen[key] = true
	}
}

func TestSearchResolvesSignals(t *testing.T) {
	o := newTestOrchestrator(t, availableResolver{})

	result, err := o.Search(context.Background(), Spec{
		Origin:        "LHR",
		Continents:    3,
		MaxCandidates: 20000,
		TopK:          3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Options)

	for _, opt := range result.Options {
		assert.InDelta(t, 100, opt.Score.Availability, 0.01)
		assert.InDelta(t, 1000, opt.Signals.TotalCostUSD, 0.01)
	}
}

func TestSearchPartialOnBudgetExhaustion(t *testing.T) {
	o := newTestOrchestrator(t, nil)

	result, err := o.Search(context.Background(), Spec{
		Origin:        "LHR",
		Continents:    3,
		MaxCandidates: 5,
	})
	require.NoError(t, err)
	assert.True(t, result.Partial)
	assert.LessOrEqual(t, result.Explored, 5)
}

func TestSearchPartialOnDeadline(t *testing.T) {
	o := newTestOrchestrator(t, nil)

	result, err := o.Search(context.Background(), Spec{
		Origin:     "LHR",
		Continents: 3,
		Timeout:    time.Nanosecond,
	})
	require.NoError(t, err)
	assert.True(t, result.Partial)
}

func TestSearchParentCancelled(t *testing.T) {
	o := newTestOrchestrator(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Search(ctx, Spec{Origin: "LHR", Continents: 3})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSearchUnknownOrigin(t *testing.T) {
	o := newTestOrchestrator(t, nil)

	_, err := o.Search(context.Background(), Spec{Origin: "ZZZ", Continents: 3})
	require.ErrorIs(t, err, geo.ErrUnknownAirport)
}

func TestNewOrchestratorRequiresGenerator(t *testing.T) {
	_, err := NewOrchestrator(OrchestratorConfig{Logger: zerolog.Nop()})
	require.Error(t, err)
}
