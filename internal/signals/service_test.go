package signals

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldloop/worldloop/internal/itinerary"
)

// flakyProvider serves a fixed signal and can be switched to fail.
type flakyProvider struct {
	signal  SegmentSignal
	fail    atomic.Bool
	fetches atomic.Int32
}

func (p *flakyProvider) Fetch(_ context.Context, from, to, _ string) (SegmentSignal, error) {
	p.fetches.Add(1)
	if p.fail.Load() {
		return SegmentSignal{}, ErrProviderUnavailable
	}
	sig := p.signal
	sig.From, sig.To = from, to
	return sig, nil
}

func (p *flakyProvider) Name() string { return "flaky" }

func TestServiceCachesSignals(t *testing.T) {
	provider := &flakyProvider{signal: SegmentSignal{Status: StatusAvailable, CostUSD: 120}}
	svc := NewService(ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	first, err := svc.Get(context.Background(), "LHR", "HKG", "business")
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, first.Status)

	second, err := svc.Get(context.Background(), "LHR", "HKG", "business")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), provider.fetches.Load(), "second lookup should hit the cache")
}

func TestServiceStaleIfError(t *testing.T) {
	provider := &flakyProvider{signal: SegmentSignal{Status: StatusLikely}}
	svc := NewService(ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
		CacheTTL: time.Nanosecond, // force immediate expiry
	})

	_, err := svc.Get(context.Background(), "SYD", "LAX", "economy")
	require.NoError(t, err)

	provider.fail.Store(true)
	time.Sleep(time.Millisecond)

	stale, err := svc.Get(context.Background(), "SYD", "LAX", "economy")
	require.NoError(t, err, "expired entry should be served stale on provider error")
	assert.Equal(t, StatusLikely, stale.Status)
}

func TestServiceReadsThroughRepository(t *testing.T) {
	repo := NewMemoryRepository()
	stored := SegmentSignal{From: "JFK", To: "LHR", Status: StatusAvailable, CheckedAt: time.Now()}
	require.NoError(t, repo.Put(context.Background(), "first", stored))

	provider := &flakyProvider{}
	provider.fail.Store(true)
	svc := NewService(ServiceConfig{Provider: provider, Repository: repo, Logger: zerolog.Nop()})

	sig, err := svc.Get(context.Background(), "JFK", "LHR", "first")
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, sig.Status)
	assert.Equal(t, int32(0), provider.fetches.Load(), "fresh repository row should satisfy the lookup")
}

func TestResolveDegradesToUnknown(t *testing.T) {
	provider := &flakyProvider{}
	provider.fail.Store(true)
	svc := NewService(ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	it := itinerary.New(itinerary.Ticket{Cabin: itinerary.Economy, Continents: 3, Origin: "LHR"}, []itinerary.Segment{
		{From: "LHR", To: "HKG", Carrier: "CX"},
		{From: "HKG", To: "JFK", Carrier: "CX"},
		{From: "JFK", To: "LHR", Carrier: "BA"},
	})

	resolved := svc.Resolve(context.Background(), it)
	require.Len(t, resolved.Segments, 3)
	for _, sig := range resolved.Segments {
		assert.Equal(t, StatusUnknown, sig.Status)
	}
	assert.Zero(t, resolved.TotalCostUSD)
}

func TestResolveSkipsSurfaceSectors(t *testing.T) {
	provider := &flakyProvider{signal: SegmentSignal{Status: StatusAvailable, CostUSD: 100}}
	svc := NewService(ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	it := itinerary.New(itinerary.Ticket{Cabin: itinerary.Economy, Continents: 3, Origin: "SYD"}, []itinerary.Segment{
		{From: "SYD", To: "PPT", Carrier: "QF"},
		{From: "PPT", To: "IPC", Kind: itinerary.Surface},
		{From: "IPC", To: "SCL", Carrier: "LA"},
	})

	resolved := svc.Resolve(context.Background(), it)
	assert.Len(t, resolved.Segments, 2)
	assert.NotContains(t, resolved.Segments, "PPT-IPC")
	assert.InDelta(t, 200, resolved.TotalCostUSD, 0.01)
}

func TestMemoryRepositoryPrune(t *testing.T) {
	repo := NewMemoryRepository()
	old := SegmentSignal{From: "AAA", To: "BBB", Status: StatusUnknown, CheckedAt: time.Now().AddDate(0, 0, -30)}
	fresh := SegmentSignal{From: "CCC", To: "DDD", Status: StatusUnknown, CheckedAt: time.Now()}
	require.NoError(t, repo.Put(context.Background(), "economy", old))
	require.NoError(t, repo.Put(context.Background(), "economy", fresh))

	removed, err := repo.Prune(context.Background(), 14)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = repo.Get(context.Background(), "AAA", "BBB", "economy")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Get(context.Background(), "CCC", "DDD", "economy")
	assert.NoError(t, err)
}
