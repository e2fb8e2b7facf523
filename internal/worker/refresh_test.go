package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldloop/worldloop/internal/search"
	"github.com/worldloop/worldloop/internal/signals"
	"github.com/worldloop/worldloop/internal/worker"
)

// newTestSignals returns a signals service backed by a static provider that
// only knows the given directed pairs.
func newTestSignals(pairs ...worker.Pair) *signals.Service {
	table := make(map[string]signals.SegmentSignal, len(pairs))
	for _, p := range pairs {
		table[p.From+"-"+p.To] = signals.SegmentSignal{
			From:   p.From,
			To:     p.To,
			Status: signals.StatusAvailable,
		}
	}
	return signals.NewService(signals.ServiceConfig{
		Provider: &signals.StaticProvider{Signals: table},
		Logger:   zerolog.Nop(),
	})
}

func TestDefaultRefreshConfig(t *testing.T) {
	cfg := worker.DefaultRefreshConfig()

	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"economy", "business"}, cfg.Cabins)
	assert.NotEmpty(t, cfg.Pairs)
}

func TestNetworkPairs(t *testing.T) {
	pairs := worker.NetworkPairs(search.NewHubGraph())

	require.NotEmpty(t, pairs)

	// Every route is directed both ways.
	seen := make(map[worker.Pair]bool, len(pairs))
	for _, p := range pairs {
		seen[p] = true
	}
	for _, p := range pairs {
		assert.True(t, seen[worker.Pair{From: p.To, To: p.From}],
			"missing reverse of %s-%s", p.From, p.To)
	}

	assert.True(t, seen[worker.Pair{From: "LHR", To: "JFK"}])
}

func TestRefreshConfig_TotalLookups(t *testing.T) {
	cfg := worker.RefreshConfig{
		Pairs: []worker.Pair{
			{From: "LHR", To: "JFK"},
			{From: "JFK", To: "LHR"},
			{From: "LHR", To: "HKG"},
		},
		Cabins: []string{"economy", "business"},
	}

	assert.Equal(t, 6, cfg.TotalLookups())
}

func TestRefreshJob_Run(t *testing.T) {
	pairs := []worker.Pair{
		{From: "LHR", To: "JFK"},
		{From: "JFK", To: "LHR"},
	}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			Pairs:       pairs,
			Cabins:      []string{"economy"},
			Concurrency: 2,
			Timeout:     time.Second,
		},
		Logger:  zerolog.Nop(),
		Signals: newTestSignals(pairs...),
	})

	result := job.Run(context.Background())

	require.NotNil(t, result)
	assert.Equal(t, 2, result.TotalLookups)
	assert.Equal(t, 2, result.Successful)
	assert.Zero(t, result.Failed)
	assert.Empty(t, result.Errors)
	assert.Greater(t, result.Duration, time.Duration(0))
}

func TestRefreshJob_Run_CollectsFailures(t *testing.T) {
	// The provider only knows one of the two configured pairs.
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			Pairs: []worker.Pair{
				{From: "LHR", To: "JFK"},
				{From: "XXX", To: "YYY"},
			},
			Cabins:      []string{"economy"},
			Concurrency: 1,
			Timeout:     time.Second,
		},
		Logger:  zerolog.Nop(),
		Signals: newTestSignals(worker.Pair{From: "LHR", To: "JFK"}),
	})

	result := job.Run(context.Background())

	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, worker.Pair{From: "XXX", To: "YYY"}, result.Errors[0].Pair)
	assert.Equal(t, "economy", result.Errors[0].Cabin)
	assert.NotEmpty(t, result.Errors[0].Error)
}

func TestRefreshJob_Run_AllCabins(t *testing.T) {
	pair := worker.Pair{From: "LHR", To: "JFK"}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			Pairs:       []worker.Pair{pair},
			Cabins:      []string{"economy", "business", "first"},
			Concurrency: 1,
			Timeout:     time.Second,
		},
		Logger:  zerolog.Nop(),
		Signals: newTestSignals(pair),
	})

	result := job.Run(context.Background())

	assert.Equal(t, 3, result.TotalLookups)
	assert.Equal(t, 3, result.Successful)
}

func TestRefreshJob_Run_ContextCancellation(t *testing.T) {
	pairs := make([]worker.Pair, 0, 100)
	for i := 0; i < 100; i++ {
		pairs = append(pairs, worker.Pair{From: "LHR", To: "JFK"})
	}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			Pairs:       pairs,
			Cabins:      []string{"economy"},
			Concurrency: 1,
			Timeout:     100 * time.Millisecond,
		},
		Logger:  zerolog.Nop(),
		Signals: newTestSignals(worker.Pair{From: "LHR", To: "JFK"}),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := job.Run(ctx)

	// Completes without processing every pair.
	assert.NotNil(t, result)
}

func TestRefreshJob_GetMetrics(t *testing.T) {
	pair := worker.Pair{From: "LHR", To: "JFK"}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			Pairs:       []worker.Pair{pair},
			Cabins:      []string{"economy"},
			Concurrency: 1,
			Timeout:     time.Second,
		},
		Logger:  zerolog.Nop(),
		Signals: newTestSignals(pair),
	})

	_ = job.Run(context.Background())

	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.TotalRuns)
	assert.Equal(t, int64(1), metrics.SuccessfulLookups)
	assert.Zero(t, metrics.FailedLookups)
	assert.NotZero(t, metrics.LastRunAt)
	assert.Greater(t, metrics.LastRunDuration, time.Duration(0))
}

func TestRefreshJob_MetricsSnapshot(t *testing.T) {
	pair := worker.Pair{From: "LHR", To: "JFK"}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			Pairs:       []worker.Pair{pair},
			Cabins:      []string{"economy"},
			Concurrency: 1,
			Timeout:     time.Second,
		},
		Logger:  zerolog.Nop(),
		Signals: newTestSignals(pair),
	})

	_ = job.Run(context.Background())

	snapshot := job.MetricsSnapshot()

	assert.Contains(t, snapshot, "total_runs")
	assert.Contains(t, snapshot, "successful_lookups")
	assert.Contains(t, snapshot, "failed_lookups")
	assert.Contains(t, snapshot, "last_run_at")
	assert.Contains(t, snapshot, "last_run_duration")
}

func TestNewRefreshJob_DefaultConfig(t *testing.T) {
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:  zerolog.Nop(),
		Signals: newTestSignals(),
	})

	metrics := job.GetMetrics()
	assert.Equal(t, int64(0), metrics.TotalRuns)
}
