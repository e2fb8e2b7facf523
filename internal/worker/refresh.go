package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/worldloop/worldloop/internal/signals"
)

// RefreshJob warms the signal cache for the hub network so interactive
// searches score against fresh availability instead of paying the provider
// latency themselves.
type RefreshJob struct {
	config  RefreshConfig
	logger  zerolog.Logger
	signals *signals.Service

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalRuns         int64
	SuccessfulLookups int64
	FailedLookups     int64

	// Timings
	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config  RefreshConfig
	Logger  zerolog.Logger
	Signals *signals.Service
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if len(config.Pairs) == 0 {
		config = DefaultRefreshConfig()
	}
	if len(config.Cabins) == 0 {
		config.Cabins = []string{"economy", "business"}
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &RefreshJob{
		config:  config,
		logger:  cfg.Logger,
		signals: cfg.Signals,
		metrics: &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh run.
type RefreshResult struct {
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalLookups int
	Successful   int
	Failed       int
	Errors       []RefreshError
}

// RefreshError represents an error during refresh.
type RefreshError struct {
	Pair  Pair
	Cabin string
	Error string
}

// Run executes the refresh job for all configured pairs.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()
	result := &RefreshResult{
		StartTime:    startTime,
		TotalLookups: j.config.TotalLookups(),
	}

	j.logger.Info().
		Int("total_lookups", result.TotalLookups).
		Int("concurrency", j.config.Concurrency).
		Msg("starting signal refresh job")

	pairsChan := make(chan Pair, len(j.config.Pairs))
	resultsChan := make(chan pairResult, len(j.config.Pairs))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, pairsChan, resultsChan)
		}()
	}

	for _, p := range j.config.Pairs {
		pairsChan <- p
	}
	close(pairsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for pr := range resultsChan {
		result.Successful += pr.successful
		result.Failed += pr.failed
		result.Errors = append(result.Errors, pr.errors...)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("signal refresh job completed")

	return result
}

type pairResult struct {
	pair       Pair
	successful int
	failed     int
	errors     []RefreshError
}

func (j *RefreshJob) refreshWorker(ctx context.Context, pairs <-chan Pair, results chan<- pairResult) {
	for pair := range pairs {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.refreshPair(ctx, pair)
		}
	}
}

func (j *RefreshJob) refreshPair(ctx context.Context, pair Pair) pairResult {
	result := pairResult{pair: pair}

	pairCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	for _, cabin := range j.config.Cabins {
		if _, err := j.signals.Get(pairCtx, pair.From, pair.To, cabin); err != nil {
			result.failed++
			result.errors = append(result.errors, RefreshError{
				Pair:  pair,
				Cabin: cabin,
				Error: err.Error(),
			})
			continue
		}
		result.successful++
	}

	return result
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.SuccessfulLookups += int64(result.Successful)
	j.metrics.FailedLookups += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRuns:         j.metrics.TotalRuns,
		SuccessfulLookups: j.metrics.SuccessfulLookups,
		FailedLookups:     j.metrics.FailedLookups,
		LastRunAt:         j.metrics.LastRunAt,
		LastRunDuration:   j.metrics.LastRunDuration,
		TotalDuration:     j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":         m.TotalRuns,
		"successful_lookups": m.SuccessfulLookups,
		"failed_lookups":     m.FailedLookups,
		"last_run_at":        m.LastRunAt,
		"last_run_duration":  m.LastRunDuration.String(),
		"total_duration":     m.TotalDuration.String(),
	}
}
