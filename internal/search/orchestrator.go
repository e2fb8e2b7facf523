package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/worldloop/worldloop/internal/itinerary"
	"github.com/worldloop/worldloop/internal/signals"
)

const instrumentationName = "github.com/worldloop/worldloop/internal/search"

// SignalResolver supplies availability and cost signals for a complete
// itinerary. It must degrade rather than fail.
type SignalResolver interface {
	Resolve(ctx context.Context, it itinerary.Itinerary) signals.Resolved
}

// neutralResolver serves empty signals when no provider is wired; every
// segment then scores neutral.
type neutralResolver struct{}

func (neutralResolver) Resolve(context.Context, itinerary.Itinerary) signals.Resolved {
	return signals.Resolved{}
}

// OrchestratorConfig holds configuration for the search orchestrator.
type OrchestratorConfig struct {
	// Generator explores the route graph (required).
	Generator *Generator

	// Scorer ranks admitted candidates. A default scorer is built when nil.
	Scorer *Scorer

	// Signals resolves availability and cost. Neutral when nil.
	Signals SignalResolver

	// Workers caps the exploration goroutines (default 4, clamped to the
	// number of opening flights).
	Workers int

	// Logger for search operations.
	Logger zerolog.Logger
}

// Orchestrator runs the end-to-end search: fan workers out over disjoint
// opening flights, merge and dedupe their candidates, resolve signals and
// rank the survivors.
type Orchestrator struct {
	gen     *Generator
	scorer  *Scorer
	signals SignalResolver
	workers int
	logger  zerolog.Logger

	tracer       trace.Tracer
	searchTotal  metric.Int64Counter
	exploredStep metric.Int64Counter
}

// NewOrchestrator creates a new search orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) (*Orchestrator, error) {
	if cfg.Generator == nil {
		return nil, errors.New("search: generator is required")
	}
	scorer := cfg.Scorer
	if scorer == nil {
		scorer = NewScorer(cfg.Logger)
	}
	resolver := cfg.Signals
	if resolver == nil {
		resolver = neutralResolver{}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}

	meter := otel.Meter(instrumentationName)
	searchTotal, err := meter.Int64Counter(
		"search.requests.total",
		metric.WithDescription("Total number of itinerary searches"),
		metric.WithUnit("{search}"),
	)
	if err != nil {
		return nil, err
	}
	exploredStep, err := meter.Int64Counter(
		"search.explored.total",
		metric.WithDescription("Total exploration steps consumed across searches"),
		metric.WithUnit("{step}"),
	)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		gen:          cfg.Generator,
		scorer:       scorer,
		signals:      resolver,
		workers:      workers,
		logger:       cfg.Logger,
		tracer:       otel.Tracer(instrumentationName),
		searchTotal:  searchTotal,
		exploredStep: exploredStep,
	}, nil
}

// Search generates, scores and ranks options for one request. Budget or
// deadline exhaustion marks the result partial; only parent cancellation or
// a bad request fails the search.
func (o *Orchestrator) Search(ctx context.Context, spec Spec) (Result, error) {
	spec = spec.withDefaults()

	ctx, span := o.tracer.Start(ctx, "search.Search", trace.WithAttributes(
		attribute.String("search.origin", spec.Origin),
		attribute.Int("search.continents", spec.Continents),
		attribute.String("search.rank_by", spec.RankBy),
	))
	defer span.End()

	searchCtx, cancel := context.WithTimeout(ctx, spec.Timeout)
	defer cancel()

	openings, err := o.gen.Openings(searchCtx, spec)
	if err != nil {
		return Result{}, err
	}

	budget := NewBudget(spec.MaxCandidates)
	candidates, partial := o.explore(searchCtx, spec, openings, budget)

	// Parent cancellation fails the search. Our own deadline only marks it
	// partial.
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if searchCtx.Err() != nil {
		partial = true
	}

	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		sig := o.signals.Resolve(ctx, c.Itinerary)
		scored = append(scored, Scored{
			Itinerary: c.Itinerary,
			Direction: c.Direction,
			Score:     o.scorer.Score(c, sig),
			Signals:   sig,
			Warnings:  c.Report.Warnings(),
		})
	}
	options := o.scorer.Rank(scored, spec.RankBy, spec.TopK)

	result := Result{
		Options:   options,
		Generated: len(candidates),
		Explored:  budget.Used(),
		Partial:   partial,
	}

	o.searchTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("partial", result.Partial)))
	o.exploredStep.Add(ctx, int64(result.Explored))
	span.SetAttributes(
		attribute.Int("search.generated", result.Generated),
		attribute.Int("search.explored", result.Explored),
		attribute.Bool("search.partial", result.Partial),
	)
	o.logger.Debug().
		Str("origin", spec.Origin).
		Int("openings", len(openings)).
		Int("generated", result.Generated).
		Int("explored", result.Explored).
		Int("ranked", len(result.Options)).
		Bool("partial", result.Partial).
		Msg("search complete")

	return result, nil
}

// explore fans workers out over the opening flights and merges their
// candidates, keeping the first itinerary seen per route key.
func (o *Orchestrator) explore(ctx context.Context, spec Spec, openings []Edge, budget *Budget) ([]Candidate, bool) {
	workers := o.workers
	if workers > len(openings) {
		workers = len(openings)
	}
	if workers == 0 {
		return nil, false
	}

	jobs := make(chan Edge)
	found := make(chan Candidate, workers)
	var partial atomic.Bool

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for opening := range jobs {
				err := o.gen.Explore(ctx, spec, opening, budget, func(c Candidate) bool {
					select {
					case found <- c:
						return true
					case <-ctx.Done():
						return false
					}
				})
				switch {
				case err == nil || errors.Is(err, errStop):
				case errors.Is(err, ErrBudgetExhausted), errors.Is(err, context.DeadlineExceeded):
					partial.Store(true)
				case errors.Is(err, context.Canceled):
					return
				default:
					o.logger.Warn().Err(err).Str("opening", opening.To).Msg("exploration failed")
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, opening := range openings {
			select {
			case jobs <- opening:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(found)
	}()

	seen := make(map[string]bool)
	var out []Candidate
	for c := range found {
		key := c.Itinerary.RouteKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out, partial.Load()
}
