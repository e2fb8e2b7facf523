package search

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/worldloop/worldloop/internal/carrier"
	"github.com/worldloop/worldloop/internal/geo"
	"github.com/worldloop/worldloop/internal/itinerary"
	"github.com/worldloop/worldloop/internal/rules"
)

// errStop terminates exploration when the emit callback asks for no more.
var errStop = errors.New("emit requested stop")

// Budget is the shared exploration allowance across generator workers.
// Every popped candidate consumes one unit.
type Budget struct {
	remaining atomic.Int64
	used      atomic.Int64
}

// NewBudget creates a budget of n exploration steps.
func NewBudget(n int) *Budget {
	b := &Budget{}
	b.remaining.Store(int64(n))
	return b
}

// Take consumes one step. It reports false once the budget is exhausted.
func (b *Budget) Take() bool {
	if b.remaining.Add(-1) < 0 {
		return false
	}
	b.used.Add(1)
	return true
}

// Used returns the number of steps consumed.
func (b *Budget) Used() int { return int(b.used.Load()) }

// GeneratorConfig holds configuration for the route generator.
type GeneratorConfig struct {
	// Graph supplies servable direct-flight edges (required).
	Graph RouteGraph

	// Validator admits completed candidates. A default validator is built
	// when nil.
	Validator *rules.Validator

	// Logger for generator operations.
	Logger zerolog.Logger
}

// Generator explores the route graph depth-first with an explicit candidate
// stack, pruning branches that can never validate and admitting completed
// loops through the full rule catalogue. Output is exactly the subset of
// the search space the validator accepts.
type Generator struct {
	graph     RouteGraph
	validator *rules.Validator
	logger    zerolog.Logger
}

// NewGenerator creates a new route generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	validator := cfg.Validator
	if validator == nil {
		validator = rules.NewValidator(rules.Config{Logger: cfg.Logger})
	}
	return &Generator{
		graph:     cfg.Graph,
		validator: validator,
		logger:    cfg.Logger,
	}
}

// candidate is an in-progress partial path. Extension copies rather than
// mutates, so sibling branches never share state.
type candidate struct {
	steps    []step
	at       geo.Airport
	visited  []geo.Continent
	tc       geo.TariffConference
	rotation int // 0 until the first inter-conference move, then 1 (east) or 2 (west)
	atlantic int
	pacific  int
	// homeStops counts intermediate stops in the origin continent; they are
	// capped and pruning on them keeps the search out of large subtrees
	// that can never close.
	homeStops int
	intra     map[geo.Continent]int
}

type step struct {
	from, to, carrier string
}

var tcIndex = map[geo.TariffConference]int{geo.TC1: 0, geo.TC2: 1, geo.TC3: 2}

// tcStep returns the rotation distance between two conferences: 1 eastbound,
// 2 westbound.
func tcStep(from, to geo.TariffConference) int {
	return (tcIndex[to] - tcIndex[from] + 3) % 3
}

// Openings returns the admissible first flights out of the origin, in graph
// order. The orchestrator fans workers out over them; exploring each opening
// covers a disjoint slice of the search space.
func (g *Generator) Openings(ctx context.Context, spec Spec) ([]Edge, error) {
	spec = spec.withDefaults()
	origin, err := geo.Lookup(spec.Origin)
	if err != nil {
		return nil, err
	}

	edges, err := g.graph.Edges(ctx, spec.Origin)
	if err != nil {
		return nil, err
	}

	var out []Edge
	for _, e := range edges {
		if !g.carrierAllowed(spec, e.Carrier) || e.Carrier == carrier.FirstCarrierDisallowed {
			continue
		}
		dest, err := geo.Lookup(e.To)
		if err != nil {
			continue
		}
		// An opening back into the origin country can only produce an early
		// return.
		if dest.Country == origin.Country {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Generate runs the full search single-threaded: every opening explored in
// order under one shared budget. It returns the number of steps explored;
// ErrBudgetExhausted means the space was not covered and the caller should
// treat emitted results as partial.
func (g *Generator) Generate(ctx context.Context, spec Spec, emit func(Candidate) bool) (int, error) {
	spec = spec.withDefaults()

	openings, err := g.Openings(ctx, spec)
	if err != nil {
		return 0, err
	}

	budget := NewBudget(spec.MaxCandidates)
	for _, opening := range openings {
		if err := g.Explore(ctx, spec, opening, budget, emit); err != nil {
			if errors.Is(err, errStop) {
				return budget.Used(), nil
			}
			return budget.Used(), err
		}
	}
	return budget.Used(), nil
}

// Explore runs one worker's depth-first search seeded with a single opening
// flight. Cancellation is checked between extension steps; the shared
// budget is consumed per popped candidate.
func (g *Generator) Explore(ctx context.Context, spec Spec, opening Edge, budget *Budget, emit func(Candidate) bool) error {
	spec = spec.withDefaults()
	origin, err := geo.Lookup(spec.Origin)
	if err != nil {
		return err
	}

	root := &candidate{
		at:      origin,
		visited: []geo.Continent{origin.Continent},
		tc:      origin.Conference,
		intra:   map[geo.Continent]int{},
	}
	seed, ok := g.extend(spec, root, opening, origin)
	if !ok {
		return nil
	}

	stack := []*candidate{seed}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !budget.Take() {
			return ErrBudgetExhausted
		}

		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		edges, err := g.graph.Edges(ctx, c.at.Code)
		if err != nil {
			return err
		}

		// Push in reverse so the graph's first edge is explored first.
		for i := len(edges) - 1; i >= 0; i-- {
			e := edges[i]

			if geo.SameCity(e.To, spec.Origin) {
				done, ok := g.complete(ctx, spec, c, e, origin)
				if !ok {
					continue
				}
				if !emit(done) {
					return errStop
				}
				continue
			}

			if next, ok := g.extend(spec, c, e, origin); ok {
				stack = append(stack, next)
			}
		}
	}
	return nil
}

func (g *Generator) carrierAllowed(spec Spec, code string) bool {
	if !carrier.Eligible(code) {
		return false
	}
	if len(spec.Carriers) == 0 {
		return true
	}
	for _, c := range spec.Carriers {
		if c == code {
			return true
		}
	}
	return false
}

// extend applies the monotone pre-checks to one edge and returns the grown
// candidate. Checks here may only prune branches that can never validate;
// anything uncertain is left for full admission.
func (g *Generator) extend(spec Spec, c *candidate, e Edge, origin geo.Airport) (*candidate, bool) {
	if !g.carrierAllowed(spec, e.Carrier) {
		return nil, false
	}
	if len(c.steps) == 0 && e.Carrier == carrier.FirstCarrierDisallowed {
		return nil, false
	}

	dest, err := geo.Lookup(e.To)
	if err != nil {
		return nil, false
	}

	// Leave room for the closing segment.
	n := len(c.steps) + 1
	if n > rules.MaxSegments-1 {
		return nil, false
	}

	// Mid-journey arrivals into the origin country are early returns; only
	// the closing segment may come home.
	if dest.Country == origin.Country {
		return nil, false
	}

	// Directed pair used at most once.
	for _, s := range c.steps {
		if s.from == c.at.Code && s.to == e.To {
			return nil, false
		}
	}

	rotation, atlantic, pacific := c.rotation, c.atlantic, c.pacific
	if dest.Conference != c.tc {
		s := tcStep(c.tc, dest.Conference)
		if rotation == 0 {
			rotation = s
		} else if s != rotation {
			return nil, false
		}
		switch {
		case (c.tc == geo.TC1 && dest.Conference == geo.TC2) || (c.tc == geo.TC2 && dest.Conference == geo.TC1):
			atlantic++
		case (c.tc == geo.TC1 && dest.Conference == geo.TC3) || (c.tc == geo.TC3 && dest.Conference == geo.TC1):
			pacific++
		}
		if atlantic > 1 || pacific > 1 {
			return nil, false
		}
	}

	// Unscheduled stops all classify as stopovers, so the origin continent
	// cap is monotone and prunes the large home-continent subtrees early.
	homeStops := c.homeStops
	if dest.Continent == origin.Continent {
		homeStops++
		if homeStops > rules.OriginContinentCap {
			return nil, false
		}
	}

	intra := c.intra
	if dest.Continent == c.at.Continent {
		limit := rules.ContinentFlightCap
		if dest.Continent == geo.NorthAmerica {
			limit = rules.NorthAmericaCap
		}
		if intra[dest.Continent]+1 > limit {
			return nil, false
		}
		grown := make(map[geo.Continent]int, len(intra)+1)
		for k, v := range intra {
			grown[k] = v
		}
		grown[dest.Continent]++
		intra = grown
	}

	visited := c.visited
	if !containsContinent(visited, dest.Continent) {
		if len(visited)+1 > spec.Continents {
			return nil, false
		}
		visited = append(append(make([]geo.Continent, 0, len(visited)+1), visited...), dest.Continent)
	}

	steps := append(append(make([]step, 0, n), c.steps...), step{from: c.at.Code, to: e.To, carrier: e.Carrier})

	// Must-visit airports still owed have to fit in the remaining segments,
	// keeping one for the closing leg.
	if owed := g.unmetMustVisit(spec, steps); owed > rules.MaxSegments-n-1 {
		return nil, false
	}

	return &candidate{
		steps:     steps,
		at:        dest,
		visited:   visited,
		tc:        dest.Conference,
		rotation:  rotation,
		atlantic:  atlantic,
		pacific:   pacific,
		homeStops: homeStops,
		intra:     intra,
	}, true
}

func (g *Generator) unmetMustVisit(spec Spec, steps []step) int {
	owed := 0
	for _, want := range spec.MustVisit {
		found := false
		for _, s := range steps {
			if s.to == want || s.from == want {
				found = true
				break
			}
		}
		if !found {
			owed++
		}
	}
	return owed
}

// complete closes a candidate back at the origin and admits it through the
// full validator. Only zero-violation itineraries are emitted.
func (g *Generator) complete(ctx context.Context, spec Spec, c *candidate, e Edge, origin geo.Airport) (Candidate, bool) {
	if !g.carrierAllowed(spec, e.Carrier) {
		return Candidate{}, false
	}

	n := len(c.steps) + 1
	if n < rules.MinSegments || n > rules.MaxSegments {
		return Candidate{}, false
	}
	if len(c.visited) != spec.Continents {
		return Candidate{}, false
	}
	for _, s := range c.steps {
		if s.from == c.at.Code && s.to == e.To {
			return Candidate{}, false
		}
	}

	rotation := c.rotation
	if origin.Conference != c.tc {
		s := tcStep(c.tc, origin.Conference)
		if rotation == 0 {
			rotation = s
		} else if s != rotation {
			return Candidate{}, false
		}
	}

	steps := append(append(make([]step, 0, n), c.steps...), step{from: c.at.Code, to: e.To, carrier: e.Carrier})
	if g.unmetMustVisit(spec, steps) > 0 {
		return Candidate{}, false
	}

	segs := make([]itinerary.Segment, len(steps))
	for i, s := range steps {
		segs[i] = itinerary.Segment{From: s.from, To: s.to, Carrier: s.carrier}
	}
	it := itinerary.New(itinerary.Ticket{
		Cabin:      spec.Cabin,
		Continents: spec.Continents,
		Origin:     spec.Origin,
	}, segs)

	report, err := g.validator.Validate(ctx, it)
	if err != nil || !report.Valid {
		return Candidate{}, false
	}

	dir := Eastbound
	if rotation == 2 {
		dir = Westbound
	}

	return Candidate{Itinerary: it, Direction: dir, Report: report}, true
}

func containsContinent(list []geo.Continent, c geo.Continent) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}
