package search

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/worldloop/worldloop/internal/geo"
	"github.com/worldloop/worldloop/internal/itinerary"
	"github.com/worldloop/worldloop/internal/signals"
)

// lowSurchargeCarriers levy little or no fuel surcharge on award tickets, so
// routings over them are worth a premium.
var lowSurchargeCarriers = map[string]bool{
	"JL": true,
	"AY": true,
	"FJ": true,
	"MH": true,
}

const (
	// comfortableSegments is the flown-segment count beyond which an
	// itinerary starts losing quality points.
	comfortableSegments = 12

	// comfortableMiles is the total distance beyond which an itinerary
	// starts losing quality points.
	comfortableMiles = 24000.0

	// neutralScore stands in for any component with no signal to judge by.
	neutralScore = 50.0
)

type weights struct {
	availability float64
	cost         float64
	quality      float64
}

var weightPresets = map[string]weights{
	"availability": {availability: 0.50, cost: 0.30, quality: 0.20},
	"cost":         {availability: 0.20, cost: 0.60, quality: 0.20},
	"quality":      {availability: 0.15, cost: 0.25, quality: 0.60},
}

// Score is the component breakdown for one option. Every component sits on a
// 0..100 scale; Composite is the preset-weighted blend used for ranking.
type Score struct {
	Composite    float64 `json:"composite"`
	Availability float64 `json:"availability"`
	Cost         float64 `json:"cost"`
	Quality      float64 `json:"quality"`
}

// Scorer turns admitted candidates into ranked options. Availability and
// quality are absolute per candidate; cost is relative within one result
// set, so it is only filled in during Rank.
type Scorer struct {
	logger zerolog.Logger
}

// NewScorer creates a new scorer.
func NewScorer(logger zerolog.Logger) *Scorer {
	return &Scorer{logger: logger}
}

// Score computes the absolute components for one candidate. The cost
// component stays zero until Rank resolves it against the full set.
func (s *Scorer) Score(c Candidate, sig signals.Resolved) Score {
	return Score{
		Availability: s.availabilityScore(c.Itinerary, sig),
		Quality:      s.qualityScore(c.Itinerary),
	}
}

func (s *Scorer) availabilityScore(it itinerary.Itinerary, sig signals.Resolved) float64 {
	var total float64
	var flown int
	for _, seg := range it.Segments {
		if !seg.IsFlown() {
			continue
		}
		flown++
		switch sig.Lookup(seg.From, seg.To).Status {
		case signals.StatusAvailable:
			total += 100
		case signals.StatusLikely:
			total += 70
		case signals.StatusNotAvailable:
			total += 0
		default:
			total += neutralScore
		}
	}
	if flown == 0 {
		return neutralScore
	}
	return total / float64(flown)
}

func (s *Scorer) qualityScore(it itinerary.Itinerary) float64 {
	score := 100.0

	flown := 0
	for _, seg := range it.Segments {
		if !seg.IsFlown() {
			continue
		}
		flown++
		if lowSurchargeCarriers[seg.Carrier] {
			score += 3
		}
	}
	if flown > comfortableSegments {
		score -= 5 * float64(flown-comfortableSegments)
	}

	if miles := totalMiles(it); miles > comfortableMiles {
		score -= 2 * (miles - comfortableMiles) / 1000
	}

	return clamp(score, 0, 100)
}

// Rank resolves the relative cost component, blends composites under the
// requested preset and returns the top k options in rank order. Ties break
// on lower cash cost, then shorter elapsed time, then route key, so equal
// inputs always rank identically.
func (s *Scorer) Rank(options []Scored, rankBy string, topK int) []Scored {
	w, ok := weightPresets[rankBy]
	if !ok {
		s.logger.Warn().Str("rank_by", rankBy).Msg("unknown ranking preset, using availability")
		w = weightPresets["availability"]
	}

	lo, hi := costBounds(options)
	for i := range options {
		cost := neutralScore
		if c := options[i].Signals.TotalCostUSD; c > 0 && hi > lo {
			cost = 100 * (hi - c) / (hi - lo)
		}
		options[i].Score.Cost = cost
		options[i].Score.Composite = w.availability*options[i].Score.Availability +
			w.cost*cost +
			w.quality*options[i].Score.Quality
	}

	sort.Slice(options, func(i, j int) bool {
		a, b := options[i], options[j]
		if a.Score.Composite != b.Score.Composite {
			return a.Score.Composite > b.Score.Composite
		}
		if a.Signals.TotalCostUSD != b.Signals.TotalCostUSD {
			return a.Signals.TotalCostUSD < b.Signals.TotalCostUSD
		}
		if a.Itinerary.Elapsed() != b.Itinerary.Elapsed() {
			return a.Itinerary.Elapsed() < b.Itinerary.Elapsed()
		}
		return a.Itinerary.RouteKey() < b.Itinerary.RouteKey()
	})

	if topK > 0 && len(options) > topK {
		options = options[:topK]
	}
	for i := range options {
		options[i].Rank = i + 1
	}
	return options
}

// costBounds returns the min and max known cash cost across the set.
// Unpriced options (zero cost) are excluded; they score neutral.
func costBounds(options []Scored) (float64, float64) {
	lo, hi := 0.0, 0.0
	seen := false
	for _, o := range options {
		c := o.Signals.TotalCostUSD
		if c <= 0 {
			continue
		}
		if !seen {
			lo, hi = c, c
			seen = true
			continue
		}
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return lo, hi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// totalMiles sums great-circle distance across every segment, surface
// sectors included. Unknown airports contribute nothing; admission has
// already rejected them.
func totalMiles(it itinerary.Itinerary) float64 {
	var total float64
	for _, seg := range it.Segments {
		if d, err := geo.Distance(seg.From, seg.To); err == nil {
			total += d
		}
	}
	return total
}
