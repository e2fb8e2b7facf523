package search

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldloop/worldloop/internal/itinerary"
	"github.com/worldloop/worldloop/internal/signals"
)

func routeItinerary(codes ...string) itinerary.Itinerary {
	segs := make([]itinerary.Segment, len(codes)-1)
	for i := range segs {
		segs[i] = itinerary.Segment{From: codes[i], To: codes[i+1], Carrier: "BA"}
	}
	return itinerary.New(itinerary.Ticket{Cabin: itinerary.Economy, Continents: 3, Origin: codes[0]}, segs)
}

func TestScoreAvailability(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())
	it := routeItinerary("LHR", "HKG", "JFK", "LHR")

	sig := signals.Resolved{Segments: map[string]signals.SegmentSignal{
		"LHR-HKG": {Status: signals.StatusAvailable},
		"HKG-JFK": {Status: signals.StatusLikely},
		// JFK-LHR unchecked, scores neutral.
	}}

	score := scorer.Score(Candidate{Itinerary: it}, sig)
	assert.InDelta(t, (100+70+50)/3.0, score.Availability, 0.01)
}

func TestScoreAvailabilityNeutralWithoutSignals(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())
	it := routeItinerary("LHR", "HKG", "JFK", "LHR")

	score := scorer.Score(Candidate{Itinerary: it}, signals.Resolved{})
	assert.InDelta(t, neutralScore, score.Availability, 0.01)
}

func TestScoreQualityPenalizesLongItineraries(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	// Fourteen flown segments, two past the comfortable count. Codes outside
	// reference data keep the distance term out of the picture.
	segs := make([]itinerary.Segment, 14)
	for i := range segs {
		segs[i] = itinerary.Segment{From: "XAA", To: "XBB", Carrier: "BA"}
	}
	it := itinerary.New(itinerary.Ticket{Origin: "XAA"}, segs)

	score := scorer.Score(Candidate{Itinerary: it}, signals.Resolved{})
	assert.InDelta(t, 90, score.Quality, 0.01)

	// Two segments on a low-surcharge carrier claw back six points.
	segs[0].Carrier = "JL"
	segs[1].Carrier = "AY"
	it = itinerary.New(itinerary.Ticket{Origin: "XAA"}, segs)
	score = scorer.Score(Candidate{Itinerary: it}, signals.Resolved{})
	assert.InDelta(t, 96, score.Quality, 0.01)
}

func TestScoreQualityClamped(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	it := routeItinerary("LHR", "HKG", "JFK", "LHR")
	for i := range it.Segments {
		it.Segments[i].Carrier = "JL"
	}

	score := scorer.Score(Candidate{Itinerary: it}, signals.Resolved{})
	assert.LessOrEqual(t, score.Quality, 100.0)
	assert.GreaterOrEqual(t, score.Quality, 0.0)
}

func TestRankRelativeCost(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	options := []Scored{
		{
			Itinerary: routeItinerary("LHR", "HKG", "JFK", "LHR"),
			Score:     Score{Availability: 50, Quality: 50},
			Signals:   signals.Resolved{TotalCostUSD: 300},
		},
		{
			Itinerary: routeItinerary("LHR", "NRT", "JFK", "LHR"),
			Score:     Score{Availability: 50, Quality: 50},
			Signals:   signals.Resolved{TotalCostUSD: 100},
		},
		{
			Itinerary: routeItinerary("LHR", "SIN", "JFK", "LHR"),
			Score:     Score{Availability: 50, Quality: 50},
			// Unpriced, scores neutral.
		},
	}

	ranked := scorer.Rank(options, "cost", 10)
	require.Len(t, ranked, 3)

	assert.InDelta(t, 100, ranked[0].Signals.TotalCostUSD, 0.01)
	assert.InDelta(t, 100, ranked[0].Score.Cost, 0.01)
	assert.Zero(t, ranked[1].Signals.TotalCostUSD)
	assert.InDelta(t, neutralScore, ranked[1].Score.Cost, 0.01)
	assert.InDelta(t, 300, ranked[2].Signals.TotalCostUSD, 0.01)
	assert.InDelta(t, 0, ranked[2].Score.Cost, 0.01)

	for i, o := range ranked {
		assert.Equal(t, i+1, o.Rank)
	}
}

func TestRankTieBreakOnElapsed(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	slow := routeItinerary("LHR", "HKG", "JFK", "LHR")
	slow.Segments[0].Depart = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	slow.Segments[2].Arrive = time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

	fast := routeItinerary("LHR", "HKG", "JFK", "LHR")
	fast.Segments[0].Depart = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fast.Segments[2].Arrive = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	options := []Scored{
		{Itinerary: slow, Score: Score{Availability: 50, Quality: 50}},
		{Itinerary: fast, Score: Score{Availability: 50, Quality: 50}},
	}

	ranked := scorer.Rank(options, "availability", 10)
	require.Len(t, ranked, 2)
	assert.Less(t, ranked[0].Itinerary.Elapsed(), ranked[1].Itinerary.Elapsed())
}

func TestRankTieBreakOnRouteKey(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	options := []Scored{
		{Itinerary: routeItinerary("LHR", "CAI", "JFK", "LHR"), Score: Score{Availability: 50, Quality: 50}},
		{Itinerary: routeItinerary("LHR", "AMM", "JFK", "LHR"), Score: Score{Availability: 50, Quality: 50}},
	}

	ranked := scorer.Rank(options, "availability", 10)
	require.Len(t, ranked, 2)
	assert.Equal(t, "AMM", ranked[0].Itinerary.Segments[0].To)
	assert.Equal(t, "CAI", ranked[1].Itinerary.Segments[0].To)
}

func TestRankTruncatesToTopK(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	var options []Scored
	for _, via := range []string{"AMM", "CAI", "HKG", "NRT", "SIN"} {
		options = append(options, Scored{
			Itinerary: routeItinerary("LHR", via, "JFK", "LHR"),
			Score:     Score{Availability: 50, Quality: 50},
		})
	}

	ranked := scorer.Rank(options, "availability", 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestRankUnknownPresetFallsBack(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	options := []Scored{
		{Itinerary: routeItinerary("LHR", "CAI", "JFK", "LHR"), Score: Score{Availability: 10, Quality: 50}},
		{Itinerary: routeItinerary("LHR", "AMM", "JFK", "LHR"), Score: Score{Availability: 90, Quality: 50}},
	}

	ranked := scorer.Rank(options, "bogus", 10)
	require.Len(t, ranked, 2)
	assert.InDelta(t, 90, ranked[0].Score.Availability, 0.01)
}
