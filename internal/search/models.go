// Package search generates, scores and ranks valid round-the-world
// itineraries. The generator runs a pruned depth-first exploration over an
// injected route graph, admits candidates through the full rule validator,
// and the orchestrator fans workers out over disjoint opening flights.
package search

import (
	"errors"
	"strings"
	"time"

	"github.com/worldloop/worldloop/internal/itinerary"
	"github.com/worldloop/worldloop/internal/rules"
	"github.com/worldloop/worldloop/internal/signals"
)

// ErrBudgetExhausted signals that the exploration budget ran out before the
// search space was covered. It marks a result partial, never failed.
var ErrBudgetExhausted = errors.New("search budget exhausted")

// Direction is the rotation a candidate travels around the globe.
type Direction string

const (
	Eastbound Direction = "eastbound"
	Westbound Direction = "westbound"
)

// Spec is a search request.
type Spec struct {
	// Origin is the IATA code the journey starts and ends at.
	Origin string

	// Continents is the ticket's required distinct continent count (3..6).
	Continents int

	// Cabin for the whole ticket.
	Cabin itinerary.CabinClass

	// MustVisit airports the itinerary has to pass through, if any.
	MustVisit []string

	// Carriers restricts marketing carriers to this allow-list when set.
	Carriers []string

	// MaxCandidates bounds the number of extension steps explored
	// (default 50000).
	MaxCandidates int

	// Timeout bounds wall-clock search time (default 10s).
	Timeout time.Duration

	// TopK is the number of ranked options to return (default 10).
	TopK int

	// RankBy selects the scoring weight preset: availability (default),
	// cost or quality.
	RankBy string
}

// withDefaults normalizes codes and fills zero values.
func (s Spec) withDefaults() Spec {
	s.Origin = strings.ToUpper(s.Origin)
	for i, c := range s.MustVisit {
		s.MustVisit[i] = strings.ToUpper(c)
	}
	for i, c := range s.Carriers {
		s.Carriers[i] = strings.ToUpper(c)
	}
	if s.Cabin == "" {
		s.Cabin = itinerary.Economy
	}
	if s.MaxCandidates == 0 {
		s.MaxCandidates = 50000
	}
	if s.Timeout == 0 {
		s.Timeout = 10 * time.Second
	}
	if s.TopK == 0 {
		s.TopK = 10
	}
	if s.RankBy == "" {
		s.RankBy = "availability"
	}
	return s
}

// Candidate is a complete, validator-admitted itinerary from the generator.
type Candidate struct {
	Itinerary itinerary.Itinerary
	Direction Direction
	// Report is the admitting validation report; it may carry warnings.
	Report rules.Report
}

// Scored is a ranked search option.
type Scored struct {
	Itinerary itinerary.Itinerary `json:"itinerary"`
	Direction Direction           `json:"direction"`
	Score     Score               `json:"score"`
	Signals   signals.Resolved    `json:"signals"`
	Warnings  []rules.Result      `json:"warnings,omitempty"`
	Rank      int                 `json:"rank"`
}

// Result is a completed search.
type Result struct {
	Options []Scored `json:"options"`
	// Generated counts validator-admitted candidates before ranking.
	Generated int `json:"generated"`
	// Explored counts extension steps consumed across all workers.
	Explored int `json:"explored"`
	// Partial is set when the budget or deadline cut exploration short.
	Partial bool `json:"partial"`
}
