// Package itinerary defines the immutable data model shared by the
// validator, generator and scorer: tickets, segments and complete
// itineraries, plus the stopover/transfer classification derived from
// scheduled times.
package itinerary

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/worldloop/worldloop/internal/geo"
)

// Sentinel errors for itinerary construction.
var (
	// ErrBrokenChain indicates consecutive segments that do not connect.
	ErrBrokenChain = errors.New("segment chain does not connect")
	// ErrMissingField indicates a segment with a required field absent.
	ErrMissingField = errors.New("segment is missing a required field")
)

// SegmentKind distinguishes flown segments from overland surface sectors.
type SegmentKind string

const (
	Flown   SegmentKind = "flown"
	Surface SegmentKind = "surface"
)

// CabinClass is the booked cabin for the whole ticket.
type CabinClass string

const (
	Economy  CabinClass = "economy"
	Business CabinClass = "business"
	First    CabinClass = "first"
)

// StopKind classifies the ground time at a segment's destination.
type StopKind string

const (
	// Stopover is a gap exceeding 24 hours before the next departure.
	Stopover StopKind = "stopover"
	// Transfer is a gap of 24 hours or less.
	Transfer StopKind = "transfer"
)

// transferWindow is the maximum ground time still counted as a transfer.
const transferWindow = 24 * time.Hour

// Segment is one leg of an itinerary. Surface sectors have no carrier. The
// scheduled times may be zero for unscheduled (skeleton) itineraries; an
// unscheduled stop classifies as a stopover.
type Segment struct {
	From    string
	To      string
	Carrier string
	Kind    SegmentKind
	Depart  time.Time
	Arrive  time.Time
}

// IsFlown reports whether the segment is an actual flight.
func (s Segment) IsFlown() bool { return s.Kind != Surface }

// Route returns the "FROM-TO" display form of the segment.
func (s Segment) Route() string { return s.From + "-" + s.To }

// Ticket is the fare-product metadata an itinerary is priced against.
type Ticket struct {
	Cabin      CabinClass
	Continents int    // required distinct continents, 3..6
	Origin     string // IATA code of the start/end airport
}

// Itinerary is an ordered sequence of segments under one ticket. It is
// treated as immutable once constructed: the generator rebuilds rather than
// mutates.
type Itinerary struct {
	Ticket   Ticket
	Segments []Segment
}

// New normalizes airport and carrier codes to upper case and returns the
// assembled itinerary. Structural problems are reported by Structure, not
// here, so that a malformed itinerary can still be validated as a whole.
func New(t Ticket, segments []Segment) Itinerary {
	t.Origin = strings.ToUpper(t.Origin)
	out := make([]Segment, len(segments))
	for i, s := range segments {
		s.From = strings.ToUpper(s.From)
		s.To = strings.ToUpper(s.To)
		s.Carrier = strings.ToUpper(s.Carrier)
		if s.Kind == "" {
			s.Kind = Flown
		}
		out[i] = s
	}
	return Itinerary{Ticket: t, Segments: out}
}

// StructureIssue describes one structural defect found by Structure.
type StructureIssue struct {
	Index  int // segment index, -1 for itinerary-level issues
	Reason string
	Err    error
}

// Structure checks the invariants that make an itinerary well-formed:
// every segment has both endpoints, flown segments have a carrier, and
// consecutive segments chain (same-city airport changes are a legal chain).
// It returns all defects rather than stopping at the first, so the
// validator can surface them alongside rule findings.
func (it Itinerary) Structure() []StructureIssue {
	var issues []StructureIssue

	if len(it.Segments) == 0 {
		issues = append(issues, StructureIssue{Index: -1, Reason: "itinerary has no segments", Err: ErrMissingField})
		return issues
	}
	if it.Ticket.Origin == "" {
		issues = append(issues, StructureIssue{Index: -1, Reason: "ticket has no origin airport", Err: ErrMissingField})
	}

	for i, s := range it.Segments {
		if s.From == "" || s.To == "" {
			issues = append(issues, StructureIssue{
				Index:  i,
				Reason: fmt.Sprintf("segment %d is missing an endpoint", i+1),
				Err:    ErrMissingField,
			})
			continue
		}
		if s.From == s.To {
			issues = append(issues, StructureIssue{
				Index:  i,
				Reason: fmt.Sprintf("segment %d has identical endpoints %s", i+1, s.From),
				Err:    ErrBrokenChain,
			})
		}
		if s.IsFlown() && s.Carrier == "" {
			issues = append(issues, StructureIssue{
				Index:  i,
				Reason: fmt.Sprintf("flown segment %d %s has no carrier", i+1, s.Route()),
				Err:    ErrMissingField,
			})
		}
		if i > 0 {
			prev := it.Segments[i-1]
			if prev.To != "" && prev.To != s.From && !geo.SameCity(prev.To, s.From) {
				issues = append(issues, StructureIssue{
					Index:  i,
					Reason: fmt.Sprintf("segment %d departs %s but segment %d arrived %s", i+1, s.From, i, prev.To),
					Err:    ErrBrokenChain,
				})
			}
		}
	}

	return issues
}

// StopAfter classifies the ground time at the destination of segment i.
// The stop after the final segment is the journey end and has no
// classification; callers must not ask for it.
func (it Itinerary) StopAfter(i int) StopKind {
	next := it.Segments[i+1]
	cur := it.Segments[i]
	if cur.Arrive.IsZero() || next.Depart.IsZero() {
		// Unscheduled skeletons assume the traveler stops.
		return Stopover
	}
	if next.Depart.Sub(cur.Arrive) > transferWindow {
		return Stopover
	}
	return Transfer
}

// StopoverCount returns the number of intermediate stopovers.
func (it Itinerary) StopoverCount() int {
	n := 0
	for i := 0; i < len(it.Segments)-1; i++ {
		if it.StopAfter(i) == Stopover {
			n++
		}
	}
	return n
}

// FlownCount returns the number of flown segments.
func (it Itinerary) FlownCount() int {
	n := 0
	for _, s := range it.Segments {
		if s.IsFlown() {
			n++
		}
	}
	return n
}

// FirstFlownCarrier returns the marketing carrier of the first flown
// segment, or empty when there is none.
func (it Itinerary) FirstFlownCarrier() string {
	for _, s := range it.Segments {
		if s.IsFlown() && s.Carrier != "" {
			return s.Carrier
		}
	}
	return ""
}

// Elapsed returns the total scheduled trip time, or zero when the itinerary
// is unscheduled.
func (it Itinerary) Elapsed() time.Duration {
	if len(it.Segments) == 0 {
		return 0
	}
	first := it.Segments[0].Depart
	last := it.Segments[len(it.Segments)-1].Arrive
	if first.IsZero() || last.IsZero() {
		return 0
	}
	return last.Sub(first)
}

// RouteKey returns a canonical key for the ordered segment sequence, used
// for duplicate suppression across generator workers.
func (it Itinerary) RouteKey() string {
	var b strings.Builder
	for i, s := range it.Segments {
		if i > 0 {
			b.WriteByte('>')
		}
		b.WriteString(s.From)
		b.WriteByte('-')
		b.WriteString(s.To)
		if s.Kind == Surface {
			b.WriteString("/sfc")
		}
	}
	return b.String()
}
