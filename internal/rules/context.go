package rules

import (
	"github.com/worldloop/worldloop/internal/geo"
	"github.com/worldloop/worldloop/internal/itinerary"
)

// Options carries the two rule interpretations the source material treats
// inconsistently. The zero value matches the original desk guidance.
type Options struct {
	// ExemptFinalLegStopover, when set, excludes the stop immediately
	// preceding the closing return-to-origin segment from the origin
	// continent's stopover cap.
	ExemptFinalLegStopover bool

	// StopoverVisitsOnly, when set, counts a continent as visited only when
	// the itinerary stops over there (transits do not add continents).
	StopoverVisitsOnly bool
}

// Stop describes the ground time at the destination of one segment. The
// journey end at the origin is not a Stop.
type Stop struct {
	Index     int // index of the segment this stop follows
	City      string
	Continent geo.Continent
	Country   string
	Kind      itinerary.StopKind
}

// Context is the derived, read-only snapshot every rule consumes. It is
// built fresh per validation call and never shared or mutated afterwards,
// which keeps validation a pure function of the itinerary and the static
// reference tables.
type Context struct {
	Itin itinerary.Itinerary
	Opts Options

	Origin geo.Airport
	// From and To hold the resolved endpoints of each segment.
	From, To []geo.Airport
	Stops    []Stop

	TotalSegments int
	FlownSegments int

	// IntraFlown counts flown segments that stay within one continent;
	// intercontinental legs are governed by ICArrivals/ICDepartures.
	IntraFlown   map[geo.Continent]int
	ICArrivals   map[geo.Continent]int
	ICDepartures map[geo.Continent]int

	CityStopovers map[string]int

	// Visited is the ordered unique continent list, origin first.
	Visited []geo.Continent
	// TCSeq is the deduplicated tariff-conference transition sequence,
	// seeded with the conference the itinerary departs from.
	TCSeq []geo.TariffConference

	AtlanticFlown int
	PacificFlown  int
	// Transoceanic surface sectors by ocean, as segment indices.
	SurfaceAtlantic []int
	SurfacePacific  []int
	// Other cross-conference surface sectors (never permitted).
	SurfaceCrossTC []int

	// PairCounts counts occurrences of each directed airport pair.
	PairCounts map[string]int
	// SameCityChanges lists consecutive segment index pairs whose airport
	// change stays within one city (NRT arrival, HND departure).
	SameCityChanges [][2]int

	// EarlyReturns lists stops made in the origin country before the final
	// segment. USTransitExempt is set when the single early return is a
	// USA-origin transfer, which the fare rules tolerate.
	EarlyReturns    []int
	USTransitExempt bool

	FirstFlownCarrier string
	Carriers          map[string]bool

	StructureIssues []itinerary.StructureIssue
}

// BuildContext resolves reference data for every airport in the itinerary
// and precomputes the counters the rule catalogue consumes. An airport
// absent from reference data fails the whole build with
// geo.ErrUnknownAirport: validation never guesses a continent.
func BuildContext(it itinerary.Itinerary, opts Options) (*Context, error) {
	origin, err := geo.Lookup(it.Ticket.Origin)
	if err != nil {
		return nil, err
	}

	n := len(it.Segments)
	ctx := &Context{
		Itin:          it,
		Opts:          opts,
		Origin:        origin,
		From:          make([]geo.Airport, n),
		To:            make([]geo.Airport, n),
		TotalSegments: n,
		FlownSegments: it.FlownCount(),
		IntraFlown:    make(map[geo.Continent]int),
		ICArrivals:    make(map[geo.Continent]int),
		ICDepartures:  make(map[geo.Continent]int),
		CityStopovers: make(map[string]int),
		PairCounts:    make(map[string]int),
		Carriers:      make(map[string]bool),
		Visited:       []geo.Continent{origin.Continent},

		FirstFlownCarrier: it.FirstFlownCarrier(),
		StructureIssues:   it.Structure(),
	}

	for i, seg := range it.Segments {
		if ctx.From[i], err = geo.Lookup(seg.From); err != nil {
			return nil, err
		}
		if ctx.To[i], err = geo.Lookup(seg.To); err != nil {
			return nil, err
		}
		if seg.Carrier != "" {
			ctx.Carriers[seg.Carrier] = true
		}
		ctx.PairCounts[seg.From+">"+seg.To]++
	}

	// Intermediate stops with their classification.
	for i := 0; i < n-1; i++ {
		ctx.Stops = append(ctx.Stops, Stop{
			Index:     i,
			City:      geo.CityKey(it.Segments[i].To),
			Continent: ctx.To[i].Continent,
			Country:   ctx.To[i].Country,
			Kind:      it.StopAfter(i),
		})
	}

	for _, stop := range ctx.Stops {
		if stop.Kind == itinerary.Stopover {
			ctx.CityStopovers[stop.City]++
		}
		if stop.Country == origin.Country {
			ctx.EarlyReturns = append(ctx.EarlyReturns, stop.Index)
		}
	}
	ctx.USTransitExempt = origin.Country == "US" &&
		len(ctx.EarlyReturns) == 1 &&
		ctx.Stops[ctx.EarlyReturns[0]].Kind == itinerary.Transfer

	for i, seg := range it.Segments {
		from, to := ctx.From[i], ctx.To[i]

		if from.Continent == to.Continent {
			if seg.IsFlown() {
				ctx.IntraFlown[to.Continent]++
			}
		} else {
			ctx.ICDepartures[from.Continent]++
			ctx.ICArrivals[to.Continent]++
		}

		if from.Conference != to.Conference {
			if len(ctx.TCSeq) == 0 {
				ctx.TCSeq = append(ctx.TCSeq, from.Conference)
			}
			ctx.TCSeq = append(ctx.TCSeq, to.Conference)

			switch crossedOcean(from.Conference, to.Conference) {
			case atlantic:
				if seg.IsFlown() {
					ctx.AtlanticFlown++
				} else {
					ctx.SurfaceAtlantic = append(ctx.SurfaceAtlantic, i)
				}
			case pacific:
				if seg.IsFlown() {
					ctx.PacificFlown++
				} else {
					ctx.SurfacePacific = append(ctx.SurfacePacific, i)
				}
			case noOcean:
				if !seg.IsFlown() {
					ctx.SurfaceCrossTC = append(ctx.SurfaceCrossTC, i)
				}
			}
		}

		ctx.addVisit(to.Continent, i)

		if i+1 < n {
			arr, dep := seg.To, it.Segments[i+1].From
			if arr != dep && geo.SameCity(arr, dep) {
				ctx.SameCityChanges = append(ctx.SameCityChanges, [2]int{i, i + 1})
			}
		}
	}

	return ctx, nil
}

// addVisit appends a continent to the visited list unless already present.
// Under StopoverVisitsOnly a continent only counts when the itinerary
// stops over there (or it is the final destination).
func (c *Context) addVisit(cont geo.Continent, segIdx int) {
	if c.Opts.StopoverVisitsOnly && segIdx < len(c.Itin.Segments)-1 {
		if c.Itin.StopAfter(segIdx) != itinerary.Stopover {
			return
		}
	}
	for _, v := range c.Visited {
		if v == cont {
			return
		}
	}
	c.Visited = append(c.Visited, cont)
}

// OriginContinentStopovers counts stopovers in the origin continent,
// honoring the final-leg exemption option.
func (c *Context) OriginContinentStopovers() int {
	count := 0
	for _, stop := range c.Stops {
		if stop.Continent != c.Origin.Continent || stop.Kind != itinerary.Stopover {
			continue
		}
		if c.Opts.ExemptFinalLegStopover && stop.Index == len(c.Itin.Segments)-2 {
			continue
		}
		count++
	}
	return count
}

// ContinentSeq returns the visited-continent transition sequence in segment
// order with consecutive duplicates removed, seeded with the origin.
func (c *Context) ContinentSeq() []geo.Continent {
	seq := []geo.Continent{c.Origin.Continent}
	for i := range c.Itin.Segments {
		cont := c.To[i].Continent
		if cont != seq[len(seq)-1] {
			seq = append(seq, cont)
		}
	}
	return seq
}

type ocean int

const (
	noOcean ocean = iota
	atlantic
	pacific
)

// crossedOcean maps a tariff-conference transition to the ocean it crosses.
// TC2<->TC3 moves are overland and cross neither.
func crossedOcean(from, to geo.TariffConference) ocean {
	switch {
	case (from == geo.TC1 && to == geo.TC2) || (from == geo.TC2 && to == geo.TC1):
		return atlantic
	case (from == geo.TC1 && to == geo.TC3) || (from == geo.TC3 && to == geo.TC1):
		return pacific
	}
	return noOcean
}
