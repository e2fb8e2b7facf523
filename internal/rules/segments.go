package rules

import (
	"fmt"
	"sort"

	"github.com/worldloop/worldloop/internal/geo"
)

// Segment bounds and per-continent caps.
const (
	MinSegments = 3
	MaxSegments = 16

	// ContinentFlightCap limits intra-continental flown segments per
	// continent; North America gets the higher cap.
	ContinentFlightCap   = 4
	NorthAmericaCap      = 6
	CityStopoverCap      = 4
	NorthAmericaCityCap  = 5
	MinStopovers         = 2
	OriginContinentCap   = 2
	OriginCountryPerLegs = 1
)

func checkSegmentCount(c *Context) []Result {
	switch {
	case c.TotalSegments < MinSegments:
		return []Result{violation("segment_count",
			fmt.Sprintf("only %d segments, minimum is %d", c.TotalSegments, MinSegments))}
	case c.TotalSegments > MaxSegments:
		return []Result{violation("segment_count",
			fmt.Sprintf("%d segments exceeds maximum of %d including surface sectors", c.TotalSegments, MaxSegments))}
	}
	return nil
}

func continentCap(cont geo.Continent) int {
	if cont == geo.NorthAmerica {
		return NorthAmericaCap
	}
	return ContinentFlightCap
}

func checkContinentSegmentCap(c *Context) []Result {
	conts := make([]geo.Continent, 0, len(c.IntraFlown))
	for cont := range c.IntraFlown {
		conts = append(conts, cont)
	}
	sort.Slice(conts, func(i, j int) bool { return conts[i] < conts[j] })

	var out []Result
	for _, cont := range conts {
		if count, limit := c.IntraFlown[cont], continentCap(cont); count > limit {
			out = append(out, violation("continent_segment_cap",
				fmt.Sprintf("%s: %d flown segments exceeds the limit of %d", cont, count, limit)))
		}
	}
	return out
}

func checkRepeatedCityPair(c *Context) []Result {
	pairs := make([]string, 0, len(c.PairCounts))
	for pair := range c.PairCounts {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)

	var out []Result
	for _, pair := range pairs {
		if n := c.PairCounts[pair]; n > 1 {
			var segs []int
			for i, seg := range c.Itin.Segments {
				if seg.From+">"+seg.To == pair {
					segs = append(segs, i)
				}
			}
			out = append(out, violation("repeated_city_pair",
				fmt.Sprintf("directed pair %s appears %d times, only once is permitted", pair, n), segs...))
		}
	}
	return out
}
