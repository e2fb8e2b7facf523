package rules

import (
	"fmt"
	"sort"

	"github.com/worldloop/worldloop/internal/geo"
)

// checkHemisphereRevisit enforces the continent revisit limits. Each tariff
// conference pairs a northern and a southern continent: a northern
// continent may be entered twice only when the itinerary dips into its
// southern counterpart in between; southern continents may be entered only
// once. The origin continent's mandatory return leg does not count as a
// revisit.
func checkHemisphereRevisit(c *Context) []Result {
	seq := c.ContinentSeq()
	if len(seq) < 2 {
		return nil
	}

	// Drop the closing return to the origin continent.
	if seq[len(seq)-1] == c.Origin.Continent {
		seq = seq[:len(seq)-1]
	}

	visits := make(map[geo.Continent][]int)
	for i, cont := range seq {
		visits[cont] = append(visits[cont], i)
	}

	var out []Result
	for _, cont := range orderedContinents(visits) {
		positions := visits[cont]
		count := len(positions)

		if !cont.Northern() {
			if count > 1 {
				out = append(out, violation("hemisphere_revisit",
					fmt.Sprintf("%s visited %d times, southern continents may be visited once", cont, count)))
			}
			continue
		}

		switch {
		case count > 2:
			out = append(out, violation("hemisphere_revisit",
				fmt.Sprintf("%s visited %d times, northern continents may be visited at most twice", cont, count)))
		case count == 2:
			if !visitedBetween(seq, positions[0], positions[1], cont.Counterpart()) {
				out = append(out, violation("hemisphere_revisit",
					fmt.Sprintf("%s revisited without travelling via its southern counterpart %s", cont, cont.Counterpart())))
			}
		}
	}
	return out
}

func visitedBetween(seq []geo.Continent, from, to int, want geo.Continent) bool {
	for i := from + 1; i < to; i++ {
		if seq[i] == want {
			return true
		}
	}
	return false
}

func orderedContinents(m map[geo.Continent][]int) []geo.Continent {
	out := make([]geo.Continent, 0, len(m))
	for cont := range m {
		out = append(out, cont)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
