package rules

import (
	"fmt"
	"sort"

	"github.com/worldloop/worldloop/internal/geo"
)

// checkIntercontinentalLimit caps intercontinental arrivals and departures
// at one per continent, with the documented exceptions: North America
// always allows two, Asia allows two when it bridges the South West Pacific
// and Europe/Middle East, Europe/Middle East allows two when Africa is on
// the itinerary, and a USA-origin transfer-only transit tolerates one
// extra North American pair.
func checkIntercontinentalLimit(c *Context) []Result {
	conts := make(map[geo.Continent]bool)
	for cont := range c.ICArrivals {
		conts[cont] = true
	}
	for cont := range c.ICDepartures {
		conts[cont] = true
	}
	ordered := make([]geo.Continent, 0, len(conts))
	for cont := range conts {
		ordered = append(ordered, cont)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	var out []Result
	for _, cont := range ordered {
		limit := c.intercontinentalLimit(cont)
		if arr := c.ICArrivals[cont]; arr > limit {
			out = append(out, violation("intercontinental_limit",
				fmt.Sprintf("%s: %d intercontinental arrivals exceeds the limit of %d", cont, arr, limit)))
		}
		if dep := c.ICDepartures[cont]; dep > limit {
			out = append(out, violation("intercontinental_limit",
				fmt.Sprintf("%s: %d intercontinental departures exceeds the limit of %d", cont, dep, limit)))
		}
	}
	return out
}

func (c *Context) intercontinentalLimit(cont geo.Continent) int {
	visited := make(map[geo.Continent]bool, len(c.Visited))
	for _, v := range c.Visited {
		visited[v] = true
	}

	switch cont {
	case geo.NorthAmerica:
		if c.USTransitExempt {
			return 3
		}
		return 2
	case geo.Asia:
		if visited[geo.SouthWestPacific] && visited[geo.EuropeMiddleEast] {
			return 2
		}
	case geo.EuropeMiddleEast:
		if visited[geo.Africa] {
			return 2
		}
	}
	return 1
}
