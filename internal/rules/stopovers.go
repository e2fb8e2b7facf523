package rules

import (
	"fmt"
	"sort"

	"github.com/worldloop/worldloop/internal/geo"
	"github.com/worldloop/worldloop/internal/itinerary"
)

func checkMinimumStopovers(c *Context) []Result {
	count := 0
	for _, stop := range c.Stops {
		if stop.Kind == itinerary.Stopover {
			count++
		}
	}
	if count < MinStopovers {
		return []Result{violation("stopovers",
			fmt.Sprintf("only %d stopovers, minimum is %d", count, MinStopovers))}
	}
	return nil
}

func checkOriginContinentStopovers(c *Context) []Result {
	count := c.OriginContinentStopovers()
	switch {
	case count > OriginContinentCap:
		var segs []int
		for _, stop := range c.Stops {
			if stop.Continent == c.Origin.Continent && stop.Kind == itinerary.Stopover {
				segs = append(segs, stop.Index)
			}
		}
		return []Result{violation("stopovers",
			fmt.Sprintf("%d stopovers in origin continent %s, limit is %d", count, c.Origin.Continent, OriginContinentCap), segs...)}
	case count == OriginContinentCap:
		// Sitting exactly at the cap: legal, but a recode of any transfer
		// downstream would tip it over. Surface for operator review.
		return []Result{warning("stopovers",
			fmt.Sprintf("origin continent %s is at its stopover cap of %d", c.Origin.Continent, OriginContinentCap))}
	}
	return nil
}

// checkOriginCountryStopovers enforces at most one stopover per direction of
// travel in the country of origin. A stop is outbound until the itinerary
// makes its last intercontinental arrival back into the origin continent,
// inbound from there on.
func checkOriginCountryStopovers(c *Context) []Result {
	inboundFrom := len(c.Itin.Segments)
	for i := range c.Itin.Segments {
		if c.To[i].Continent == c.Origin.Continent && c.From[i].Continent != c.Origin.Continent {
			inboundFrom = i
		}
	}

	outbound, inbound := 0, 0
	var segs []int
	for _, stop := range c.Stops {
		if stop.Country != c.Origin.Country || stop.Kind != itinerary.Stopover {
			continue
		}
		segs = append(segs, stop.Index)
		if stop.Index >= inboundFrom {
			inbound++
		} else {
			outbound++
		}
	}

	var out []Result
	if outbound > OriginCountryPerLegs {
		out = append(out, violation("stopovers",
			fmt.Sprintf("%d outbound stopovers in origin country %s, limit is %d per direction", outbound, c.Origin.Country, OriginCountryPerLegs), segs...))
	}
	if inbound > OriginCountryPerLegs {
		out = append(out, violation("stopovers",
			fmt.Sprintf("%d inbound stopovers in origin country %s, limit is %d per direction", inbound, c.Origin.Country, OriginCountryPerLegs), segs...))
	}
	return out
}

func checkCityStopovers(c *Context) []Result {
	cities := make([]string, 0, len(c.CityStopovers))
	for city := range c.CityStopovers {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	var out []Result
	for _, city := range cities {
		limit := CityStopoverCap
		if cityInContinent(c, city, geo.NorthAmerica) {
			limit = NorthAmericaCityCap
		}
		if count := c.CityStopovers[city]; count > limit {
			out = append(out, violation("stopovers",
				fmt.Sprintf("%d stopovers at %s, limit is %d", count, city, limit)))
		}
	}
	return out
}

func cityInContinent(c *Context, city string, cont geo.Continent) bool {
	for _, stop := range c.Stops {
		if stop.City == city {
			return stop.Continent == cont
		}
	}
	return false
}
