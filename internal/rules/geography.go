package rules

import (
	"fmt"

	"github.com/worldloop/worldloop/internal/geo"
)

// checkHawaiiAlaska enforces the intra-North-America backtracking
// exceptions: Hawaii is one-way only (no return after leaving), and Alaska
// allows at most one flown arrival and one flown departure.
func checkHawaiiAlaska(c *Context) []Result {
	var out []Result

	leftHawaii := false
	visitedHawaii := false
	for i, seg := range c.Itin.Segments {
		if !seg.IsFlown() {
			continue
		}
		switch {
		case geo.IsHawaii(seg.To):
			if leftHawaii {
				out = append(out, violation("hawaii_alaska",
					"returning to Hawaii after leaving it is not permitted", i))
			}
			visitedHawaii = true
		case visitedHawaii && geo.IsHawaii(seg.From):
			leftHawaii = true
		}
	}

	toAlaska, fromAlaska := 0, 0
	for _, seg := range c.Itin.Segments {
		if !seg.IsFlown() {
			continue
		}
		if geo.IsAlaska(seg.To) {
			toAlaska++
		}
		if geo.IsAlaska(seg.From) {
			fromAlaska++
		}
	}
	if toAlaska > 1 {
		out = append(out, violation("hawaii_alaska",
			fmt.Sprintf("%d flown arrivals into Alaska, only 1 is permitted", toAlaska)))
	}
	if fromAlaska > 1 {
		out = append(out, violation("hawaii_alaska",
			fmt.Sprintf("%d flown departures from Alaska, only 1 is permitted", fromAlaska)))
	}

	return out
}

// checkUSTranscontinental caps nonstop flights between the enumerated US
// east and west groupings at one.
func checkUSTranscontinental(c *Context) []Result {
	count := 0
	var segs []int
	for i, seg := range c.Itin.Segments {
		if !seg.IsFlown() {
			continue
		}
		eastWest := geo.IsUSEast(seg.From) && geo.IsUSWest(seg.To)
		westEast := geo.IsUSWest(seg.From) && geo.IsUSEast(seg.To)
		if eastWest || westEast {
			count++
			segs = append(segs, i)
		}
	}
	if count > 1 {
		return []Result{violation("us_transcontinental",
			fmt.Sprintf("%d nonstop US transcontinental flights, only 1 is permitted", count), segs...)}
	}
	return nil
}
