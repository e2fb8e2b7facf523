package rules

import (
	"fmt"

	"github.com/worldloop/worldloop/internal/geo"
	"github.com/worldloop/worldloop/internal/itinerary"
)

// checkStructure surfaces malformed-itinerary defects as findings so the
// rest of the rule run still completes and reports everything it can.
func checkStructure(c *Context) []Result {
	var out []Result
	for _, issue := range c.StructureIssues {
		if issue.Index >= 0 {
			out = append(out, violation("itinerary_structure", issue.Reason, issue.Index))
		} else {
			out = append(out, violation("itinerary_structure", issue.Reason))
		}
	}
	return out
}

func checkReturnToOrigin(c *Context) []Result {
	if len(c.Itin.Segments) == 0 {
		return nil
	}
	last := c.Itin.Segments[len(c.Itin.Segments)-1]
	if !geo.SameCity(last.To, c.Itin.Ticket.Origin) {
		return []Result{violation("return_to_origin",
			fmt.Sprintf("final destination %s does not return to origin %s", last.To, c.Itin.Ticket.Origin),
			len(c.Itin.Segments)-1)}
	}
	return nil
}

// checkEarlyReturn forbids re-entering the origin country before the final
// segment, except a single USA-origin transfer-only transit.
func checkEarlyReturn(c *Context) []Result {
	if len(c.EarlyReturns) == 0 || c.USTransitExempt {
		return nil
	}

	var out []Result
	for _, idx := range c.EarlyReturns {
		kind := itinerary.Transfer
		for _, stop := range c.Stops {
			if stop.Index == idx {
				kind = stop.Kind
			}
		}
		msg := fmt.Sprintf("returns to origin country %s at segment %d before the final segment", c.Origin.Country, idx+1)
		if c.Origin.Country == "US" && kind == itinerary.Transfer && len(c.EarlyReturns) > 1 {
			msg += " (only one US transit exemption is available)"
		}
		out = append(out, violation("return_to_origin", msg, idx))
	}
	return out
}

func checkContinentCount(c *Context) []Result {
	required := c.Itin.Ticket.Continents
	if required < 3 || required > 6 {
		return []Result{violation("continent_count",
			fmt.Sprintf("ticket declares %d continents, the product covers 3 to 6", required))}
	}

	if actual := len(c.Visited); actual != required {
		names := make([]string, len(c.Visited))
		for i, cont := range c.Visited {
			names[i] = string(cont)
		}
		return []Result{violation("continent_count",
			fmt.Sprintf("itinerary visits %d continents (%v), ticket requires %d", actual, names, required))}
	}
	return nil
}
