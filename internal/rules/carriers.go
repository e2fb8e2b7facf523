package rules

import (
	"fmt"

	"github.com/worldloop/worldloop/internal/carrier"
)

func checkEligibleCarriers(c *Context) []Result {
	var out []Result
	for i, seg := range c.Itin.Segments {
		if !seg.IsFlown() || seg.Carrier == "" {
			continue
		}
		if !carrier.EligibleOn(seg.Carrier, seg.Depart) {
			out = append(out, violation("eligible_carriers",
				fmt.Sprintf("segment %d %s: %s is not an eligible alliance carrier", i+1, seg.Route(), seg.Carrier), i))
		}
	}
	return out
}

func checkFirstCarrier(c *Context) []Result {
	if c.FirstFlownCarrier == carrier.FirstCarrierDisallowed {
		return []Result{violation("first_carrier",
			fmt.Sprintf("%s may not market the first flown segment", carrier.FirstCarrierDisallowed))}
	}
	return nil
}
