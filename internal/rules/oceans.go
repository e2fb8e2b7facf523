package rules

import (
	"fmt"

	"github.com/worldloop/worldloop/internal/geo"
)

// checkOceanCrossings requires exactly one Atlantic (TC1<->TC2) and one
// Pacific (TC1<->TC3) crossing, both flown. A single transoceanic surface
// sector may stand in for one crossing when the ticket originates in the
// South West Pacific.
func checkOceanCrossings(c *Context) []Result {
	atlantic := c.AtlanticFlown
	pacific := c.PacificFlown

	// The South-West-Pacific-origin exemption covers one surface crossing.
	if c.Origin.Continent == geo.SouthWestPacific {
		if len(c.SurfaceAtlantic) == 1 && atlantic == 0 {
			atlantic++
		} else if len(c.SurfacePacific) == 1 && pacific == 0 {
			pacific++
		}
	}

	var out []Result
	switch {
	case atlantic == 0:
		out = append(out, violation("ocean_crossings", "no flown Atlantic crossing (TC1<->TC2)"))
	case atlantic > 1:
		out = append(out, violation("ocean_crossings",
			fmt.Sprintf("%d Atlantic crossings, exactly 1 is permitted", atlantic)))
	}
	switch {
	case pacific == 0:
		out = append(out, violation("ocean_crossings", "no flown Pacific crossing (TC1<->TC3)"))
	case pacific > 1:
		out = append(out, violation("ocean_crossings",
			fmt.Sprintf("%d Pacific crossings, exactly 1 is permitted", pacific)))
	}
	return out
}
