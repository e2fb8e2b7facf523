package rules

import (
	"fmt"

	"github.com/worldloop/worldloop/internal/geo"
)

// surfaceBlocs lists the continents whose interior counts as a single
// surface-travel region. Africa and Asia permit surface sectors only within
// one country.
var surfaceBlocs = map[geo.Continent]bool{
	geo.EuropeMiddleEast: true,
	geo.NorthAmerica:     true,
	geo.SouthAmerica:     true,
	geo.SouthWestPacific: true,
}

// checkSurfaceSectors restricts surface sectors to the enumerated
// region/country pairs and forbids transoceanic surface travel outside the
// South-West-Pacific-origin exemption. Same-city airport changes are not
// surface sectors, but they risk being miscoded as one downstream, so they
// surface as warnings.
func checkSurfaceSectors(c *Context) []Result {
	var out []Result

	for i, seg := range c.Itin.Segments {
		if seg.IsFlown() {
			continue
		}
		from, to := c.From[i], c.To[i]

		if from.Conference != to.Conference {
			// Transoceanic or cross-conference surface: only the SWP-origin
			// exemption permits one, and the ocean rule accounts for it.
			if c.Origin.Continent == geo.SouthWestPacific && isExemptSurface(c, i) {
				continue
			}
			out = append(out, violation("surface_sectors",
				fmt.Sprintf("surface sector %s crosses tariff conferences (%s->%s)", seg.Route(), from.Conference, to.Conference), i))
			continue
		}

		switch {
		case from.Country == to.Country:
			// Within one country: always permitted.
		case from.Continent == to.Continent && surfaceBlocs[from.Continent]:
			// Within a recognized regional bloc.
		default:
			out = append(out, violation("surface_sectors",
				fmt.Sprintf("surface sector %s is outside the permitted region pairs", seg.Route()), i))
		}
	}

	for _, pair := range c.SameCityChanges {
		arr := c.Itin.Segments[pair[0]].To
		dep := c.Itin.Segments[pair[1]].From
		out = append(out, warning("surface_sectors",
			fmt.Sprintf("%s/%s is a same-city airport change, verify it is not ticketed as a surface sector", arr, dep),
			pair[0], pair[1]))
	}

	return out
}

// isExemptSurface reports whether segment i is the single transoceanic
// surface sector the South-West-Pacific-origin exemption covers.
func isExemptSurface(c *Context, i int) bool {
	if len(c.SurfaceAtlantic)+len(c.SurfacePacific) != 1 {
		return false
	}
	for _, idx := range c.SurfaceAtlantic {
		if idx == i {
			return true
		}
	}
	for _, idx := range c.SurfacePacific {
		if idx == i {
			return true
		}
	}
	return false
}
