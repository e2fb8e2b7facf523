package rules

import (
	"fmt"

	"github.com/worldloop/worldloop/internal/geo"
)

// tcOrder fixes the eastbound rotation TC1 -> TC2 -> TC3 -> TC1.
var tcOrder = map[geo.TariffConference]int{geo.TC1: 0, geo.TC2: 1, geo.TC3: 2}

// checkDirection enforces the rotational direction of travel: the first
// inter-conference move fixes eastbound or westbound, and every later
// inter-conference move must continue the same rotation. Intra-continent
// backtracking is outside this rule.
func checkDirection(c *Context) []Result {
	seq := dedupTCs(c.TCSeq)
	if len(seq) < 3 {
		// At most one transition: no direction established yet.
		return nil
	}

	eastbound := step(seq[0], seq[1]) == 1
	name := "eastbound"
	if !eastbound {
		name = "westbound"
	}

	for i := 1; i < len(seq)-1; i++ {
		s := step(seq[i], seq[i+1])
		if (eastbound && s != 1) || (!eastbound && s != 2) {
			return []Result{violation("direction_of_travel",
				fmt.Sprintf("transition %s->%s reverses the established %s rotation", seq[i], seq[i+1], name))}
		}
	}
	return nil
}

// step returns the rotation distance between two conferences: 1 for an
// eastbound move, 2 for a westbound move.
func step(from, to geo.TariffConference) int {
	return (tcOrder[to] - tcOrder[from] + 3) % 3
}

func dedupTCs(seq []geo.TariffConference) []geo.TariffConference {
	if len(seq) == 0 {
		return nil
	}
	out := append(make([]geo.TariffConference, 0, len(seq)), seq[0])
	for _, tc := range seq[1:] {
		if tc != out[len(out)-1] {
			out = append(out, tc)
		}
	}
	return out
}
