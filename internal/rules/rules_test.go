package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldloop/worldloop/internal/geo"
	"github.com/worldloop/worldloop/internal/itinerary"
)

func leg(from, to, carrier string) itinerary.Segment {
	return itinerary.Segment{From: from, To: to, Carrier: carrier}
}

func sfc(from, to string) itinerary.Segment {
	return itinerary.Segment{From: from, To: to, Kind: itinerary.Surface}
}

func build(origin string, continents int, segs ...itinerary.Segment) itinerary.Itinerary {
	return itinerary.New(itinerary.Ticket{Cabin: itinerary.Economy, Continents: continents, Origin: origin}, segs)
}

func mustContext(t *testing.T, it itinerary.Itinerary, opts Options) *Context {
	t.Helper()
	c, err := BuildContext(it, opts)
	require.NoError(t, err)
	return c
}

func TestDirectionReversal(t *testing.T) {
	it := build("LHR", 3,
		leg("LHR", "HKG", "CX"),
		leg("HKG", "DXB", "CX"),
		leg("DXB", "LHR", "BA"),
	)
	out := checkDirection(mustContext(t, it, Options{}))
	require.Len(t, out, 1)
	assert.Equal(t, Violation, out[0].Severity)
	assert.Contains(t, out[0].Message, "reverses")
}

func TestDirectionWestbound(t *testing.T) {
	it := build("LHR", 4,
		leg("LHR", "JFK", "BA"),
		leg("JFK", "HKG", "CX"),
		leg("HKG", "LHR", "CX"),
	)
	assert.Empty(t, checkDirection(mustContext(t, it, Options{})))
}

func TestOceanCrossings(t *testing.T) {
	// Two Atlantic crossings and no Pacific crossing at all.
	it := build("LHR", 3,
		leg("LHR", "JFK", "BA"),
		leg("JFK", "MIA", "AA"),
		leg("MIA", "LHR", "BA"),
	)
	out := checkOceanCrossings(mustContext(t, it, Options{}))
	require.Len(t, out, 2)
	assert.Contains(t, out[0].Message, "Atlantic")
	assert.Contains(t, out[1].Message, "Pacific")
}

func TestSurfaceSectorTransoceanic(t *testing.T) {
	it := build("LHR", 4,
		leg("LHR", "HKG", "CX"),
		leg("HKG", "SYD", "CX"),
		leg("SYD", "LAX", "QF"),
		leg("LAX", "JFK", "AA"),
		sfc("JFK", "LHR"),
	)
	out := checkSurfaceSectors(mustContext(t, it, Options{}))
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, "crosses tariff conferences")
	assert.Equal(t, []int{4}, out[0].Segments)
}

func TestSurfaceSectorWithinCountry(t *testing.T) {
	it := build("LHR", 4,
		leg("LHR", "HKG", "CX"),
		leg("HKG", "SYD", "CX"),
		leg("SYD", "LAX", "QF"),
		sfc("LAX", "JFK"),
		leg("JFK", "LHR", "BA"),
	)
	assert.Empty(t, checkSurfaceSectors(mustContext(t, it, Options{})))
}

func TestRepeatedCityPair(t *testing.T) {
	it := build("LHR", 3,
		leg("LHR", "HKG", "CX"),
		leg("HKG", "BKK", "CX"),
		leg("BKK", "HKG", "CX"),
		leg("HKG", "BKK", "CX"),
		leg("BKK", "SYD", "QF"),
	)
	out := checkRepeatedCityPair(mustContext(t, it, Options{}))
	require.Len(t, out, 1)
	assert.Equal(t, []int{1, 3}, out[0].Segments)
}

func TestHawaiiOneWay(t *testing.T) {
	it := build("SYD", 3,
		leg("SYD", "HNL", "QF"),
		leg("HNL", "LAX", "AA"),
		leg("LAX", "HNL", "AA"),
	)
	out := checkHawaiiAlaska(mustContext(t, it, Options{}))
	require.Len(t, out, 1)
	assert.Equal(t, []int{2}, out[0].Segments)
}

func TestUSTranscontinentalCap(t *testing.T) {
	it := build("LHR", 3,
		leg("LHR", "SFO", "BA"),
		leg("SFO", "JFK", "AA"),
		leg("JFK", "LAX", "AA"),
		leg("LAX", "HKG", "CX"),
		leg("HKG", "LHR", "CX"),
	)
	out := checkUSTranscontinental(mustContext(t, it, Options{}))
	require.Len(t, out, 1)
	assert.Equal(t, []int{1, 2}, out[0].Segments)
}

func TestHemisphereNorthernRevisit(t *testing.T) {
	// Asia twice without dipping into the South West Pacific in between.
	it := build("LHR", 3,
		leg("LHR", "HKG", "CX"),
		leg("HKG", "SFO", "CX"),
		leg("SFO", "NRT", "JL"),
		leg("NRT", "LHR", "JL"),
	)
	out := checkHemisphereRevisit(mustContext(t, it, Options{}))
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, "southern counterpart")
}

func TestHemisphereNorthernRevisitViaCounterpart(t *testing.T) {
	it := build("LHR", 5,
		leg("LHR", "HKG", "CX"),
		leg("HKG", "SYD", "CX"),
		leg("SYD", "LAX", "QF"),
		leg("LAX", "NRT", "JL"),
		leg("NRT", "LHR", "JL"),
	)
	assert.Empty(t, checkHemisphereRevisit(mustContext(t, it, Options{})))
}

func TestHemisphereSouthernRevisit(t *testing.T) {
	it := build("SYD", 5,
		leg("SYD", "HKG", "CX"),
		leg("HKG", "AKL", "CX"),
		leg("AKL", "LAX", "QF"),
		leg("LAX", "JFK", "AA"),
		leg("JFK", "LHR", "BA"),
		leg("LHR", "SYD", "QF"),
	)
	out := checkHemisphereRevisit(mustContext(t, it, Options{}))
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, "southern continents may be visited once")
}

func TestOriginContinentStopoverBoundary(t *testing.T) {
	atCap := build("CAI", 4,
		leg("CAI", "AMM", "RJ"),
		leg("AMM", "HKG", "CX"),
		leg("HKG", "SYD", "CX"),
		leg("SYD", "LAX", "QF"),
		leg("LAX", "JFK", "AA"),
		leg("JFK", "MAD", "IB"),
		leg("MAD", "CAI", "IB"),
	)
	out := checkOriginContinentStopovers(mustContext(t, atCap, Options{}))
	require.Len(t, out, 1)
	assert.Equal(t, Warning, out[0].Severity)

	overCap := build("CAI", 4,
		leg("CAI", "AMM", "RJ"),
		leg("AMM", "DOH", "RJ"),
		leg("DOH", "HKG", "CX"),
		leg("HKG", "SYD", "CX"),
		leg("SYD", "LAX", "QF"),
		leg("LAX", "JFK", "AA"),
		leg("JFK", "MAD", "IB"),
		leg("MAD", "CAI", "IB"),
	)
	out = checkOriginContinentStopovers(mustContext(t, overCap, Options{}))
	require.Len(t, out, 1)
	assert.Equal(t, Violation, out[0].Severity)

	// The final-leg exemption discounts the stop before the closing segment,
	// bringing the itinerary back to the cap.
	out = checkOriginContinentStopovers(mustContext(t, overCap, Options{ExemptFinalLegStopover: true}))
	require.Len(t, out, 1)
	assert.Equal(t, Warning, out[0].Severity)
}

func TestStopoverVisitsOnly(t *testing.T) {
	arr := time.Date(2026, time.March, 10, 6, 0, 0, 0, time.UTC)
	segs := []itinerary.Segment{
		{From: "LHR", To: "HKG", Carrier: "CX", Arrive: arr},
		{From: "HKG", To: "SYD", Carrier: "CX", Depart: arr.Add(2 * time.Hour)},
		leg("SYD", "LAX", "QF"),
		leg("LAX", "JFK", "AA"),
		leg("JFK", "LHR", "BA"),
	}

	c := mustContext(t, build("LHR", 4, segs...), Options{})
	assert.Equal(t, []geo.Continent{geo.EuropeMiddleEast, geo.Asia, geo.SouthWestPacific, geo.NorthAmerica}, c.Visited)

	// A two-hour connection in Hong Kong no longer counts Asia as visited.
	c = mustContext(t, build("LHR", 3, segs...), Options{StopoverVisitsOnly: true})
	assert.Equal(t, []geo.Continent{geo.EuropeMiddleEast, geo.SouthWestPacific, geo.NorthAmerica}, c.Visited)
}

func TestSegmentCountBounds(t *testing.T) {
	hops := []string{
		"LHR", "AMM", "DOH", "HKG", "BKK", "SIN", "SYD", "AKL", "NAN",
		"HNL", "LAX", "SFO", "DFW", "ORD", "JFK", "MIA", "MAD", "LHR",
	}
	segs := make([]itinerary.Segment, 0, len(hops)-1)
	for i := 0; i < len(hops)-1; i++ {
		segs = append(segs, leg(hops[i], hops[i+1], "BA"))
	}
	require.Len(t, segs, 17)

	out := checkSegmentCount(mustContext(t, build("LHR", 4, segs...), Options{}))
	require.Len(t, out, 1)
	assert.Equal(t, Violation, out[0].Severity)
	assert.Contains(t, out[0].Message, "16")

	out = checkSegmentCount(mustContext(t, build("LHR", 3,
		leg("LHR", "HKG", "CX"),
		leg("HKG", "LHR", "CX"),
	), Options{}))
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, "3")
}

func TestReturnToOriginMissing(t *testing.T) {
	it := build("LHR", 3,
		leg("LHR", "HKG", "CX"),
		leg("HKG", "SYD", "CX"),
		leg("SYD", "LAX", "QF"),
	)
	out := checkReturnToOrigin(mustContext(t, it, Options{}))
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, "does not return to origin")
}

func TestReturnToOriginSameCity(t *testing.T) {
	// Closing into Gatwick satisfies a Heathrow-origin ticket.
	it := build("LHR", 3,
		leg("LHR", "HKG", "CX"),
		leg("HKG", "SYD", "CX"),
		leg("SYD", "LAX", "QF"),
		leg("LAX", "LGW", "BA"),
	)
	assert.Empty(t, checkReturnToOrigin(mustContext(t, it, Options{})))
}

func TestContinentCount(t *testing.T) {
	it := build("LHR", 5,
		leg("LHR", "HKG", "CX"),
		leg("HKG", "SYD", "CX"),
		leg("SYD", "LAX", "QF"),
		leg("LAX", "JFK", "AA"),
		leg("JFK", "LHR", "BA"),
	)
	out := checkContinentCount(mustContext(t, it, Options{}))
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, "visits 4 continents")

	out = checkContinentCount(mustContext(t, build("LHR", 7, leg("LHR", "HKG", "CX")), Options{}))
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, "3 to 6")
}

func TestEligibleCarrierJoinDate(t *testing.T) {
	before := time.Date(2010, time.June, 1, 8, 0, 0, 0, time.UTC)
	it := build("LHR", 3, itinerary.Segment{From: "LHR", To: "DOH", Carrier: "QR", Depart: before})
	out := checkEligibleCarriers(mustContext(t, it, Options{}))
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, "QR")
}

func TestFirstCarrierDisallowed(t *testing.T) {
	it := build("CAI", 3,
		leg("CAI", "DOH", "QR"),
		leg("DOH", "HKG", "CX"),
		leg("HKG", "CAI", "CX"),
	)
	out := checkFirstCarrier(mustContext(t, it, Options{}))
	require.Len(t, out, 1)
	assert.Equal(t, Violation, out[0].Severity)
}

func TestIntercontinentalLimits(t *testing.T) {
	base := &Context{Visited: []geo.Continent{geo.NorthAmerica, geo.Asia}}
	assert.Equal(t, 2, base.intercontinentalLimit(geo.NorthAmerica))
	assert.Equal(t, 1, base.intercontinentalLimit(geo.Asia))
	assert.Equal(t, 1, base.intercontinentalLimit(geo.EuropeMiddleEast))

	bridge := &Context{Visited: []geo.Continent{geo.SouthWestPacific, geo.Asia, geo.EuropeMiddleEast, geo.Africa}}
	assert.Equal(t, 2, bridge.intercontinentalLimit(geo.Asia))
	assert.Equal(t, 2, bridge.intercontinentalLimit(geo.EuropeMiddleEast))

	exempt := &Context{USTransitExempt: true}
	assert.Equal(t, 3, exempt.intercontinentalLimit(geo.NorthAmerica))
}
