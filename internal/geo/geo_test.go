package geo_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldloop/worldloop/internal/geo"
)

func TestLookup_CountryDefault(t *testing.T) {
	apt, err := geo.Lookup("SYD")
	require.NoError(t, err)
	assert.Equal(t, geo.SouthWestPacific, apt.Continent)
	assert.Equal(t, geo.TC3, apt.Conference)
	assert.Equal(t, "AU", apt.Country)
}

func TestLookup_EgyptIsEuropeMiddleEast(t *testing.T) {
	apt, err := geo.Lookup("CAI")
	require.NoError(t, err)
	assert.Equal(t, geo.EuropeMiddleEast, apt.Continent)
	assert.Equal(t, geo.TC2, apt.Conference)
}

func TestLookup_AirportOverrideWinsOverCountry(t *testing.T) {
	// Guam is a US territory; the fare product treats it as Asia.
	apt, err := geo.Lookup("GUM")
	require.NoError(t, err)
	assert.Equal(t, "US", apt.Country)
	assert.Equal(t, geo.Asia, apt.Continent)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := geo.Lookup("XXX")
	require.Error(t, err)
	assert.True(t, errors.Is(err, geo.ErrUnknownAirport))
}

func TestLookup_Lowercase(t *testing.T) {
	apt, err := geo.Lookup("jfk")
	require.NoError(t, err)
	assert.Equal(t, "JFK", apt.Code)
	assert.Equal(t, geo.NorthAmerica, apt.Continent)
}

func TestSameCity(t *testing.T) {
	assert.True(t, geo.SameCity("NRT", "HND"))
	assert.True(t, geo.SameCity("TSA", "TPE"))
	assert.True(t, geo.SameCity("JFK", "EWR"))
	assert.True(t, geo.SameCity("MAD", "MAD"))
	assert.False(t, geo.SameCity("NRT", "KIX"))
	assert.False(t, geo.SameCity("JFK", "BOS"))
}

func TestCityKey(t *testing.T) {
	assert.Equal(t, "tokyo", geo.CityKey("NRT"))
	assert.Equal(t, geo.CityKey("NRT"), geo.CityKey("HND"))
	assert.Equal(t, "DOH", geo.CityKey("DOH"))
}

func TestContinentConference(t *testing.T) {
	assert.Equal(t, geo.TC1, geo.NorthAmerica.Conference())
	assert.Equal(t, geo.TC1, geo.SouthAmerica.Conference())
	assert.Equal(t, geo.TC2, geo.Africa.Conference())
	assert.Equal(t, geo.TC3, geo.Asia.Conference())
}

func TestContinentHemisphere(t *testing.T) {
	assert.True(t, geo.Asia.Northern())
	assert.False(t, geo.SouthWestPacific.Northern())
	assert.Equal(t, geo.SouthWestPacific, geo.Asia.Counterpart())
	assert.Equal(t, geo.Asia, geo.SouthWestPacific.Counterpart())
	assert.Equal(t, geo.Africa, geo.EuropeMiddleEast.Counterpart())
}

func TestDistance_KnownPair(t *testing.T) {
	// JFK-LHR is roughly 3,450 statute miles.
	miles, err := geo.Distance("JFK", "LHR")
	require.NoError(t, err)
	assert.InDelta(t, 3450, miles, 60)
}

func TestDistance_Symmetric(t *testing.T) {
	ab, err := geo.Distance("SIN", "SYD")
	require.NoError(t, err)
	ba, err := geo.Distance("SYD", "SIN")
	require.NoError(t, err)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestDistance_SameAirport(t *testing.T) {
	miles, err := geo.Distance("HKG", "HKG")
	require.NoError(t, err)
	assert.Zero(t, miles)
}

func TestDistance_UnknownPropagates(t *testing.T) {
	_, err := geo.Distance("HKG", "ZZZ")
	assert.True(t, errors.Is(err, geo.ErrUnknownAirport))
}

func TestRegionalSets(t *testing.T) {
	assert.True(t, geo.IsHawaii("HNL"))
	assert.False(t, geo.IsHawaii("LAX"))
	assert.True(t, geo.IsAlaska("ANC"))
	assert.True(t, geo.IsUSEast("JFK"))
	assert.True(t, geo.IsUSWest("SFO"))
	assert.False(t, geo.IsUSEast("SFO"))
}
