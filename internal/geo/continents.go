// Package geo provides the static airport reference data used by the rule
// engine: continent and tariff-conference classification, same-city groups,
// and great-circle distance.
package geo

// Continent is one of the six fare-product continents. The fare product does
// not use geographic continents: the Middle East belongs to Europe, Mexico
// and Central America to North America, and so on.
type Continent string

const (
	EuropeMiddleEast Continent = "europe_middle_east"
	Africa           Continent = "africa"
	Asia             Continent = "asia"
	SouthWestPacific Continent = "south_west_pacific"
	NorthAmerica     Continent = "north_america"
	SouthAmerica     Continent = "south_america"
)

// TariffConference is one of IATA's three macro-regions. Direction of travel
// and ocean crossings are defined in terms of TC transitions.
type TariffConference string

const (
	TC1 TariffConference = "TC1" // Americas
	TC2 TariffConference = "TC2" // Europe, Middle East, Africa
	TC3 TariffConference = "TC3" // Asia, South West Pacific
)

// continentTC maps each continent to its tariff conference.
var continentTC = map[Continent]TariffConference{
	NorthAmerica:     TC1,
	SouthAmerica:     TC1,
	EuropeMiddleEast: TC2,
	Africa:           TC2,
	Asia:             TC3,
	SouthWestPacific: TC3,
}

// Conference returns the tariff conference for a continent.
func (c Continent) Conference() TariffConference {
	return continentTC[c]
}

// Northern reports whether the continent is the northern-hemisphere member
// of its tariff conference. Each TC pairs one northern and one southern
// continent, which drives the revisit rule.
func (c Continent) Northern() bool {
	switch c {
	case NorthAmerica, EuropeMiddleEast, Asia:
		return true
	}
	return false
}

// Counterpart returns the other continent sharing the same tariff
// conference.
func (c Continent) Counterpart() Continent {
	switch c {
	case NorthAmerica:
		return SouthAmerica
	case SouthAmerica:
		return NorthAmerica
	case EuropeMiddleEast:
		return Africa
	case Africa:
		return EuropeMiddleEast
	case Asia:
		return SouthWestPacific
	default:
		return Asia
	}
}

// countryContinent assigns each reference country (ISO 3166-1 alpha-2) to
// its fare-product continent. Airport-level overrides in airports.go win
// over these defaults.
var countryContinent = map[string]Continent{
	// Europe / Middle East (TC2 north)
	"GB": EuropeMiddleEast, "IE": EuropeMiddleEast, "FR": EuropeMiddleEast,
	"DE": EuropeMiddleEast, "ES": EuropeMiddleEast, "PT": EuropeMiddleEast,
	"IT": EuropeMiddleEast, "NL": EuropeMiddleEast, "BE": EuropeMiddleEast,
	"CH": EuropeMiddleEast, "AT": EuropeMiddleEast, "CZ": EuropeMiddleEast,
	"PL": EuropeMiddleEast, "HU": EuropeMiddleEast, "RO": EuropeMiddleEast,
	"GR": EuropeMiddleEast, "TR": EuropeMiddleEast, "FI": EuropeMiddleEast,
	"SE": EuropeMiddleEast, "NO": EuropeMiddleEast, "DK": EuropeMiddleEast,
	"IS": EuropeMiddleEast, "RU": EuropeMiddleEast,
	"JO": EuropeMiddleEast, "IL": EuropeMiddleEast, "QA": EuropeMiddleEast,
	"AE": EuropeMiddleEast, "BH": EuropeMiddleEast, "KW": EuropeMiddleEast,
	"OM": EuropeMiddleEast, "SA": EuropeMiddleEast, "LB": EuropeMiddleEast,
	// Egypt is Europe/Middle East under this fare product, not Africa.
	"EG": EuropeMiddleEast,

	// Africa (TC2 south)
	"ZA": Africa, "KE": Africa, "TZ": Africa, "NG": Africa, "GH": Africa,
	"ET": Africa, "MU": Africa, "SC": Africa, "ZW": Africa, "BW": Africa,
	"NA": Africa, "MZ": Africa, "UG": Africa, "SN": Africa, "CI": Africa,
	"MA": Africa, "TN": Africa, "DZ": Africa,

	// Asia (TC3 north)
	"JP": Asia, "KR": Asia, "CN": Asia, "HK": Asia, "TW": Asia, "MO": Asia,
	"SG": Asia, "MY": Asia, "TH": Asia, "VN": Asia, "PH": Asia, "ID": Asia,
	"IN": Asia, "LK": Asia, "BD": Asia, "PK": Asia, "NP": Asia, "KH": Asia,
	"LA": Asia, "MM": Asia, "BN": Asia, "MV": Asia, "KZ": Asia, "UZ": Asia,

	// South West Pacific (TC3 south)
	"AU": SouthWestPacific, "NZ": SouthWestPacific, "FJ": SouthWestPacific,
	"PG": SouthWestPacific, "NC": SouthWestPacific, "PF": SouthWestPacific,
	"WS": SouthWestPacific, "TO": SouthWestPacific, "VU": SouthWestPacific,
	"CK": SouthWestPacific, "TV": SouthWestPacific,

	// North America (TC1 north)
	"US": NorthAmerica, "CA": NorthAmerica, "MX": NorthAmerica,
	"CR": NorthAmerica, "PA": NorthAmerica, "GT": NorthAmerica,
	"BZ": NorthAmerica, "SV": NorthAmerica, "HN": NorthAmerica,
	"NI": NorthAmerica, "CU": NorthAmerica, "JM": NorthAmerica,
	"DO": NorthAmerica, "BS": NorthAmerica, "BB": NorthAmerica,
	"TT": NorthAmerica, "KY": NorthAmerica, "BM": NorthAmerica,

	// South America (TC1 south)
	"BR": SouthAmerica, "AR": SouthAmerica, "CL": SouthAmerica,
	"PE": SouthAmerica, "CO": SouthAmerica, "EC": SouthAmerica,
	"UY": SouthAmerica, "PY": SouthAmerica, "BO": SouthAmerica,
	"VE": SouthAmerica, "GY": SouthAmerica,
}

// continentOverrides reassigns specific airports away from their country's
// default continent. Checked before the country table.
var continentOverrides = map[string]Continent{
	"GUM": Asia, // Guam is US territory but Asia for fare purposes
	"SPN": Asia, // Saipan, likewise
}
