package geo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAirport indicates an airport code absent from the reference
// table. It is fatal to the caller: validation and generation refuse to
// guess a continent.
var ErrUnknownAirport = errors.New("unknown airport code")

// Airport is immutable reference data for one IATA location.
type Airport struct {
	Code       string
	Country    string // ISO 3166-1 alpha-2
	Continent  Continent
	Conference TariffConference
	Lat        float64
	Lon        float64
}

// Lookup resolves an IATA code to its reference data. Airport-level
// continent overrides are applied before the country default.
func Lookup(code string) (Airport, error) {
	code = strings.ToUpper(code)
	ref, ok := airports[code]
	if !ok {
		return Airport{}, fmt.Errorf("%w: %s", ErrUnknownAirport, code)
	}

	cont, ok := continentOverrides[code]
	if !ok {
		cont, ok = countryContinent[ref.country]
		if !ok {
			return Airport{}, fmt.Errorf("%w: %s (unmapped country %s)", ErrUnknownAirport, code, ref.country)
		}
	}

	return Airport{
		Code:       code,
		Country:    ref.country,
		Continent:  cont,
		Conference: cont.Conference(),
		Lat:        ref.lat,
		Lon:        ref.lon,
	}, nil
}

// SameCity reports whether two airport codes serve the same city. Codes
// outside any group match only themselves.
func SameCity(a, b string) bool {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	if a == b {
		return true
	}
	ga, ok := cityGroup[a]
	if !ok {
		return false
	}
	gb, ok := cityGroup[b]
	return ok && ga == gb
}

// CityKey returns the canonical key identifying the city an airport serves:
// its same-city group name, or the airport code itself.
func CityKey(code string) string {
	code = strings.ToUpper(code)
	if g, ok := cityGroup[code]; ok {
		return g
	}
	return code
}

// Hawaii and Alaska carry their own backtracking restrictions inside the
// North America continent.
var (
	hawaiiAirports = map[string]bool{"HNL": true, "OGG": true, "KOA": true, "LIH": true, "ITO": true}
	alaskaAirports = map[string]bool{"ANC": true, "FAI": true, "JNU": true, "SIT": true, "KTN": true}
)

// IsHawaii reports whether the code is a Hawaiian airport.
func IsHawaii(code string) bool { return hawaiiAirports[strings.ToUpper(code)] }

// IsAlaska reports whether the code is an Alaskan airport.
func IsAlaska(code string) bool { return alaskaAirports[strings.ToUpper(code)] }

// US mainland groupings for the transcontinental nonstop cap.
var (
	usEastAirports = map[string]bool{
		"JFK": true, "LGA": true, "EWR": true, "BOS": true, "PHL": true,
		"DCA": true, "IAD": true, "BWI": true, "ATL": true, "MIA": true,
		"MCO": true, "FLL": true, "TPA": true, "CLT": true, "RDU": true,
		"PIT": true, "DTW": true, "CLE": true, "CVG": true, "IND": true,
		"MSP": true, "STL": true, "MCI": true, "MSY": true, "BNA": true,
		"MEM": true, "ORD": true, "MDW": true,
	}
	usWestAirports = map[string]bool{
		"LAX": true, "SFO": true, "SEA": true, "PDX": true, "SAN": true,
		"SJC": true, "OAK": true, "SMF": true, "LAS": true, "PHX": true,
		"DEN": true, "SLC": true, "DFW": true, "IAH": true, "AUS": true,
		"SAT": true,
	}
)

// IsUSEast reports membership in the eastern transcontinental grouping.
func IsUSEast(code string) bool { return usEastAirports[strings.ToUpper(code)] }

// IsUSWest reports membership in the western transcontinental grouping.
func IsUSWest(code string) bool { return usWestAirports[strings.ToUpper(code)] }

// cityGroup maps multi-airport cities to a shared key. Airports in the same
// group are a single logical point: arriving at one and departing from the
// other is not a surface sector.
var cityGroup = map[string]string{
	"NRT": "tokyo", "HND": "tokyo",
	"TPE": "taipei", "TSA": "taipei",
	"JFK": "new_york", "LGA": "new_york", "EWR": "new_york",
	"LHR": "london", "LGW": "london", "LCY": "london", "STN": "london",
	"CDG": "paris", "ORY": "paris",
	"ORD": "chicago", "MDW": "chicago",
	"IAD": "washington", "DCA": "washington",
	"KIX": "osaka", "ITM": "osaka",
	"PVG": "shanghai", "SHA": "shanghai",
	"GRU": "sao_paulo", "CGH": "sao_paulo",
	"EZE": "buenos_aires", "AEP": "buenos_aires",
	"GIG": "rio", "SDU": "rio",
	"MXP": "milan", "LIN": "milan",
}

type airportRef struct {
	country  string
	lat, lon float64
}

// airports is the static reference table, loaded once at init and never
// mutated. Coordinates are degrees.
var airports = map[string]airportRef{
	// Europe / Middle East
	"LHR": {"GB", 51.4700, -0.4543},
	"LGW": {"GB", 51.1537, -0.1821},
	"LCY": {"GB", 51.5053, 0.0553},
	"STN": {"GB", 51.8850, 0.2350},
	"MAN": {"GB", 53.3650, -2.2728},
	"EDI": {"GB", 55.9500, -3.3725},
	"DUB": {"IE", 53.4213, -6.2701},
	"CDG": {"FR", 49.0097, 2.5479},
	"ORY": {"FR", 48.7233, 2.3794},
	"NCE": {"FR", 43.6584, 7.2159},
	"FRA": {"DE", 50.0379, 8.5622},
	"MUC": {"DE", 48.3538, 11.7861},
	"TXL": {"DE", 52.5597, 13.2877},
	"MAD": {"ES", 40.4983, -3.5676},
	"BCN": {"ES", 41.2971, 2.0785},
	"LIS": {"PT", 38.7742, -9.1342},
	"FCO": {"IT", 41.8003, 12.2389},
	"MXP": {"IT", 45.6306, 8.7281},
	"LIN": {"IT", 45.4451, 9.2767},
	"AMS": {"NL", 52.3105, 4.7683},
	"BRU": {"BE", 50.9014, 4.4844},
	"ZRH": {"CH", 47.4647, 8.5492},
	"GVA": {"CH", 46.2381, 6.1089},
	"VIE": {"AT", 48.1103, 16.5697},
	"PRG": {"CZ", 50.1008, 14.2600},
	"WAW": {"PL", 52.1657, 20.9671},
	"BUD": {"HU", 47.4298, 19.2611},
	"OTP": {"RO", 44.5711, 26.0850},
	"ATH": {"GR", 37.9364, 23.9445},
	"IST": {"TR", 41.2753, 28.7519},
	"HEL": {"FI", 60.3172, 24.9633},
	"ARN": {"SE", 59.6519, 17.9186},
	"OSL": {"NO", 60.1939, 11.1004},
	"CPH": {"DK", 55.6181, 12.6561},
	"KEF": {"IS", 63.9850, -22.6056},
	"SVO": {"RU", 55.9726, 37.4146},
	"DME": {"RU", 55.4088, 37.9063},
	"AMM": {"JO", 31.7226, 35.9932},
	"TLV": {"IL", 32.0114, 34.8867},
	"DOH": {"QA", 25.2731, 51.6081},
	"DXB": {"AE", 25.2532, 55.3657},
	"AUH": {"AE", 24.4330, 54.6511},
	"BAH": {"BH", 26.2708, 50.6336},
	"KWI": {"KW", 29.2266, 47.9689},
	"MCT": {"OM", 23.5933, 58.2844},
	"RUH": {"SA", 24.9576, 46.6988},
	"JED": {"SA", 21.6796, 39.1565},
	"BEY": {"LB", 33.8209, 35.4884},
	"CAI": {"EG", 30.1219, 31.4056},

	// Africa
	"JNB": {"ZA", -26.1392, 28.2460},
	"CPT": {"ZA", -33.9649, 18.6017},
	"DUR": {"ZA", -29.6144, 31.1197},
	"NBO": {"KE", -1.3192, 36.9278},
	"DAR": {"TZ", -6.8781, 39.2026},
	"LOS": {"NG", 6.5774, 3.3212},
	"ACC": {"GH", 5.6052, -0.1668},
	"ADD": {"ET", 8.9779, 38.7993},
	"MRU": {"MU", -20.4302, 57.6836},
	"SEZ": {"SC", -4.6743, 55.5218},
	"HRE": {"ZW", -17.9318, 31.0928},
	"WDH": {"NA", -22.4799, 17.4709},
	"CMN": {"MA", 33.3675, -7.5900},
	"RAK": {"MA", 31.6069, -8.0363},
	"TUN": {"TN", 36.8510, 10.2272},

	// Asia
	"NRT": {"JP", 35.7720, 140.3929},
	"HND": {"JP", 35.5494, 139.7798},
	"KIX": {"JP", 34.4347, 135.2441},
	"ITM": {"JP", 34.7855, 135.4382},
	"NGO": {"JP", 34.8584, 136.8054},
	"CTS": {"JP", 42.7752, 141.6923},
	"FUK": {"JP", 33.5859, 130.4509},
	"OKA": {"JP", 26.1958, 127.6460},
	"ICN": {"KR", 37.4602, 126.4407},
	"PEK": {"CN", 40.0799, 116.6031},
	"PVG": {"CN", 31.1443, 121.8083},
	"SHA": {"CN", 31.1979, 121.3363},
	"CAN": {"CN", 23.3924, 113.2988},
	"HKG": {"HK", 22.3080, 113.9185},
	"TPE": {"TW", 25.0777, 121.2328},
	"TSA": {"TW", 25.0694, 121.5525},
	"SIN": {"SG", 1.3644, 103.9915},
	"KUL": {"MY", 2.7456, 101.7099},
	"PEN": {"MY", 5.2971, 100.2767},
	"BKK": {"TH", 13.6900, 100.7501},
	"HKT": {"TH", 8.1132, 98.3169},
	"SGN": {"VN", 10.8188, 106.6520},
	"HAN": {"VN", 21.2212, 105.8072},
	"MNL": {"PH", 14.5086, 121.0198},
	"CGK": {"ID", -6.1256, 106.6559},
	"DPS": {"ID", -8.7482, 115.1672},
	"DEL": {"IN", 28.5562, 77.1000},
	"BOM": {"IN", 19.0887, 72.8679},
	"MAA": {"IN", 12.9900, 80.1693},
	"BLR": {"IN", 13.1986, 77.7066},
	"CMB": {"LK", 7.1808, 79.8841},
	"KHI": {"PK", 24.9065, 67.1608},
	"ISB": {"PK", 33.5491, 72.8258},
	"MLE": {"MV", 4.1918, 73.5291},
	"GUM": {"US", 13.4834, 144.7960},
	"SPN": {"US", 15.1190, 145.7290},

	// South West Pacific
	"SYD": {"AU", -33.9461, 151.1772},
	"MEL": {"AU", -37.6690, 144.8410},
	"BNE": {"AU", -27.3842, 153.1175},
	"PER": {"AU", -31.9385, 115.9672},
	"ADL": {"AU", -34.9450, 138.5306},
	"CNS": {"AU", -16.8858, 145.7553},
	"CBR": {"AU", -35.3069, 149.1950},
	"AKL": {"NZ", -37.0081, 174.7917},
	"WLG": {"NZ", -41.3272, 174.8053},
	"CHC": {"NZ", -43.4894, 172.5320},
	"ZQN": {"NZ", -45.0211, 168.7392},
	"NAN": {"FJ", -17.7554, 177.4434},
	"SUV": {"FJ", -18.0433, 178.5592},
	"FUN": {"TV", -8.5250, 179.1964},
	"APW": {"WS", -13.8300, -172.0083},
	"TBU": {"TO", -21.2412, -175.1496},
	"VLI": {"VU", -17.6993, 168.3199},
	"NOU": {"NC", -22.0146, 166.2130},
	"PPT": {"PF", -17.5537, -149.6070},
	"RAR": {"CK", -21.2027, -159.7981},
	"POM": {"PG", -9.4434, 147.2200},

	// North America
	"JFK": {"US", 40.6413, -73.7781},
	"LGA": {"US", 40.7769, -73.8740},
	"EWR": {"US", 40.6895, -74.1745},
	"BOS": {"US", 42.3656, -71.0096},
	"PHL": {"US", 39.8744, -75.2424},
	"DCA": {"US", 38.8521, -77.0377},
	"IAD": {"US", 38.9531, -77.4565},
	"BWI": {"US", 39.1774, -76.6684},
	"ATL": {"US", 33.6407, -84.4277},
	"MIA": {"US", 25.7959, -80.2870},
	"MCO": {"US", 28.4312, -81.3081},
	"FLL": {"US", 26.0742, -80.1506},
	"TPA": {"US", 27.9772, -82.5311},
	"CLT": {"US", 35.2144, -80.9473},
	"RDU": {"US", 35.8801, -78.7880},
	"PIT": {"US", 40.4958, -80.2413},
	"DTW": {"US", 42.2162, -83.3554},
	"CLE": {"US", 41.4058, -81.8539},
	"CVG": {"US", 39.0533, -84.6630},
	"IND": {"US", 39.7169, -86.2956},
	"MSP": {"US", 44.8848, -93.2223},
	"STL": {"US", 38.7500, -90.3742},
	"MCI": {"US", 39.2976, -94.7139},
	"MSY": {"US", 29.9911, -90.2592},
	"BNA": {"US", 36.1263, -86.6774},
	"MEM": {"US", 35.0421, -89.9792},
	"ORD": {"US", 41.9742, -87.9073},
	"MDW": {"US", 41.7868, -87.7522},
	"LAX": {"US", 33.9416, -118.4085},
	"SFO": {"US", 37.6213, -122.3790},
	"SEA": {"US", 47.4502, -122.3088},
	"PDX": {"US", 45.5898, -122.5951},
	"SAN": {"US", 32.7338, -117.1933},
	"SJC": {"US", 37.3639, -121.9289},
	"OAK": {"US", 37.7126, -122.2197},
	"SMF": {"US", 38.6954, -121.5908},
	"LAS": {"US", 36.0840, -115.1537},
	"PHX": {"US", 33.4373, -112.0078},
	"DEN": {"US", 39.8561, -104.6737},
	"SLC": {"US", 40.7899, -111.9791},
	"DFW": {"US", 32.8998, -97.0403},
	"IAH": {"US", 29.9902, -95.3368},
	"AUS": {"US", 30.1975, -97.6664},
	"SAT": {"US", 29.5312, -98.4683},
	"HNL": {"US", 21.3187, -157.9225},
	"OGG": {"US", 20.8986, -156.4305},
	"KOA": {"US", 19.7388, -156.0456},
	"LIH": {"US", 21.9760, -159.3390},
	"ITO": {"US", 19.7203, -155.0485},
	"ANC": {"US", 61.1744, -149.9964},
	"FAI": {"US", 64.8151, -147.8563},
	"JNU": {"US", 58.3549, -134.5763},
	"SIT": {"US", 57.0471, -135.3616},
	"KTN": {"US", 55.3556, -131.7138},
	"YVR": {"CA", 49.1951, -123.1779},
	"YYZ": {"CA", 43.6777, -79.6248},
	"YUL": {"CA", 45.4706, -73.7408},
	"YYC": {"CA", 51.1215, -114.0076},
	"MEX": {"MX", 19.4363, -99.0721},
	"CUN": {"MX", 21.0365, -86.8771},
	"GDL": {"MX", 20.5218, -103.3111},
	"SJD": {"MX", 23.1518, -109.7215},
	"SJO": {"CR", 9.9939, -84.2088},
	"PTY": {"PA", 9.0714, -79.3835},
	"HAV": {"CU", 22.9892, -82.4091},
	"KIN": {"JM", 17.9357, -76.7875},
	"SJU": {"US", 18.4394, -66.0018},
	"NAS": {"BS", 25.0390, -77.4662},
	"BGI": {"BB", 13.0746, -59.4925},

	// South America
	"GRU": {"BR", -23.4356, -46.4731},
	"CGH": {"BR", -23.6273, -46.6566},
	"GIG": {"BR", -22.8100, -43.2505},
	"SDU": {"BR", -22.9105, -43.1631},
	"BSB": {"BR", -15.8711, -47.9186},
	"EZE": {"AR", -34.8222, -58.5358},
	"AEP": {"AR", -34.5592, -58.4156},
	"SCL": {"CL", -33.3930, -70.7858},
	"IPC": {"CL", -27.1648, -109.4219},
	"LIM": {"PE", -12.0219, -77.1143},
	"CUZ": {"PE", -13.5357, -71.9388},
	"BOG": {"CO", 4.7016, -74.1469},
	"MDE": {"CO", 6.1645, -75.4231},
	"UIO": {"EC", -0.1292, -78.3575},
	"GYE": {"EC", -2.1575, -79.8837},
	"MVD": {"UY", -34.8384, -56.0308},
	"ASU": {"PY", -25.2399, -57.5191},
	"VVI": {"BO", -17.6448, -63.1354},
	"CCS": {"VE", 10.6013, -66.9911},
}
