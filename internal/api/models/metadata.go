package models

// Enums lists the enumerated values the API accepts.
type Enums struct {
	Continents []string `json:"continents"`
	Cabins     []string `json:"cabins"`
	Directions []string `json:"directions"`
	RankBy     []string `json:"rankBy"`
	Severities []string `json:"severities"`
}

// AirportInfo is reference data for one airport in the route network.
type AirportInfo struct {
	Code       string `json:"code"`
	Country    string `json:"country"`
	Continent  string `json:"continent"`
	Conference string `json:"conference"`
}

// CarrierInfo is reference data for one bookable carrier.
type CarrierInfo struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Member    bool      `json:"member"`
	Affiliate bool      `json:"affiliate"`
	Joined    Timestamp `json:"joined"`
}
