// Package carrier holds the oneworld membership reference table.
package carrier

import (
	"strings"
	"time"
)

// Carrier is immutable reference data for one marketing carrier.
type Carrier struct {
	Code      string
	Name      string
	Member    bool // full alliance member
	Affiliate bool // recognized affiliate with restricted use
	// Joined is the membership effective date. Segments marketed before a
	// carrier joined are not covered; the table keeps the date so callers
	// can check dated itineraries.
	Joined time.Time
}

// FirstCarrierDisallowed may not market the itinerary's first flown segment.
const FirstCarrierDisallowed = "QR"

func joined(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var carriers = map[string]Carrier{
	"AA": {Code: "AA", Name: "American Airlines", Member: true, Joined: joined(1999, time.February, 1)},
	"BA": {Code: "BA", Name: "British Airways", Member: true, Joined: joined(1999, time.February, 1)},
	"CX": {Code: "CX", Name: "Cathay Pacific", Member: true, Joined: joined(1999, time.February, 1)},
	"QF": {Code: "QF", Name: "Qantas", Member: true, Joined: joined(1999, time.February, 1)},
	"AY": {Code: "AY", Name: "Finnair", Member: true, Joined: joined(1999, time.September, 1)},
	"IB": {Code: "IB", Name: "Iberia", Member: true, Joined: joined(1999, time.September, 1)},
	"JL": {Code: "JL", Name: "Japan Airlines", Member: true, Joined: joined(2007, time.April, 1)},
	"RJ": {Code: "RJ", Name: "Royal Jordanian", Member: true, Joined: joined(2007, time.April, 1)},
	"S7": {Code: "S7", Name: "S7 Airlines", Member: true, Joined: joined(2010, time.November, 15)},
	"QR": {Code: "QR", Name: "Qatar Airways", Member: true, Joined: joined(2013, time.October, 30)},
	"MH": {Code: "MH", Name: "Malaysia Airlines", Member: true, Joined: joined(2013, time.February, 1)},
	"UL": {Code: "UL", Name: "SriLankan Airlines", Member: true, Joined: joined(2014, time.May, 1)},
	"AS": {Code: "AS", Name: "Alaska Airlines", Member: true, Joined: joined(2021, time.March, 31)},
	"AT": {Code: "AT", Name: "Royal Air Maroc", Member: true, Joined: joined(2024, time.September, 23)},
	"FJ": {Code: "FJ", Name: "Fiji Airways", Member: true, Joined: joined(2025, time.April, 1)},
	"LA": {Code: "LA", Name: "LATAM Airlines", Member: false, Affiliate: true, Joined: joined(2000, time.May, 1)},
	"WY": {Code: "WY", Name: "Oman Air", Member: false, Affiliate: true, Joined: joined(2025, time.June, 30)},
}

// Lookup returns the reference entry for a two-letter carrier code.
func Lookup(code string) (Carrier, bool) {
	c, ok := carriers[strings.ToUpper(code)]
	return c, ok
}

// Eligible reports whether the carrier may operate flown segments on the
// fare product: a full member, or a recognized affiliate.
func Eligible(code string) bool {
	c, ok := Lookup(code)
	return ok && (c.Member || c.Affiliate)
}

// EligibleOn reports eligibility as of a travel date, honoring the
// membership effective date.
func EligibleOn(code string, date time.Time) bool {
	c, ok := Lookup(code)
	if !ok || (!c.Member && !c.Affiliate) {
		return false
	}
	if date.IsZero() {
		return true
	}
	return !date.Before(c.Joined)
}

// Codes returns all known carrier codes. Order is unspecified.
func Codes() []string {
	out := make([]string, 0, len(carriers))
	for code := range carriers {
		out = append(out, code)
	}
	return out
}
