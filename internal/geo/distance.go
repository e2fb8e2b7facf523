package geo

import "math"

// earthRadiusMiles is the mean Earth radius.
const earthRadiusMiles = 3958.7613

// Distance returns the great-circle distance in statute miles between two
// airports. Identical codes are zero miles; unknown codes return
// ErrUnknownAirport.
func Distance(a, b string) (float64, error) {
	if a == b {
		return 0, nil
	}
	from, err := Lookup(a)
	if err != nil {
		return 0, err
	}
	to, err := Lookup(b)
	if err != nil {
		return 0, err
	}
	return haversine(from.Lat, from.Lon, to.Lat, to.Lon), nil
}

// haversine computes the great-circle distance in miles between two
// lat/lon points given in degrees.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dPhi := (lat2 - lat1) * degToRad
	dLambda := (lon2 - lon1) * degToRad

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)

	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}
