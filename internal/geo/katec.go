// Package geo provides coordinate conversion and point encoding for building locations.
package geo

import (
	"math"
	"strconv"
	"strings"
)

// Affine parameters for the KATEC approximation (Seoul metro calibration).
const (
	katecOriginY  = 464362.242
	katecOriginX  = 305048.896
	katecMPerLat  = 111062.9516
	katecMPerLng  = 88762.6832
	baseLat       = 37.0
	baseLng       = 127.0
	gangnamLatFix = 0.0028  // empirical offset near Gangnam-gu
	gangnamLngFix = -0.0045 // empirical offset near Gangnam-gu
)

// KATECToWGS84 approximates WGS84 latitude/longitude for a KATEC planar pair
// (x east, y north) as returned in Naver local search mapx/mapy. The result is
// accurate to roughly 50m around Seoul and is rounded to 7 decimal places.
// This is a linear approximation, not a datum transform.
func KATECToWGS84(x, y float64) (lat, lng float64) {
	lat = (y-katecOriginY)/katecMPerLat + baseLat + gangnamLatFix
	lng = (x-katecOriginX)/katecMPerLng + baseLng + gangnamLngFix
	return Round7(lat), Round7(lng)
}

// ParsePlanar parses a mapx/mapy string pair and converts it with KATECToWGS84.
// ok is false when either value is blank or not numeric.
func ParsePlanar(mapx, mapy string) (lat, lng float64, ok bool) {
	mapx, mapy = strings.TrimSpace(mapx), strings.TrimSpace(mapy)
	if mapx == "" || mapy == "" {
		return 0, 0, false
	}
	x, err := strconv.ParseFloat(mapx, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, 0, false
	}
	y, err := strconv.ParseFloat(mapy, 64)
	if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	lat, lng = KATECToWGS84(x, y)
	return lat, lng, true
}

// Round7 rounds v to 7 decimal places.
func Round7(v float64) float64 {
	return math.Round(v*1e7) / 1e7
}
