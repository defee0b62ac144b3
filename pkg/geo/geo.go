package geo

import (
	"math"
	"sort"

	geohash "github.com/TomiHiltunen/geohash-golang"
)

const (
	earthRadiusKm  = 6371.0088
	kmPerDegreeLat = 110.574
	kmPerDegreeLng = 111.320

	maxPrecision = 10
)

// Bound is a geohash prefix range. A range query over an index ordered by
// geohash, bounded by [Start, End], returns every document whose geohash
// falls inside the corresponding cell.
type Bound struct {
	Start string
	End   string
}

func Encode(lat, lng float64) string {
	return geohash.Encode(lat, lng)
}

// QueryBounds returns geohash prefix ranges whose union covers the disc of
// radiusKm around (lat, lng). The union is a superset of the disc; callers
// must re-check true distance on every candidate.
func QueryBounds(lat, lng, radiusKm float64) []Bound {
	precision := boundsPrecision(lat, radiusKm)
	center := geohash.EncodeWithPrecision(lat, lng, precision)

	cells := append([]string{center}, geohash.CalculateAllAdjacent(center)...)

	seen := make(map[string]bool, len(cells))
	bounds := make([]Bound, 0, len(cells))
	for _, cell := range cells {
		if cell == "" || seen[cell] {
			continue
		}
		seen[cell] = true
		// "~" sorts after every geohash character, so [cell, cell+"~"]
		// spans all hashes with this prefix.
		bounds = append(bounds, Bound{Start: cell, End: cell + "~"})
	}

	sort.Slice(bounds, func(i, j int) bool { return bounds[i].Start < bounds[j].Start })
	return bounds
}

// boundsPrecision picks the deepest precision whose cell still spans at
// least radiusKm in both directions at this latitude. The center cell plus
// its eight neighbors then always cover the disc.
func boundsPrecision(lat, radiusKm float64) int {
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}

	for p := maxPrecision; p >= 2; p-- {
		lngBits := (5*p + 1) / 2
		latBits := 5 * p / 2
		cellLatKm := 180 / math.Pow(2, float64(latBits)) * kmPerDegreeLat
		cellLngKm := 360 / math.Pow(2, float64(lngBits)) * kmPerDegreeLng * cosLat
		if cellLatKm >= radiusKm && cellLngKm >= radiusKm {
			return p
		}
	}
	return 1
}

// Distance returns the great-circle distance in kilometers between two
// points, using the haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ValidCoordinates reports whether (lat, lng) is a real point on the globe.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
