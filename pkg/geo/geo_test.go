package geo

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// destination returns the point at the given distance and bearing from
// (lat, lng), used to generate candidates near cell boundaries.
func destination(lat, lng, distanceKm, bearingDeg float64) (float64, float64) {
	angDist := distanceKm / earthRadiusKm
	bearing := toRadians(bearingDeg)
	lat1 := toRadians(lat)
	lng1 := toRadians(lng)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angDist) +
		math.Cos(lat1)*math.Sin(angDist)*math.Cos(bearing))
	lng2 := lng1 + math.Atan2(
		math.Sin(bearing)*math.Sin(angDist)*math.Cos(lat1),
		math.Cos(angDist)-math.Sin(lat1)*math.Sin(lat2),
	)

	return lat2 * 180 / math.Pi, math.Mod(lng2*180/math.Pi+540, 360) - 180
}

func covered(bounds []Bound, hash string) bool {
	for _, b := range bounds {
		if strings.HasPrefix(hash, b.Start) {
			return true
		}
	}
	return false
}

func TestQueryBoundsCoverDisc(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	centers := []struct {
		lat, lng float64
	}{
		{44.9778, -93.2650}, // Minneapolis
		{0.0, 0.0},          // equator / prime meridian
		{51.5074, -0.1278},  // London, straddles the meridian
		{-33.8688, 151.2093},
		{64.1466, -21.9426}, // high latitude
		{0.5, 179.95},       // date line
	}
	radii := []float64{0.5, 2, 10, 50}

	for _, center := range centers {
		for _, radius := range radii {
			bounds := QueryBounds(center.lat, center.lng, radius)
			require.NotEmpty(t, bounds)
			assert.LessOrEqual(t, len(bounds), 9)

			for i := 0; i < 200; i++ {
				d := rng.Float64() * radius
				bearing := rng.Float64() * 360
				lat, lng := destination(center.lat, center.lng, d, bearing)
				hash := Encode(lat, lng)

				assert.True(t, covered(bounds, hash),
					"point at %.4f,%.4f (%.2fkm from %.4f,%.4f, radius %.1f) not covered",
					lat, lng, d, center.lat, center.lng, radius)
			}
		}
	}
}

func TestQueryBoundsAreSortedAndDistinct(t *testing.T) {
	bounds := QueryBounds(44.9778, -93.2650, 5)

	seen := make(map[string]bool)
	for i, b := range bounds {
		assert.False(t, seen[b.Start], "duplicate bound %q", b.Start)
		seen[b.Start] = true
		assert.Less(t, b.Start, b.End)
		if i > 0 {
			assert.Less(t, bounds[i-1].Start, b.Start)
		}
	}
}

func TestDistance(t *testing.T) {
	// Minneapolis to Saint Paul is roughly 15km.
	d := Distance(44.9778, -93.2650, 44.9537, -93.0900)
	assert.InDelta(t, 14.0, d, 2.0)

	assert.Zero(t, Distance(44.9778, -93.2650, 44.9778, -93.2650))

	forward := Distance(40.7128, -74.0060, 51.5074, -0.1278)
	backward := Distance(51.5074, -0.1278, 40.7128, -74.0060)
	assert.InDelta(t, forward, backward, 1e-9)

	// New York to London, well-known reference distance.
	assert.InDelta(t, 5570, forward, 30)
}

func TestDestinationRoundTrip(t *testing.T) {
	lat, lng := destination(44.9778, -93.2650, 3.0, 75.0)
	assert.InDelta(t, 3.0, Distance(44.9778, -93.2650, lat, lng), 0.01)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(44.9778, -93.2650))
	assert.True(t, ValidCoordinates(-90, 180))
	assert.False(t, ValidCoordinates(90.1, 0))
	assert.False(t, ValidCoordinates(0, -180.5))
}
