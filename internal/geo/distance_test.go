package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceIsSymmetric(t *testing.T) {
	pairs := [][2]Coordinate{
		{{Lat: 52.4625, Lng: -1.8848}, {Lat: 51.5385, Lng: 0.0342}},
		{{Lat: -33.8688, Lng: 151.2093}, {Lat: 40.7128, Lng: -74.0060}},
		{{Lat: 0, Lng: 179.9}, {Lat: 0, Lng: -179.9}},
		{{Lat: 89.9, Lng: 10}, {Lat: 89.9, Lng: -170}},
	}
	for _, p := range pairs {
		assert.Equal(t, Distance(p[0], p[1]), Distance(p[1], p[0]))
	}
}

func TestDistanceSamePointIsZero(t *testing.T) {
	for _, c := range []Coordinate{{}, {Lat: 52.4625, Lng: -1.8848}, {Lat: 90, Lng: 180}, {Lat: -90, Lng: -180}} {
		assert.Zero(t, Distance(c, c))
	}
}

func TestDistanceBirminghamToLondon(t *testing.T) {
	birmingham := Coordinate{Lat: 52.4625, Lng: -1.8848}
	stratford := Coordinate{Lat: 51.5385, Lng: 0.0342}

	assert.InDelta(t, 103.6, Distance(birmingham, stratford), 1.0)
}

func TestDistanceAntipodalAndPoles(t *testing.T) {
	halfCircumference := math.Pi * EarthRadiusMiles

	d := Distance(Coordinate{Lat: 0, Lng: 0}, Coordinate{Lat: 0, Lng: 180})
	require.False(t, math.IsNaN(d))
	assert.InDelta(t, halfCircumference, d, 0.001)

	d = Distance(Coordinate{Lat: 90, Lng: 0}, Coordinate{Lat: -90, Lng: 0})
	require.False(t, math.IsNaN(d))
	assert.InDelta(t, halfCircumference, d, 0.001)

	d = Distance(Coordinate{Lat: 90, Lng: 45}, Coordinate{Lat: 90, Lng: -135})
	require.False(t, math.IsNaN(d))
	assert.InDelta(t, 0, d, 1e-6)
}

func TestDistanceNearIdenticalPoints(t *testing.T) {
	a := Coordinate{Lat: 51.5, Lng: -0.12}
	b := Coordinate{Lat: 51.5 + 1e-12, Lng: -0.12}
	d := Distance(a, b)
	require.False(t, math.IsNaN(d))
	assert.Less(t, d, 1e-6)
}

func TestCoordinateValidate(t *testing.T) {
	assert.NoError(t, Coordinate{Lat: 90, Lng: -180}.Validate())
	assert.Error(t, Coordinate{Lat: 90.1, Lng: 0}.Validate())
	assert.Error(t, Coordinate{Lat: 0, Lng: 180.5}.Validate())
	assert.Error(t, Coordinate{Lat: math.NaN(), Lng: 0}.Validate())
}
