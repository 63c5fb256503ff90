package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearingCardinal(t *testing.T) {
	origin := Coordinate{Lat: 50.0, Lon: 14.0}

	cases := []struct {
		name string
		to   Coordinate
		want float64
	}{
		{"north", Coordinate{Lat: 51.0, Lon: 14.0}, 0},
		{"south", Coordinate{Lat: 49.0, Lon: 14.0}, 180},
		{"east", Coordinate{Lat: 50.0, Lon: 15.0}, 90},
		{"west", Coordinate{Lat: 50.0, Lon: 13.0}, 270},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Bearing(origin, tc.to)
			require.NoError(t, err)
			// due east/west along a parallel deviates from 90/270 by
			// half the longitude delta times sin(lat)
			assert.InDelta(t, tc.want, b, 0.5)
		})
	}
}

func TestBearingReverseDiffersBy180(t *testing.T) {
	a := Coordinate{Lat: 50.76711, Lon: 15.05619}   // Liberec
	b := Coordinate{Lat: 50.210361, Lon: 15.825211} // Hradec

	fwd, err := Bearing(a, b)
	require.NoError(t, err)
	rev, err := Bearing(b, a)
	require.NoError(t, err)

	diff := math.Mod(rev-fwd+360, 360)
	assert.InDelta(t, 180, diff, 1.0) // great-circle bearing drifts along the arc
	assert.GreaterOrEqual(t, fwd, 0.0)
	assert.Less(t, fwd, 360.0)
}

func TestBearingReverseExactOnMeridian(t *testing.T) {
	a := Coordinate{Lat: 48.0, Lon: 14.0}
	b := Coordinate{Lat: 52.0, Lon: 14.0}

	fwd, err := Bearing(a, b)
	require.NoError(t, err)
	rev, err := Bearing(b, a)
	require.NoError(t, err)

	assert.InDelta(t, 180, math.Mod(rev-fwd+360, 360), 1e-9)
}

func TestBearingCoincidentPoints(t *testing.T) {
	p := Coordinate{Lat: 50.0, Lon: 14.0}
	_, err := Bearing(p, p)
	assert.ErrorIs(t, err, ErrCoincidentPoints)
}

func TestBearingInvalidCoordinate(t *testing.T) {
	_, err := Bearing(Coordinate{Lat: 91, Lon: 0}, Coordinate{Lat: 0, Lon: 0})
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = Bearing(Coordinate{Lat: 0, Lon: 0}, Coordinate{Lat: 0, Lon: -181})
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestDistance(t *testing.T) {
	// one degree of latitude is ~111.2 km
	d := Distance(Coordinate{Lat: 50, Lon: 14}, Coordinate{Lat: 51, Lon: 14})
	assert.InDelta(t, 111195, d, 100)

	assert.Zero(t, Distance(Coordinate{Lat: 50, Lon: 14}, Coordinate{Lat: 50, Lon: 14}))
}
