// Package solar computes the topocentric position of the sun for a
// coordinate and instant. The apparent right ascension/declination come
// from the Meeus algorithms; the hour-angle transform to azimuth and
// elevation is done here so the compass convention stays explicit:
// azimuth is degrees clockwise from true north, elevation is degrees
// above the horizon.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"sunroute/internal/geo"
)

// Position is the sun's direction as seen from a point on the ground.
type Position struct {
	Azimuth   float64 `json:"azimuth"`   // degrees, [0,360), clockwise from north
	Elevation float64 `json:"elevation"` // degrees, [-90,90], positive above horizon
}

// At returns the sun's position at c for the given instant. The instant
// is converted to UTC; the computation itself is pure and stateless.
func At(c geo.Coordinate, at time.Time) (Position, error) {
	if err := c.Validate(); err != nil {
		return Position{}, err
	}

	jd := julian.TimeToJD(at.UTC())
	ra, dec := solar.ApparentEquatorial(jd)

	// Local sidereal angle; east longitude is positive.
	lst := sidereal.Apparent(jd).Angle().Rad() + toRad(c.Lon)
	ha := lst - ra.Rad()

	lat := toRad(c.Lat)
	decR := dec.Rad()

	sinEl := math.Sin(lat)*math.Sin(decR) + math.Cos(lat)*math.Cos(decR)*math.Cos(ha)
	el := math.Asin(clamp(sinEl, -1, 1))

	// Meeus measures azimuth from south, westward positive; rotate to
	// the compass convention (from north, clockwise).
	az := math.Atan2(math.Sin(ha), math.Cos(ha)*math.Sin(lat)-math.Tan(decR)*math.Cos(lat))
	azDeg := math.Mod(toDeg(az)+180, 360)

	return Position{Azimuth: azDeg, Elevation: toDeg(el)}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toRad(d float64) float64 { return d * math.Pi / 180 }
func toDeg(r float64) float64 { return r * 180 / math.Pi }
