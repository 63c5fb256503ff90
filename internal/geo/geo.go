// Package geo holds the coordinate value type and the spherical-earth
// helpers (initial bearing, haversine distance) the rest of the pipeline
// is built on.
package geo

import (
	"errors"
	"fmt"
	"math"
)

const earthRadiusM = 6371000.0

var (
	// ErrInvalidCoordinate reports a latitude outside [-90,90] or a
	// longitude outside [-180,180].
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrCoincidentPoints reports two identical coordinates, for which
	// a travel bearing is undefined.
	ErrCoincidentPoints = errors.New("coincident points")
)

// Coordinate is an immutable geographic point in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: lat=%g lon=%g", ErrInvalidCoordinate, c.Lat, c.Lon)
	}
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lon)
}

// Bearing returns the great-circle initial bearing from p1 to p2 in
// degrees, [0,360) clockwise from true north.
func Bearing(p1, p2 Coordinate) (float64, error) {
	if err := p1.Validate(); err != nil {
		return 0, err
	}
	if err := p2.Validate(); err != nil {
		return 0, err
	}
	if p1 == p2 {
		return 0, fmt.Errorf("%w: %s", ErrCoincidentPoints, p1)
	}

	lat1 := toRad(p1.Lat)
	lat2 := toRad(p2.Lat)
	dLon := toRad(p2.Lon - p1.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return math.Mod(toDeg(math.Atan2(y, x))+360, 360), nil
}

// Distance returns the haversine distance between p1 and p2 in meters.
func Distance(p1, p2 Coordinate) float64 {
	dLat := toRad(p2.Lat - p1.Lat)
	dLon := toRad(p2.Lon - p1.Lon)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(p1.Lat))*math.Cos(toRad(p2.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

func toRad(d float64) float64 { return d * math.Pi / 180 }
func toDeg(r float64) float64 { return r * 180 / math.Pi }
