// Package glare classifies the sun's direction relative to the
// direction of travel.
package glare

import (
	"math"

	"sunroute/internal/solar"
)

// Category is the discrete glare classification for a route segment.
type Category string

const (
	Ahead  Category = "ahead"  // sun in the driver's face
	Behind Category = "behind" // sun in the mirrors
	Left   Category = "left"
	Right  Category = "right"
	NoSun  Category = "no_sun" // sun at or below the horizon
)

// colors is the fixed category -> display color table used by the
// renderers.
var colors = map[Category]string{
	Ahead:  "#e8442e", // red
	Behind: "#2eb872", // green
	Left:   "#f2a93c", // orange
	Right:  "#3a7bd5", // blue
	NoSun:  "#7d7d7d", // gray
}

// Color returns the display color for c.
func (c Category) Color() string { return colors[c] }

// Thresholds are the tunable classification angles.
type Thresholds struct {
	// FrontAngle is the half-width in degrees of the Ahead cone; the
	// Behind cone is its mirror (180-FrontAngle). Default 45.
	FrontAngle float64
	// HorizonElevation is the elevation in degrees at or below which
	// the sun is treated as down. Default 0.
	HorizonElevation float64
}

// DefaultThresholds split the compass into four equal quadrants.
var DefaultThresholds = Thresholds{FrontAngle: 45, HorizonElevation: 0}

// Classify maps a travel bearing and a sun position to a Category.
// The relative angle delta = azimuth - bearing is normalized into
// (-180,180]; boundary values (exactly ±FrontAngle, ±(180-FrontAngle))
// belong to Ahead/Behind.
func Classify(travelBearing float64, pos solar.Position, th Thresholds) Category {
	if pos.Elevation <= th.HorizonElevation {
		return NoSun
	}
	delta := normalize(pos.Azimuth - travelBearing)
	abs := math.Abs(delta)
	switch {
	case abs <= th.FrontAngle:
		return Ahead
	case abs >= 180-th.FrontAngle:
		return Behind
	case delta < 0:
		return Left
	default:
		return Right
	}
}

// normalize folds an angle in degrees into (-180,180].
func normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
