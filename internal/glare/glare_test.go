package glare

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sunroute/internal/solar"
)

func up(azimuth float64) solar.Position {
	return solar.Position{Azimuth: azimuth, Elevation: 30}
}

func TestClassifyQuadrants(t *testing.T) {
	cases := []struct {
		name    string
		bearing float64
		azimuth float64
		want    Category
	}{
		{"dead ahead", 0, 0, Ahead},
		{"dead behind", 0, 180, Behind},
		{"due right", 90, 180, Right},
		{"due left", 90, 0, Left},
		{"ahead across north", 350, 10, Ahead},
		{"left across north", 10, 300, Left},
		{"right wrapped", 270, 0, Right},
		{"behind wrapped", 10, 200, Behind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.bearing, up(tc.azimuth), DefaultThresholds)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyBoundariesFavorAheadBehind(t *testing.T) {
	// delta exactly +45/-45 is Ahead, exactly +135/-135 is Behind
	assert.Equal(t, Ahead, Classify(0, up(45), DefaultThresholds))
	assert.Equal(t, Ahead, Classify(0, up(315), DefaultThresholds)) // delta -45
	assert.Equal(t, Behind, Classify(0, up(135), DefaultThresholds))
	assert.Equal(t, Behind, Classify(0, up(225), DefaultThresholds)) // delta -135

	// just inside the side bands
	assert.Equal(t, Right, Classify(0, up(45.1), DefaultThresholds))
	assert.Equal(t, Right, Classify(0, up(134.9), DefaultThresholds))
	assert.Equal(t, Left, Classify(0, up(314.9), DefaultThresholds))
	assert.Equal(t, Left, Classify(0, up(225.1), DefaultThresholds))
}

func TestClassifyNoSun(t *testing.T) {
	down := solar.Position{Azimuth: 90, Elevation: 0}
	assert.Equal(t, NoSun, Classify(0, down, DefaultThresholds))

	below := solar.Position{Azimuth: 90, Elevation: -5}
	assert.Equal(t, NoSun, Classify(0, below, DefaultThresholds))

	// a raised horizon threshold hides a low sun
	th := Thresholds{FrontAngle: 45, HorizonElevation: 10}
	low := solar.Position{Azimuth: 90, Elevation: 8}
	assert.Equal(t, NoSun, Classify(0, low, th))
}

func TestClassifyCustomFrontAngle(t *testing.T) {
	th := Thresholds{FrontAngle: 60, HorizonElevation: 0}
	assert.Equal(t, Ahead, Classify(0, up(55), th))
	assert.Equal(t, Behind, Classify(0, up(125), th))
	assert.Equal(t, Right, Classify(0, up(90), th))
}

func TestClassifyTotal(t *testing.T) {
	// every bearing/azimuth pair maps to exactly one category
	for b := 0.0; b < 360; b += 7.5 {
		for a := 0.0; a < 360; a += 7.5 {
			got := Classify(b, up(a), DefaultThresholds)
			assert.Contains(t, []Category{Ahead, Behind, Left, Right}, got)
		}
	}
}

func TestCategoryColors(t *testing.T) {
	for _, c := range []Category{Ahead, Behind, Left, Right, NoSun} {
		assert.NotEmpty(t, c.Color())
	}
}
