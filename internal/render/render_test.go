package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunroute/internal/annotate"
	"sunroute/internal/geo"
	"sunroute/internal/glare"
	"sunroute/internal/route"
	"sunroute/internal/solar"
)

func seg(fromLat, fromLon, toLat, toLon, cumFrom, cumTo float64, eta time.Time, cat glare.Category) annotate.Segment {
	return annotate.Segment{
		Start: route.TimestampedWaypoint{
			Waypoint: route.Waypoint{Coord: geo.Coordinate{Lat: fromLat, Lon: fromLon}, CumDist: cumFrom},
			ETA:      eta,
		},
		End: route.TimestampedWaypoint{
			Waypoint: route.Waypoint{Coord: geo.Coordinate{Lat: toLat, Lon: toLon}, CumDist: cumTo},
			ETA:      eta.Add(5 * time.Minute),
		},
		Bearing:  45,
		Sun:      solar.Position{Azimuth: 120, Elevation: 25},
		Category: cat,
	}
}

func testSegments() []annotate.Segment {
	depart := time.Date(2024, 6, 21, 9, 0, 0, 0, time.UTC)
	return []annotate.Segment{
		seg(50.0, 14.0, 50.1, 14.1, 0, 7500, depart, glare.Ahead),
		seg(50.1, 14.1, 50.2, 14.2, 7500, 10000, depart.Add(10*time.Minute), glare.Right),
	}
}

func TestGeoJSON(t *testing.T) {
	fc := GeoJSON(testSegments())
	require.Len(t, fc.Features, 2)

	p := fc.Features[0].Properties
	assert.Equal(t, "ahead", p["category"])
	assert.Equal(t, glare.Ahead.Color(), p["color"])
	assert.Equal(t, 45.0, p["bearing"])
	assert.Equal(t, 120.0, p["azimuth"])
	assert.Equal(t, "2024-06-21T09:00:00Z", p["start_eta"])
}

func TestSummarizeDistanceWeighted(t *testing.T) {
	sum := Summarize(testSegments())
	assert.Equal(t, 10000.0, sum.TotalDistance)
	assert.InDelta(t, 0.75, sum.Shares[glare.Ahead], 1e-9)
	assert.InDelta(t, 0.25, sum.Shares[glare.Right], 1e-9)
	assert.Zero(t, sum.Shares[glare.NoSun])
}

func TestSunTrajectory(t *testing.T) {
	origin := geo.Coordinate{Lat: 50.0, Lon: 14.0}

	day := SunTrajectory(origin, time.Date(2024, 6, 21, 9, 0, 0, 0, time.UTC), 15*time.Minute, 16)
	assert.NotEmpty(t, day)
	for _, p := range day {
		assert.NoError(t, p.Validate())
		assert.NotEqual(t, origin, p)
	}

	night := SunTrajectory(origin, time.Date(2024, 6, 21, 22, 30, 0, 0, time.UTC), 15*time.Minute, 8)
	assert.Empty(t, night)
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	err := WriteHTML(&buf, testSegments(), "Liberec to Hradec")
	require.NoError(t, err)

	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "Liberec to Hradec")
	assert.Contains(t, html, glare.Ahead.Color())
	assert.Contains(t, html, "sun ahead")
	assert.Contains(t, html, "FeatureCollection")
	assert.Contains(t, html, "leaflet")
}

func TestWriteHTMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteHTML(&buf, nil, "empty"))
}
