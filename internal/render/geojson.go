package render

import (
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"sunroute/internal/annotate"
	"sunroute/internal/geo"
	"sunroute/internal/glare"
	"sunroute/internal/solar"
)

// GeoJSON encodes the annotated segments as a FeatureCollection with
// one LineString feature per segment. Category, color, bearing and the
// sampled sun position travel along as properties so any map client
// can style the route without re-running the pipeline.
func GeoJSON(segs []annotate.Segment) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, s := range segs {
		f := geojson.NewFeature(orb.LineString{
			{s.Start.Coord.Lon, s.Start.Coord.Lat},
			{s.End.Coord.Lon, s.End.Coord.Lat},
		})
		f.Properties = geojson.Properties{
			"index":     i,
			"category":  string(s.Category),
			"color":     s.Color(),
			"bearing":   round1(s.Bearing),
			"azimuth":   round1(s.Sun.Azimuth),
			"elevation": round1(s.Sun.Elevation),
			"start_eta": s.Start.ETA.Format(time.RFC3339),
			"end_eta":   s.End.ETA.Format(time.RFC3339),
		}
		fc.Append(f)
	}
	return fc
}

// SunTrajectory samples the sun every step while it is above the
// horizon, projected as map points offset from origin along the sun's
// azimuth, so the map can show where the sun stands over the day.
func SunTrajectory(origin geo.Coordinate, from time.Time, step time.Duration, samples int) []geo.Coordinate {
	const offsetDeg = 0.1
	var pts []geo.Coordinate
	for i := 0; i < samples; i++ {
		pos, err := solar.At(origin, from.Add(time.Duration(i)*step))
		if err != nil || pos.Elevation <= 0 {
			continue
		}
		az := pos.Azimuth * math.Pi / 180
		pts = append(pts, geo.Coordinate{
			Lat: origin.Lat + offsetDeg*math.Cos(az),
			Lon: origin.Lon + offsetDeg*math.Sin(az),
		})
	}
	return pts
}

// Summary aggregates the glare mix of a route: the share of route
// distance spent in each category.
type Summary struct {
	TotalDistance float64                    // meters
	Shares        map[glare.Category]float64 // fraction of distance, 0..1
}

func Summarize(segs []annotate.Segment) Summary {
	sum := Summary{Shares: make(map[glare.Category]float64)}
	for _, s := range segs {
		d := s.End.CumDist - s.Start.CumDist
		sum.TotalDistance += d
		sum.Shares[s.Category] += d
	}
	if sum.TotalDistance > 0 {
		for c := range sum.Shares {
			sum.Shares[c] /= sum.TotalDistance
		}
	}
	return sum
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
