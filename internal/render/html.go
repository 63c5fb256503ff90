// Package render turns annotated segments into the deliverables of the
// pipeline: a GeoJSON document and a standalone Leaflet HTML map.
package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"sunroute/internal/annotate"
	"sunroute/internal/glare"
)

var legendOrder = []struct {
	Cat   glare.Category
	Label string
}{
	{glare.Ahead, "sun ahead"},
	{glare.Right, "sun to the right"},
	{glare.Left, "sun to the left"},
	{glare.Behind, "sun behind"},
	{glare.NoSun, "sun down"},
}

type legendEntry struct {
	Label   string
	Color   string
	Percent float64
}

type page struct {
	Title          string
	Departure      string
	Sunrise        string
	Sunset         string
	DistanceKm     float64
	Legend         []legendEntry
	RouteJSON      template.JS
	TrajectoryJSON template.JS
}

// WriteHTML renders the annotated route as a self-contained Leaflet
// map: one colored polyline per segment, a legend with the per-category
// distance shares, the day's sun trajectory around the start point and
// the sunrise/sunset times at the start coordinate.
func WriteHTML(w io.Writer, segs []annotate.Segment, title string) error {
	if len(segs) == 0 {
		return fmt.Errorf("render: no segments")
	}
	start := segs[0].Start
	depart := start.ETA

	routeJSON, err := json.Marshal(GeoJSON(segs))
	if err != nil {
		return fmt.Errorf("render: encode route: %w", err)
	}

	traj := SunTrajectory(start.Coord, depart, 15*time.Minute, 64)
	trajPts := make([][2]float64, len(traj))
	for i, p := range traj {
		trajPts[i] = [2]float64{p.Lat, p.Lon}
	}
	trajJSON, err := json.Marshal(trajPts)
	if err != nil {
		return fmt.Errorf("render: encode trajectory: %w", err)
	}

	sum := Summarize(segs)
	var legend []legendEntry
	for _, e := range legendOrder {
		legend = append(legend, legendEntry{
			Label:   e.Label,
			Color:   e.Cat.Color(),
			Percent: sum.Shares[e.Cat] * 100,
		})
	}

	rise, set := sunrise.SunriseSunset(
		start.Coord.Lat, start.Coord.Lon, depart.Year(), depart.Month(), depart.Day())

	return pageTmpl.Execute(w, page{
		Title:          title,
		Departure:      depart.Format("2006-01-02 15:04 MST"),
		Sunrise:        rise.Format("15:04 MST"),
		Sunset:         set.Format("15:04 MST"),
		DistanceKm:     sum.TotalDistance / 1000,
		Legend:         legend,
		RouteJSON:      template.JS(routeJSON),
		TrajectoryJSON: template.JS(trajJSON),
	})
}

// WriteHTMLFile writes the map to path, replacing any previous run.
func WriteHTMLFile(path string, segs []annotate.Segment, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteHTML(f, segs, title); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var pageTmpl = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
  html, body, #map { height: 100%; margin: 0; }
  .panel {
    position: absolute; top: 10px; right: 10px; z-index: 1000;
    background: #fff; padding: 10px 14px; border-radius: 4px;
    box-shadow: 0 1px 4px rgba(0,0,0,.3); font: 13px/1.5 sans-serif;
  }
  .swatch { display: inline-block; width: 14px; height: 4px; margin-right: 6px; vertical-align: middle; }
</style>
</head>
<body>
<div id="map"></div>
<div class="panel">
  <b>{{.Title}}</b><br>
  departure {{.Departure}}<br>
  {{printf "%.1f" .DistanceKm}} km &middot; sunrise {{.Sunrise}} &middot; sunset {{.Sunset}}<br>
  {{range .Legend}}<span class="swatch" style="background:{{.Color}}"></span>{{.Label}}: {{printf "%.1f" .Percent}}%<br>{{end}}
</div>
<script>
var route = {{.RouteJSON}};
var trajectory = {{.TrajectoryJSON}};

var map = L.map('map');
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

var routeLayer = L.geoJSON(route, {
  style: function (f) { return { color: f.properties.color, weight: 5 }; }
}).bindPopup(function (layer) {
  var p = layer.feature.properties;
  return p.category + '<br>bearing ' + p.bearing + '&deg;, sun azimuth ' + p.azimuth +
    '&deg;, elevation ' + p.elevation + '&deg;<br>' + p.start_eta;
}).addTo(map);
map.fitBounds(routeLayer.getBounds(), { padding: [30, 30] });

if (trajectory.length > 1) {
  L.polyline(trajectory, { color: '#f7d154', weight: 3, dashArray: '6 6' }).addTo(map);
}

var pts = route.features;
if (pts.length > 0) {
  var first = pts[0].geometry.coordinates[0];
  var last = pts[pts.length - 1].geometry.coordinates[1];
  L.marker([first[1], first[0]]).addTo(map).bindPopup('start');
  L.marker([last[1], last[0]]).addTo(map).bindPopup('end');
}
</script>
</body>
</html>
`))
