// Package routing fetches driving routes from OpenRouteService and
// adapts them into the waypoint sequence the annotator consumes.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"sunroute/internal/geo"
	"sunroute/internal/route"
)

const DefaultBaseURL = "https://api.openrouteservice.org"

// Route is the provider's answer: the route geometry with cumulative
// distances plus the provider's own distance/duration totals.
type Route struct {
	Waypoints     []route.Waypoint
	TotalDistance float64 // meters
	TotalDuration time.Duration
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Directions requests a driving-car route from start to end as GeoJSON.
// Consecutive duplicate geometry points are merged here so downstream
// bearings are always defined; cumulative distances are accumulated
// from the geometry since the provider only reports totals.
func (c *Client) Directions(ctx context.Context, start, end geo.Coordinate) (*Route, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if err := end.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]any{
		// ORS wants lon,lat order
		"coordinates": [][]float64{{start.Lon, start.Lat}, {end.Lon, end.Lat}},
	})
	if err != nil {
		return nil, err
	}

	u := c.baseURL + "/v2/directions/driving-car/geojson"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ors request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("ors response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ors status %d: %s", resp.StatusCode, truncate(data, 200))
	}

	return parseDirections(data)
}

func parseDirections(data []byte) (*Route, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("ors geojson: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("ors geojson: no route features")
	}
	feat := fc.Features[0]

	line, ok := feat.Geometry.(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("ors geojson: unexpected geometry %T", feat.Geometry)
	}
	if len(line) < 2 {
		return nil, fmt.Errorf("ors geojson: route has %d point(s)", len(line))
	}

	r := &Route{}
	if summary, ok := feat.Properties["summary"].(map[string]any); ok {
		if d, ok := summary["distance"].(float64); ok {
			r.TotalDistance = d
		}
		if d, ok := summary["duration"].(float64); ok {
			r.TotalDuration = time.Duration(d * float64(time.Second))
		}
	}
	if r.TotalDuration <= 0 {
		return nil, fmt.Errorf("ors geojson: missing route duration")
	}

	cum := 0.0
	for _, pt := range line {
		c := geo.Coordinate{Lat: pt.Lat(), Lon: pt.Lon()}
		if n := len(r.Waypoints); n > 0 {
			prev := r.Waypoints[n-1].Coord
			if c == prev {
				continue // merge duplicate geometry points
			}
			cum += geo.Distance(prev, c)
		}
		r.Waypoints = append(r.Waypoints, route.Waypoint{Coord: c, CumDist: cum})
	}
	if len(r.Waypoints) < 2 {
		return nil, fmt.Errorf("ors geojson: route collapsed to a single point")
	}
	if r.TotalDistance == 0 {
		r.TotalDistance = cum
	}
	return r, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
