package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sunroute/internal/geo"
	"sunroute/internal/glare"
)

type Config struct {
	ORSAPIKey  string
	ORSBaseURL string

	Start     geo.Coordinate
	End       geo.Coordinate
	Departure time.Time

	Thresholds glare.Thresholds
	Workers    int

	OutputHTML string
	Title      string

	ServeAddr   string
	MetricsAddr string
	HTTPTimeout time.Duration
}

// Load reads configuration from .env and the environment. START/END
// are required for the one-shot mode only; with SERVE_ADDR set the
// route endpoints come per request.
func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.ORSAPIKey = firstNonEmpty(
		os.Getenv("ORS_API_KEY"),
		os.Getenv("OPENROUTESERVICE_API_KEY"),
	)
	if cfg.ORSAPIKey == "" {
		return nil, errors.New("ORS_API_KEY must be set")
	}
	cfg.ORSBaseURL = getenvDefault("ORS_BASE_URL", "https://api.openrouteservice.org")

	cfg.ServeAddr = os.Getenv("SERVE_ADDR")
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	if v := os.Getenv("START"); v != "" {
		c, err := ParseLatLon(v)
		if err != nil {
			return nil, fmt.Errorf("invalid START: %w", err)
		}
		cfg.Start = c
	} else if cfg.ServeAddr == "" {
		return nil, errors.New("START must be set as \"lat,lon\"")
	}
	if v := os.Getenv("END"); v != "" {
		c, err := ParseLatLon(v)
		if err != nil {
			return nil, fmt.Errorf("invalid END: %w", err)
		}
		cfg.End = c
	} else if cfg.ServeAddr == "" {
		return nil, errors.New("END must be set as \"lat,lon\"")
	}

	if v := os.Getenv("DEPARTURE"); v != "" {
		dt, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("invalid DEPARTURE (want RFC3339): %q", v)
		}
		cfg.Departure = dt.UTC()
	} else {
		cfg.Departure = time.Now().UTC()
	}

	cfg.Thresholds = glare.DefaultThresholds
	if v := os.Getenv("GLARE_FRONT_ANGLE_DEG"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f >= 90 {
			return nil, fmt.Errorf("invalid GLARE_FRONT_ANGLE_DEG: %q", v)
		}
		cfg.Thresholds.FrontAngle = f
	}
	if v := os.Getenv("SUN_HORIZON_DEG"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < -90 || f > 90 {
			return nil, fmt.Errorf("invalid SUN_HORIZON_DEG: %q", v)
		}
		cfg.Thresholds.HorizonElevation = f
	}

	if v := os.Getenv("ANNOTATE_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid ANNOTATE_WORKERS: %q", v)
		}
		cfg.Workers = n
	}

	if v := os.Getenv("HTTP_TIMEOUT_SEC"); v != "" {
		sec, err := strconv.Atoi(v)
		if err != nil || sec <= 0 {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT_SEC: %q", v)
		}
		cfg.HTTPTimeout = time.Duration(sec) * time.Second
	} else {
		cfg.HTTPTimeout = 15 * time.Second
	}

	cfg.OutputHTML = getenvDefault("OUTPUT_HTML", "sunroute.html")
	cfg.Title = getenvDefault("TITLE", "Sun glare route")

	return cfg, nil
}

// ParseLatLon parses a "lat,lon" pair in degrees.
func ParseLatLon(s string) (geo.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.Coordinate{}, fmt.Errorf("want \"lat,lon\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("bad latitude %q", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("bad longitude %q", parts[1])
	}
	c := geo.Coordinate{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		return geo.Coordinate{}, err
	}
	return c, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
