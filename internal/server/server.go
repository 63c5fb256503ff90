// Package server exposes the annotation pipeline as a small HTTP API:
// GET /route returns the glare-annotated route as GeoJSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"sunroute/internal/annotate"
	"sunroute/internal/config"
	"sunroute/internal/geo"
	"sunroute/internal/metrics"
	"sunroute/internal/render"
	"sunroute/internal/route"
	"sunroute/internal/routing"
)

// RouteFetcher is the routing-provider dependency; satisfied by
// *routing.Client.
type RouteFetcher interface {
	Directions(ctx context.Context, start, end geo.Coordinate) (*routing.Route, error)
}

type Server struct {
	fetcher   RouteFetcher
	annotator *annotate.Annotator
	metrics   *metrics.Collector
}

func New(fetcher RouteFetcher, annotator *annotate.Annotator, m *metrics.Collector) *Server {
	return &Server{fetcher: fetcher, annotator: annotator, metrics: m}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /route", s.handleRoute)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Serve starts the API server on addr.
func (s *Server) Serve(addr string) *http.Server {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("api server error: %v", err)
		}
	}()
	log.Printf("api listening on %s", addr)
	return srv
}

// handleRoute answers GET /route?from=lat,lon&to=lat,lon&depart=RFC3339.
// depart defaults to now.
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := config.ParseLatLon(q.Get("from"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid from: "+err.Error())
		return
	}
	to, err := config.ParseLatLon(q.Get("to"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid to: "+err.Error())
		return
	}
	depart := time.Now().UTC()
	if v := q.Get("depart"); v != "" {
		depart, err = time.Parse(time.RFC3339, v)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid depart, want RFC3339")
			return
		}
		depart = depart.UTC()
	}

	t0 := time.Now()
	provided, err := s.fetcher.Directions(r.Context(), from, to)
	s.metrics.ObserveProvider(time.Since(t0), err)
	if err != nil {
		log.Printf("provider error: %v", err)
		httpError(w, http.StatusBadGateway, "routing provider failed")
		return
	}

	t0 = time.Now()
	segs, err := s.annotator.Annotate(provided.Waypoints, depart, provided.TotalDuration)
	s.metrics.ObserveAnnotate(time.Since(t0), err)
	if err != nil {
		log.Printf("annotate error: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, route.ErrDegenerateRoute) || errors.Is(err, geo.ErrInvalidCoordinate) {
			status = http.StatusUnprocessableEntity
		}
		httpError(w, status, err.Error())
		return
	}
	for _, seg := range segs {
		s.metrics.CountSegment(string(seg.Category))
	}

	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(render.GeoJSON(segs)); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func httpError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
