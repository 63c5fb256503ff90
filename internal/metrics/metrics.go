package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	RoutesAnnotated prometheus.Counter
	AnnotateErrors  prometheus.Counter
	SegmentsTotal   *prometheus.CounterVec // category label

	ProviderRequests prometheus.Counter
	ProviderErrors   prometheus.Counter

	AnnotateDuration prometheus.Histogram
	ProviderDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RoutesAnnotated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sunroute_routes_annotated_total",
			Help: "Total routes annotated successfully.",
		}),
		AnnotateErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sunroute_annotate_errors_total",
			Help: "Total failed route annotations.",
		}),
		SegmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sunroute_segments_total",
			Help: "Total segments produced, by glare category.",
		}, []string{"category"}),
		ProviderRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sunroute_provider_requests_total",
			Help: "Total routing provider requests.",
		}),
		ProviderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sunroute_provider_errors_total",
			Help: "Total routing provider failures.",
		}),
		AnnotateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sunroute_annotate_duration_seconds",
			Help:    "Duration of route annotation.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sunroute_provider_duration_seconds",
			Help:    "Duration of routing provider calls.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}

	reg.MustRegister(
		c.RoutesAnnotated, c.AnnotateErrors, c.SegmentsTotal,
		c.ProviderRequests, c.ProviderErrors,
		c.AnnotateDuration, c.ProviderDuration,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}

// ObserveAnnotate records one annotation attempt.
func (c *Collector) ObserveAnnotate(d time.Duration, err error) {
	if c == nil {
		return
	}
	c.AnnotateDuration.Observe(d.Seconds())
	if err != nil {
		c.AnnotateErrors.Inc()
		return
	}
	c.RoutesAnnotated.Inc()
}

// ObserveProvider records one routing provider call.
func (c *Collector) ObserveProvider(d time.Duration, err error) {
	if c == nil {
		return
	}
	c.ProviderRequests.Inc()
	c.ProviderDuration.Observe(d.Seconds())
	if err != nil {
		c.ProviderErrors.Inc()
	}
}

// CountSegment bumps the per-category segment counter.
func (c *Collector) CountSegment(category string) {
	if c == nil {
		return
	}
	c.SegmentsTotal.WithLabelValues(category).Inc()
}
