package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"sunroute/internal/annotate"
	"sunroute/internal/config"
	"sunroute/internal/metrics"
	"sunroute/internal/render"
	"sunroute/internal/routing"
	"sunroute/internal/server"
)

func main() {
	// Load configuration from .env and environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Root context with cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Metrics setup
	var mcol *metrics.Collector
	if cfg.MetricsAddr != "" {
		mcol = metrics.NewCollector()
		srv := mcol.Serve(cfg.MetricsAddr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	client := routing.NewClient(cfg.ORSBaseURL, cfg.ORSAPIKey, cfg.HTTPTimeout)
	annotator := annotate.New(cfg.Thresholds, cfg.Workers)

	if cfg.ServeAddr != "" {
		api := server.New(client, annotator, mcol)
		srv := api.Serve(cfg.ServeAddr)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return
	}

	if err := runOnce(ctx, cfg, client, annotator, mcol); err != nil {
		log.Fatalf("error: %v", err)
	}
}

// runOnce is the single-shot pipeline: fetch the route, annotate it,
// write the HTML map and log the glare summary.
func runOnce(ctx context.Context, cfg *config.Config, client *routing.Client, annotator *annotate.Annotator, mcol *metrics.Collector) error {
	log.Printf("fetching route %s -> %s", cfg.Start, cfg.End)
	t0 := time.Now()
	provided, err := client.Directions(ctx, cfg.Start, cfg.End)
	mcol.ObserveProvider(time.Since(t0), err)
	if err != nil {
		return err
	}
	log.Printf("route: %.1f km, %s, %d waypoints",
		provided.TotalDistance/1000, provided.TotalDuration.Round(time.Second), len(provided.Waypoints))

	t0 = time.Now()
	segs, err := annotator.Annotate(provided.Waypoints, cfg.Departure, provided.TotalDuration)
	mcol.ObserveAnnotate(time.Since(t0), err)
	if err != nil {
		return err
	}
	for _, seg := range segs {
		mcol.CountSegment(string(seg.Category))
	}

	sum := render.Summarize(segs)
	for cat, share := range sum.Shares {
		log.Printf("glare %-7s %5.1f%%", cat, share*100)
	}

	if err := render.WriteHTMLFile(cfg.OutputHTML, segs, cfg.Title); err != nil {
		return err
	}
	log.Printf("map written to %s", cfg.OutputHTML)
	return nil
}
