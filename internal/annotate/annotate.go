// Package annotate runs the glare pipeline: timestamp the waypoints,
// then derive per-segment travel bearing, sun position and glare
// category.
package annotate

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"sunroute/internal/geo"
	"sunroute/internal/glare"
	"sunroute/internal/route"
	"sunroute/internal/solar"
)

// Segment is one annotated leg between two consecutive waypoints.
type Segment struct {
	Start    route.TimestampedWaypoint
	End      route.TimestampedWaypoint
	Bearing  float64        // degrees, [0,360)
	Sun      solar.Position // sampled at the segment start
	Category glare.Category
}

// Color returns the display color of the segment's glare category.
func (s Segment) Color() string { return s.Category.Color() }

// Annotator owns the full route computation. It has no state beyond
// its configuration; identical inputs always produce identical output.
type Annotator struct {
	thresholds glare.Thresholds
	workers    int
}

// New returns an Annotator with the given classification thresholds.
// workers bounds the number of goroutines computing segments; values
// below 1 fall back to the CPU count.
func New(th glare.Thresholds, workers int) *Annotator {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Annotator{thresholds: th, workers: workers}
}

// Annotate turns a waypoint sequence plus departure time into N-1
// annotated segments. The sun is sampled at each segment's START
// coordinate and start time; this is a fixed policy so repeated runs
// over the same route are comparable. The first failing segment aborts
// the whole annotation, leaf errors surface unchanged.
func (a *Annotator) Annotate(wps []route.Waypoint, departure time.Time, totalDuration time.Duration) ([]Segment, error) {
	stamped, err := route.EstimateTimes(wps, departure, totalDuration)
	if err != nil {
		return nil, err
	}

	segs := make([]Segment, len(stamped)-1)
	workers := a.workers
	if workers > len(segs) {
		workers = len(segs)
	}
	if workers <= 1 {
		for i := range segs {
			if err := a.buildSegment(stamped, i, segs); err != nil {
				return nil, err
			}
		}
		return segs, nil
	}

	// Segments are independent of each other; split them into one
	// contiguous chunk per worker and assemble results back in order.
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		errIdx = -1
		segErr error
	)
	chunk := (len(segs) + workers - 1) / workers
	for start := 0; start < len(segs); start += chunk {
		end := start + chunk
		if end > len(segs) {
			end = len(segs)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				mu.Lock()
				failed := segErr != nil
				mu.Unlock()
				if failed {
					return
				}
				if err := a.buildSegment(stamped, i, segs); err != nil {
					// prefer the lowest-index failure seen
					mu.Lock()
					if segErr == nil || i < errIdx {
						segErr, errIdx = err, i
					}
					mu.Unlock()
					return
				}
			}
		}(start, end)
	}
	wg.Wait()
	if segErr != nil {
		return nil, segErr
	}
	return segs, nil
}

func (a *Annotator) buildSegment(stamped []route.TimestampedWaypoint, i int, out []Segment) error {
	from := stamped[i]
	to := stamped[i+1]

	bearing, err := geo.Bearing(from.Coord, to.Coord)
	if err != nil {
		return fmt.Errorf("segment %d: %w", i, err)
	}
	sun, err := solar.At(from.Coord, from.ETA)
	if err != nil {
		return fmt.Errorf("segment %d: %w", i, err)
	}

	out[i] = Segment{
		Start:    from,
		End:      to,
		Bearing:  bearing,
		Sun:      sun,
		Category: glare.Classify(bearing, sun, a.thresholds),
	}
	return nil
}
