// Package route defines the waypoint types produced by the routing
// provider and assigns estimated arrival times to them.
package route

import (
	"errors"
	"fmt"
	"math"
	"time"

	"sunroute/internal/geo"
)

var (
	// ErrDegenerateRoute reports a route with fewer than two waypoints
	// or zero total distance.
	ErrDegenerateRoute = errors.New("degenerate route")

	// ErrNonMonotonicDistance reports cumulative distances that do not
	// strictly increase along the waypoint sequence.
	ErrNonMonotonicDistance = errors.New("non-monotonic cumulative distance")
)

// Waypoint is a point along the route with the cumulative distance from
// the route start, as supplied by the routing provider.
type Waypoint struct {
	Coord   geo.Coordinate
	CumDist float64 // meters from route start
}

// TimestampedWaypoint is a Waypoint with its estimated arrival time.
type TimestampedWaypoint struct {
	Waypoint
	ETA time.Time // UTC
}

// EstimateTimes assigns an arrival time to every waypoint by linear
// interpolation over the cumulative-distance fraction of the provider's
// total duration. The first waypoint gets exactly the departure time,
// the last departure+totalDuration; a constant average speed is assumed
// over the whole route, there is no per-segment speed model.
func EstimateTimes(wps []Waypoint, departure time.Time, totalDuration time.Duration) ([]TimestampedWaypoint, error) {
	if len(wps) < 2 {
		return nil, fmt.Errorf("%w: %d waypoint(s)", ErrDegenerateRoute, len(wps))
	}
	total := wps[len(wps)-1].CumDist - wps[0].CumDist
	if total <= 0 {
		return nil, fmt.Errorf("%w: total distance %.1fm", ErrDegenerateRoute, total)
	}
	for i := 1; i < len(wps); i++ {
		if wps[i].CumDist <= wps[i-1].CumDist {
			return nil, fmt.Errorf("%w: waypoint %d (%.1fm) after %.1fm",
				ErrNonMonotonicDistance, i, wps[i].CumDist, wps[i-1].CumDist)
		}
	}

	departure = departure.UTC()
	out := make([]TimestampedWaypoint, len(wps))
	for i, wp := range wps {
		frac := (wp.CumDist - wps[0].CumDist) / total
		out[i] = TimestampedWaypoint{
			Waypoint: wp,
			ETA:      departure.Add(time.Duration(math.Round(frac * float64(totalDuration)))),
		}
	}
	return out, nil
}
