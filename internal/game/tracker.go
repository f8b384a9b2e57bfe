package game

import "github.com/playterritory/conquest/internal/geo"

// Thresholds are expressed in raw degrees, matching the calibration of the
// area scaling in internal/geo.
const (
	// JitterThresholdDeg is roughly half a meter per axis. A step below it
	// on both axes is GPS noise, not movement.
	JitterThresholdDeg = 0.000005
	// ClosureToleranceDeg is roughly three meters. A new point this close
	// to an earlier trace point closes the loop.
	ClosureToleranceDeg = 0.00003
)

// Closure is emitted when a fed point closes the open trace into a polygon.
// Ring is closed (first vertex repeated last).
type Closure struct {
	Ring    []geo.Point
	AreaKm2 float64
}

// Tracker accumulates one player's position stream into an open trace and
// detects loop closures. A tracker serves a single position source; feeds
// arrive in time order, so it is not goroutine-safe by itself. Callers that
// share one across goroutines must lock around it.
type Tracker struct {
	jitterDeg  float64
	closureDeg float64

	active bool
	trace  []geo.Point
	last   *geo.Point
	paths  [][]geo.Point
}

// NewTracker returns a tracker with the production thresholds.
func NewTracker() *Tracker {
	return NewTrackerWithThresholds(JitterThresholdDeg, ClosureToleranceDeg)
}

// NewTrackerWithThresholds allows custom jitter and closure tolerances, both
// in degrees. Used for simulated position sources with coarser steps.
func NewTrackerWithThresholds(jitterDeg, closureDeg float64) *Tracker {
	return &Tracker{jitterDeg: jitterDeg, closureDeg: closureDeg}
}

// Start clears the open trace and begins tracing. When the current position
// is known it seeds the trace so the loop can close back onto it.
func (t *Tracker) Start(at *geo.Point) {
	t.trace = nil
	t.last = nil
	t.active = true
	if at != nil {
		p := *at
		t.trace = append(t.trace, p)
		t.last = &p
	}
}

// Feed accepts the next position sample. It returns a non-nil Closure when
// the sample closes the trace into a valid polygon, nil otherwise. Inactive
// trackers and jittery samples are ignored.
func (t *Tracker) Feed(p geo.Point) *Closure {
	if !t.active {
		return nil
	}
	if t.last != nil &&
		abs(p.Lat-t.last.Lat) < t.jitterDeg &&
		abs(p.Lng-t.last.Lng) < t.jitterDeg {
		return nil
	}
	t.trace = append(t.trace, p)
	last := p
	t.last = &last

	if len(t.trace) < 4 {
		return nil
	}
	// The newest point and its predecessor cannot close the loop, so the
	// scan stops two points short of the end.
	for i := 0; i < len(t.trace)-3; i++ {
		if geo.DegreeDistance(t.trace[i], p) >= t.closureDeg {
			continue
		}
		ring := t.trace[i:]
		if len(ring) < 3 {
			return nil
		}
		closed := geo.CloseRing(append([]geo.Point(nil), ring...))
		// Fresh trace continues from the closing point.
		t.trace = []geo.Point{p}
		return &Closure{Ring: closed, AreaKm2: geo.RingArea(closed)}
	}
	return nil
}

// Stop ends tracing. A trace with more than one point is archived as a
// visual path segment; the open trace is cleared either way. Returns the
// archive so far.
func (t *Tracker) Stop() [][]geo.Point {
	t.active = false
	if len(t.trace) > 1 {
		t.paths = append(t.paths, t.trace)
	}
	t.trace = nil
	t.last = nil
	return t.paths
}

// Active reports whether the tracker is currently tracing.
func (t *Tracker) Active() bool { return t.active }

// Trace returns the open trace.
func (t *Tracker) Trace() []geo.Point { return t.trace }

// Paths returns the archived path segments from previous stops.
func (t *Tracker) Paths() [][]geo.Point { return t.paths }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
