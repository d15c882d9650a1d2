package motionplan

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// continuityEps is the largest per-field mismatch tolerated between consecutive
// segment boundary states.
const continuityEps = 1e-6

// Trajectory is a continuous, dynamically feasible path assembled from an ordered,
// non-empty sequence of primitives. It is immutable once constructed.
type Trajectory struct {
	segments []Primitive
	cum      []float64 // cumulative segment end times
}

// newTrajectory assembles segments into a trajectory, verifying that each segment
// starts where the previous one ends.
func newTrajectory(segments []Primitive) (*Trajectory, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("trajectory requires at least one segment")
	}
	durations := make([]float64, len(segments))
	for i, seg := range segments {
		durations[i] = seg.Duration()
		if i == 0 {
			continue
		}
		prev := segments[i-1].End()
		curr := seg.Start()
		for d := 0; d < 4; d++ {
			if prev.Derivative(d).Sub(curr.Derivative(d)).Norm() > continuityEps {
				return nil, fmt.Errorf("discontinuity at segment %d, derivative %d", i, d)
			}
		}
	}
	cum := make([]float64, len(segments))
	floats.CumSum(cum, durations)
	return &Trajectory{segments: segments, cum: cum}, nil
}

// TotalTime returns the sum of all segment durations.
func (tr *Trajectory) TotalTime() float64 {
	return tr.cum[len(tr.cum)-1]
}

// Segments returns the trajectory's primitives in order.
func (tr *Trajectory) Segments() []Primitive {
	return tr.segments
}

// Evaluate returns the state at time t. Times outside [0, TotalTime] clamp to the
// nearest boundary state rather than failing, which permits forgiving sampling.
func (tr *Trajectory) Evaluate(t float64) Waypoint {
	if t <= 0 {
		return tr.segments[0].Evaluate(0)
	}
	if t >= tr.TotalTime() {
		last := tr.segments[len(tr.segments)-1]
		return last.Evaluate(last.Duration())
	}
	i := sort.SearchFloat64s(tr.cum, t)
	if i >= len(tr.segments) {
		i = len(tr.segments) - 1
	}
	segStart := tr.cum[i] - tr.segments[i].Duration()
	return tr.segments[i].Evaluate(t - segStart)
}

// J returns the integral of the squared i-th derivative over the whole trajectory,
// for i in [0, 3]. It decomposes the path's effort by derivative order and does not
// include the per-step time weight used for search ranking.
func (tr *Trajectory) J(i int) float64 {
	var total float64
	for _, seg := range tr.segments {
		total += seg.J(i)
	}
	return total
}

// Waypoints returns the segment boundary states, start to goal inclusive.
func (tr *Trajectory) Waypoints() []Waypoint {
	wps := make([]Waypoint, 0, len(tr.segments)+1)
	wps = append(wps, tr.segments[0].Evaluate(0))
	for _, seg := range tr.segments {
		wps = append(wps, seg.End())
	}
	return wps
}
