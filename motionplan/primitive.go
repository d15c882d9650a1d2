package motionplan

import (
	"github.com/golang/geo/r3"
)

// Primitive is a fixed-duration polynomial motion segment produced by applying a
// constant control input to a start waypoint. The control acts at the order given
// by the start mask: velocity for a position-only waypoint, acceleration when
// velocity is constrained, jerk when acceleration is, and snap when jerk is.
type Primitive struct {
	start Waypoint
	u     r3.Vector
	dt    float64
	axes  [3]poly // position polynomial per axis
}

// NewPrimitive integrates the control u over duration dt from start. Evaluating the
// result at t=0 reproduces the start state's constrained derivatives exactly;
// derivatives at and above the control order follow from the control itself.
func NewPrimitive(start Waypoint, u r3.Vector, dt float64) Primitive {
	order := start.Mask.ControlOrder()
	uc := [3]float64{u.X, u.Y, u.Z}
	var axes [3]poly
	for a := range axes {
		c := make(poly, order+1)
		for i := 0; i < order; i++ {
			c[i] = component(start.Derivative(i), a) / factorial(i)
		}
		c[order] = uc[a] / factorial(order)
		axes[a] = c
	}
	return Primitive{start: start, u: u, dt: dt, axes: axes}
}

// Start returns the waypoint the primitive was integrated from.
func (pr Primitive) Start() Waypoint {
	return pr.start
}

// Control returns the constant control input applied over the segment.
func (pr Primitive) Control() r3.Vector {
	return pr.u
}

// Duration returns the segment duration.
func (pr Primitive) Duration() float64 {
	return pr.dt
}

// Evaluate returns the state at elapsed time t. The caller is responsible for
// keeping t within [0, Duration]; no clamping is performed here.
func (pr Primitive) Evaluate(t float64) Waypoint {
	w := Waypoint{Mask: pr.start.Mask}
	w.Pos = pr.derivativeAt(0, t)
	w.Vel = pr.derivativeAt(1, t)
	w.Acc = pr.derivativeAt(2, t)
	w.Jrk = pr.derivativeAt(3, t)
	return w
}

// End returns the state at the segment's full duration, used as the successor
// node's state during search.
func (pr Primitive) End() Waypoint {
	return pr.Evaluate(pr.dt)
}

// J returns the integral of the squared i-th derivative over the segment, summed
// across axes. At the control order this is the segment's control effort.
func (pr Primitive) J(i int) float64 {
	var total float64
	for a := range pr.axes {
		total += pr.axes[a].derivN(i).squaredIntegral(pr.dt)
	}
	return total
}

func (pr Primitive) derivativeAt(order int, t float64) r3.Vector {
	return r3.Vector{
		X: pr.axes[0].evalDeriv(order, t),
		Y: pr.axes[1].evalDeriv(order, t),
		Z: pr.axes[2].evalDeriv(order, t),
	}
}

func component(v r3.Vector, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
