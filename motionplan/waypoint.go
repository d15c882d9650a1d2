// Package motionplan plans dynamically feasible trajectories through 3D occupancy
// grids by searching over motion primitives generated from a discretized control set.
package motionplan

import (
	"math"

	"github.com/golang/geo/r3"
)

// DerivativeMask marks which derivatives of a Waypoint are constrained. Constrained
// derivatives participate in goal matching and determine the order at which control
// inputs are applied during primitive generation; unconstrained derivatives are free.
type DerivativeMask uint8

// Individual derivative flags. They compose with bitwise or, e.g. UsePos|UseVel.
const (
	UsePos DerivativeMask = 1 << iota
	UseVel
	UseAcc
	UseJrk
)

// Has reports whether all flags in o are set on m.
func (m DerivativeMask) Has(o DerivativeMask) bool {
	return m&o == o
}

// ControlOrder returns the derivative order at which a constant control input acts
// when integrating a primitive from a waypoint with this mask: one order above the
// highest constrained derivative. A position-only waypoint is velocity-controlled,
// a position-velocity waypoint is acceleration-controlled, and so on up to snap.
func (m DerivativeMask) ControlOrder() int {
	switch {
	case m.Has(UseJrk):
		return 4
	case m.Has(UseAcc):
		return 3
	case m.Has(UseVel):
		return 2
	default:
		return 1
	}
}

// Waypoint is a kinematic state: position and its first three derivatives, plus the
// mask of constrained derivatives.
type Waypoint struct {
	Pos  r3.Vector
	Vel  r3.Vector
	Acc  r3.Vector
	Jrk  r3.Vector
	Mask DerivativeMask
}

// Derivative returns the i-th derivative field of the waypoint, with 0 meaning
// position and 3 meaning jerk. Orders outside [0, 3] are zero.
func (w Waypoint) Derivative(i int) r3.Vector {
	switch i {
	case 0:
		return w.Pos
	case 1:
		return w.Vel
	case 2:
		return w.Acc
	case 3:
		return w.Jrk
	default:
		return r3.Vector{}
	}
}

// Tolerance bundles the per-derivative thresholds used for goal matching. A negative
// entry disables the check for that derivative even when it is constrained.
type Tolerance struct {
	Pos float64
	Vel float64
	Acc float64
}

// WithinTolerance reports whether every derivative constrained on the goal's mask
// matches the goal to within the corresponding threshold, by Euclidean norm.
// Unconstrained derivatives are ignored, as is jerk, which has no tolerance in
// this model.
func (w Waypoint) WithinTolerance(goal Waypoint, tol Tolerance) bool {
	if goal.Mask.Has(UsePos) && tol.Pos >= 0 && w.Pos.Sub(goal.Pos).Norm() > tol.Pos {
		return false
	}
	if goal.Mask.Has(UseVel) && tol.Vel >= 0 && w.Vel.Sub(goal.Vel).Norm() > tol.Vel {
		return false
	}
	if goal.Mask.Has(UseAcc) && tol.Acc >= 0 && w.Acc.Sub(goal.Acc).Norm() > tol.Acc {
		return false
	}
	return true
}

// chebyshev returns the infinity norm of v, used for component-wise bound checks.
func chebyshev(v r3.Vector) float64 {
	return math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
}
