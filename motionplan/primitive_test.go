package motionplan

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestPrimitiveBoundaryReproduction(t *testing.T) {
	start := Waypoint{
		Pos:  r3.Vector{X: 1, Y: 2},
		Vel:  r3.Vector{X: 0.5, Y: -0.25},
		Mask: UsePos | UseVel,
	}
	u := r3.Vector{X: 0.5, Y: -0.5}
	prim := NewPrimitive(start, u, 2.0)

	at0 := prim.Evaluate(0)
	test.That(t, at0.Pos.Sub(start.Pos).Norm(), test.ShouldAlmostEqual, 0)
	test.That(t, at0.Vel.Sub(start.Vel).Norm(), test.ShouldAlmostEqual, 0)
	// an acceleration-controlled segment carries the control as its acceleration
	test.That(t, at0.Acc.Sub(u).Norm(), test.ShouldAlmostEqual, 0)

	end := prim.End()
	test.That(t, end.Vel.X, test.ShouldAlmostEqual, 0.5+0.5*2)
	test.That(t, end.Vel.Y, test.ShouldAlmostEqual, -0.25-0.5*2)
	test.That(t, end.Pos.X, test.ShouldAlmostEqual, 1+0.5*2+0.5*0.5*4)
	test.That(t, end.Pos.Y, test.ShouldAlmostEqual, 2-0.25*2-0.5*0.5*4)
	test.That(t, end.Jrk.Norm(), test.ShouldAlmostEqual, 0)
}

func TestPrimitiveControlOrder(t *testing.T) {
	u := r3.Vector{X: 1}

	// position-only waypoints are velocity controlled
	posOnly := NewPrimitive(Waypoint{Mask: UsePos}, u, 2.0)
	test.That(t, posOnly.End().Pos.X, test.ShouldAlmostEqual, 2.0)
	test.That(t, posOnly.End().Vel.X, test.ShouldAlmostEqual, 1.0)

	// acceleration-constrained waypoints are jerk controlled
	jerked := NewPrimitive(Waypoint{Mask: UsePos | UseVel | UseAcc}, u, 2.0)
	test.That(t, jerked.End().Jrk.X, test.ShouldAlmostEqual, 1.0)
	test.That(t, jerked.End().Acc.X, test.ShouldAlmostEqual, 2.0)
	test.That(t, jerked.End().Vel.X, test.ShouldAlmostEqual, 2.0)   // t^2/2 at t=2
	test.That(t, jerked.End().Pos.X, test.ShouldAlmostEqual, 8.0/6) // t^3/6 at t=2
}

func TestPrimitiveEffort(t *testing.T) {
	start := Waypoint{Vel: r3.Vector{X: 1}, Mask: UsePos | UseVel}
	u := r3.Vector{X: 0.5, Y: -0.5}
	prim := NewPrimitive(start, u, 2.0)

	// the control is constant, so effort at the control order is |u|^2 * dt
	test.That(t, prim.J(2), test.ShouldAlmostEqual, u.Norm2()*2.0)
	test.That(t, prim.J(3), test.ShouldAlmostEqual, 0)
	test.That(t, prim.J(1), test.ShouldBeGreaterThan, 0)
}
