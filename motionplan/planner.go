package motionplan

import (
	"container/heap"
	"context"
	"math"
	"sort"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// costEps breaks floating-point ties when comparing accumulated costs.
const costEps = 1e-9

// Map is the occupancy interface the planner consumes for collision checking.
// Origin and Resolution together place the grid planes, which the planner uses
// to enumerate the cells a primitive sweeps through. IsFreePoint must report
// false for points outside the mapped extent.
type Map interface {
	Origin() r3.Vector
	Resolution() float64
	IsFreePoint(pt r3.Vector) bool
}

// Planner searches for dynamically feasible trajectories with weighted A* over
// primitives generated from a discretized control set. It may be reused across
// sequential Plan calls but is not safe for concurrent use.
type Planner struct {
	cfg    PlannerConfig
	occ    Map
	logger golog.Logger

	nodes    []searchNode
	index    map[stateKey]int
	closeSet []r3.Vector
}

// NewPlanner validates the configuration and returns a planner bound to the given
// occupancy map.
func NewPlanner(cfg PlannerConfig, occ Map, logger golog.Logger) (*Planner, error) {
	if occ == nil {
		return nil, errors.New("occupancy map is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid planner configuration")
	}
	if logger == nil {
		logger = golog.Global()
	}
	return &Planner{cfg: cfg, occ: occ, logger: logger}, nil
}

// CloseSet returns the positions of the states expanded by the most recent Plan
// call, in expansion order. It is populated on failure as well, for post-mortem
// inspection, and reset at the start of each call.
func (p *Planner) CloseSet() []r3.Vector {
	return p.closeSet
}

// Plan searches for a trajectory from start to goal. The goal test compares only
// the derivatives constrained on the goal's mask, each within its configured
// tolerance. The context is checked between expansions.
func (p *Planner) Plan(ctx context.Context, start, goal Waypoint) (*Trajectory, error) {
	p.nodes = p.nodes[:0]
	p.index = make(map[stateKey]int)
	p.closeSet = nil

	if goal.Mask&(UsePos|UseVel|UseAcc) == 0 {
		return nil, ErrGoalUnconstrained
	}
	if !p.occ.IsFreePoint(start.Pos) {
		return nil, ErrInfeasibleStart
	}

	quant := newQuantizer(p.cfg, p.occ.Resolution(), start.Mask.ControlOrder())
	stepCost := p.cfg.W * p.cfg.Dt

	root := searchNode{
		state:  start,
		h:      heuristic(start, goal, p.cfg),
		parent: noParent,
	}
	p.nodes = append(p.nodes, root)
	p.index[quant.key(start)] = 0

	open := &openHeap{{idx: 0, f: p.cfg.Epsilon * root.h}}
	heap.Init(open)

	expansions := 0
	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ent := heap.Pop(open).(openEntry)
		n := &p.nodes[ent.idx]
		if n.closed || ent.g > n.g+costEps {
			// stale entry left behind by a reopen
			continue
		}
		if n.state.WithinTolerance(goal, p.cfg.Tol) {
			p.logger.Debugf("goal reached after %d expansions, cost %.3f", expansions, n.g)
			return p.extractTrajectory(ent.idx)
		}
		if p.cfg.MaxExpansions >= 0 && expansions >= p.cfg.MaxExpansions {
			return nil, ErrBudgetExhausted
		}

		n.closed = true
		expansions++
		p.closeSet = append(p.closeSet, n.state.Pos)

		for _, u := range p.cfg.ControlSet {
			prim := NewPrimitive(n.state, u, p.cfg.Dt)
			if !p.feasible(prim) {
				continue
			}
			succ := prim.End()
			g := n.g + u.Norm2()*p.cfg.Dt + stepCost

			key := quant.key(succ)
			if j, ok := p.index[key]; ok {
				other := &p.nodes[j]
				if g+costEps >= other.g {
					continue
				}
				// strictly better path; reopen whether open or closed
				other.state = succ
				other.g = g
				other.h = heuristic(succ, goal, p.cfg)
				other.parent = ent.idx
				other.prim = prim
				other.closed = false
				heap.Push(open, openEntry{idx: j, f: g + p.cfg.Epsilon*other.h, g: g})
			} else {
				h := heuristic(succ, goal, p.cfg)
				idx := len(p.nodes)
				p.nodes = append(p.nodes, searchNode{
					state:  succ,
					g:      g,
					h:      h,
					parent: ent.idx,
					prim:   prim,
				})
				p.index[key] = idx
				heap.Push(open, openEntry{idx: idx, f: g + p.cfg.Epsilon*h, g: g})
			}
		}
	}
	p.logger.Debugf("open set exhausted after %d expansions", expansions)
	return nil, ErrNoPath
}

// feasible rejects a primitive whose velocity, acceleration, or jerk leaves its
// bound anywhere on the segment, or whose swept cells include an occupied one.
// Derivative bounds are checked at their exact per-axis extrema rather than at
// samples, so no excursion between sample points can slip through.
func (p *Planner) feasible(prim Primitive) bool {
	dt := prim.Duration()
	bounds := [3]float64{p.cfg.VMax, p.cfg.AMax, p.cfg.JMax}
	for axis := 0; axis < 3; axis++ {
		d := prim.axes[axis].deriv()
		for _, bound := range bounds {
			if len(d) == 0 {
				break
			}
			lo, hi := d.extremaWithin(0, dt)
			if math.Max(math.Abs(lo), math.Abs(hi)) > bound+costEps {
				return false
			}
			d = d.deriv()
		}
	}
	return p.collisionFree(prim)
}

// collisionFree checks every cell the primitive sweeps through. The crossing
// times of each grid plane are found as roots of the per-axis position
// polynomials; the interior of every sub-interval between consecutive crossings
// is tested at its midpoint, so a segment that only briefly dips into an
// occupied cell is still rejected and an instant landing exactly on a cell face
// cannot be misattributed to the free neighbor. The crossing instants
// themselves are tested too, which conservatively rejects segments that graze
// an occupied cell's face without entering it.
func (p *Planner) collisionFree(prim Primitive) bool {
	res := p.occ.Resolution()
	origin := p.occ.Origin()
	dt := prim.Duration()

	times := []float64{0, dt}
	for axis := 0; axis < 3; axis++ {
		off := component(origin, axis)
		lo, hi := prim.axes[axis].extremaWithin(0, dt)
		shifted := append(poly(nil), prim.axes[axis]...)
		base := shifted[0]
		for k := math.Ceil((lo - off) / res); k <= math.Floor((hi-off)/res); k++ {
			shifted[0] = base - (off + k*res)
			times = append(times, shifted.rootsWithin(0, dt)...)
		}
	}
	sort.Float64s(times)

	for i := 0; i < len(times); i++ {
		if i > 0 && times[i]-times[i-1] <= rootEps {
			continue
		}
		if !p.occ.IsFreePoint(prim.Evaluate(times[i]).Pos) {
			return false
		}
		if i+1 < len(times) && times[i+1]-times[i] > rootEps {
			if !p.occ.IsFreePoint(prim.Evaluate((times[i] + times[i+1]) / 2).Pos) {
				return false
			}
		}
	}
	return true
}

// extractTrajectory walks parent indices from the goal node back to the root,
// reverses, and assembles the per-step primitives into a trajectory.
func (p *Planner) extractTrajectory(idx int) (*Trajectory, error) {
	var segments []Primitive
	for i := idx; p.nodes[i].parent != noParent; i = p.nodes[i].parent {
		segments = append(segments, p.nodes[i].prim)
	}
	if len(segments) == 0 {
		// start already satisfied the goal test; emit a single zero-control hold
		segments = []Primitive{NewPrimitive(p.nodes[idx].state, r3.Vector{}, p.cfg.Dt)}
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return newTrajectory(segments)
}
