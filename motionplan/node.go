package motionplan

import (
	"math"

	"github.com/golang/geo/r3"
)

// noParent is the parent index sentinel for the root node of a search.
const noParent = -1

// searchNode is one discretized planner state. Nodes live in a flat arena owned by
// the planner and reference their parent by arena index, which keeps path
// reconstruction a simple index walk with no ownership cycles.
type searchNode struct {
	state  Waypoint
	g      float64
	h      float64
	parent int
	prim   Primitive // primitive from parent; zero value at the root
	closed bool
}

// stateKey identifies a quantized state for open/closed membership. Equality and
// hashing happen on the integer cells, never on raw floating-point fields.
type stateKey struct {
	p [3]int64
	v [3]int64
	a [3]int64
}

// quantizer derives deduplication cell sizes from the control discretization and
// primitive duration, so that distinct states reachable on the control lattice
// never collapse into the same key. Position cells are additionally capped by the
// map resolution.
type quantizer struct {
	step  [3]float64 // cell size per derivative 0..2
	order int
}

func newQuantizer(cfg PlannerConfig, resolution float64, order int) quantizer {
	du := cfg.UMax
	for _, u := range cfg.ControlSet {
		for _, c := range []float64{u.X, u.Y, u.Z} {
			if c != 0 && math.Abs(c) < du {
				du = math.Abs(c)
			}
		}
	}
	q := quantizer{order: order}
	for d := 0; d < 3; d++ {
		if d >= order {
			// not part of the state for this control order; any cell size works
			q.step[d] = 1
			continue
		}
		n := order - d
		q.step[d] = du * math.Pow(cfg.Dt, float64(n)) / factorial(n)
	}
	if resolution < q.step[0] {
		q.step[0] = resolution
	}
	return q
}

func (q quantizer) key(w Waypoint) stateKey {
	var k stateKey
	k.p = quantizeVec(w.Pos, q.step[0])
	if q.order > 1 {
		k.v = quantizeVec(w.Vel, q.step[1])
	}
	if q.order > 2 {
		k.a = quantizeVec(w.Acc, q.step[2])
	}
	return k
}

func quantizeVec(v r3.Vector, step float64) [3]int64 {
	return [3]int64{
		int64(math.Round(v.X / step)),
		int64(math.Round(v.Y / step)),
		int64(math.Round(v.Z / step)),
	}
}

// openEntry is a heap entry for the open set. Entries are not removed on reopening;
// stale entries are recognized and skipped at pop time by comparing costs.
type openEntry struct {
	idx int
	f   float64
	g   float64
}

type openHeap []openEntry

func (h openHeap) Len() int { return len(h) }

func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	// prefer deeper nodes on ties; they are closer to the goal
	return h[i].g > h[j].g
}

func (h openHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *openHeap) Push(x interface{}) {
	*h = append(*h, x.(openEntry))
}

func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
