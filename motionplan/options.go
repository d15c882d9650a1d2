package motionplan

import (
	"fmt"

	"github.com/golang/geo/r3"
	"go.uber.org/multierr"
)

// default values for planner configuration.
const (
	defaultEpsilon = 1.0
	defaultDt      = 1.0
	defaultW       = 10.0

	// expansion budget; negative means unlimited
	defaultMaxExpansions = -1

	defaultTolPos = 0.5
	defaultTolVel = 0.1
	defaultTolAcc = 1.0
)

// PlannerConfig fully describes one planning query's parameters. It is validated
// once at planner construction and never mutated mid-search, so a planner can
// never be observed in a partially configured state.
type PlannerConfig struct {
	// Epsilon inflates the heuristic; 1 yields best-first optimality under the
	// cost model, larger values trade solution quality for speed.
	Epsilon float64

	// Component-wise state bounds. Primitives exceeding any of them are rejected.
	VMax float64
	AMax float64
	JMax float64

	// UMax bounds the magnitude of every control in ControlSet, component-wise.
	UMax float64

	// Dt is the fixed duration of every primitive.
	Dt float64

	// W is the time weight: every step adds W*Dt to the accumulated cost,
	// discouraging unnecessarily long paths.
	W float64

	// MaxExpansions caps the number of node expansions; negative means unlimited.
	MaxExpansions int

	// ControlSet is the finite set of candidate control vectors applied at each
	// expansion step.
	ControlSet []r3.Vector

	// Tol holds the per-derivative goal tolerances.
	Tol Tolerance
}

// DefaultPlannerConfig returns a config with the package defaults. Bounds and the
// control set have no sensible defaults and must be filled in by the caller.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		Epsilon:       defaultEpsilon,
		Dt:            defaultDt,
		W:             defaultW,
		MaxExpansions: defaultMaxExpansions,
		Tol:           Tolerance{Pos: defaultTolPos, Vel: defaultTolVel, Acc: defaultTolAcc},
	}
}

// ControlGrid2D enumerates the planar control set {-uMax..uMax}^2 x {0} with
// spacing du, the discretization used by ground-plane planning queries.
func ControlGrid2D(uMax, du float64) []r3.Vector {
	var controls []r3.Vector
	for ux := -uMax; ux <= uMax+1e-12; ux += du {
		for uy := -uMax; uy <= uMax+1e-12; uy += du {
			controls = append(controls, r3.Vector{X: ux, Y: uy})
		}
	}
	return controls
}

// validate returns a descriptive error for every malformed field, aggregated, so a
// misconfigured planner fails fast rather than running a degenerate search.
func (cfg PlannerConfig) validate() error {
	var err error
	if cfg.Epsilon < 1 {
		err = multierr.Append(err, fmt.Errorf("epsilon must be at least 1, got %v", cfg.Epsilon))
	}
	if cfg.VMax <= 0 {
		err = multierr.Append(err, fmt.Errorf("velocity bound must be positive, got %v", cfg.VMax))
	}
	if cfg.AMax <= 0 {
		err = multierr.Append(err, fmt.Errorf("acceleration bound must be positive, got %v", cfg.AMax))
	}
	if cfg.JMax <= 0 {
		err = multierr.Append(err, fmt.Errorf("jerk bound must be positive, got %v", cfg.JMax))
	}
	if cfg.UMax <= 0 {
		err = multierr.Append(err, fmt.Errorf("control bound must be positive, got %v", cfg.UMax))
	}
	if cfg.Dt <= 0 {
		err = multierr.Append(err, fmt.Errorf("primitive duration must be positive, got %v", cfg.Dt))
	}
	if cfg.W < 0 {
		err = multierr.Append(err, fmt.Errorf("step weight must be non-negative, got %v", cfg.W))
	}
	if len(cfg.ControlSet) == 0 {
		err = multierr.Append(err, fmt.Errorf("control set must not be empty"))
	}
	if cfg.UMax > 0 {
		for i, u := range cfg.ControlSet {
			if chebyshev(u) > cfg.UMax+1e-12 {
				err = multierr.Append(err, fmt.Errorf("control %d (%v) exceeds control bound %v", i, u, cfg.UMax))
			}
		}
	}
	return err
}
