package motionplan

import "errors"

// Planning failures are distinct sentinels so callers can decide whether to fix the
// query, raise the budget, or relax tolerances before trying again. The planner
// performs no internal retries.
var (
	// ErrInfeasibleStart means the start waypoint collides with the map. It is
	// returned before any expansion happens.
	ErrInfeasibleStart = errors.New("start waypoint is in collision")

	// ErrBudgetExhausted means the expansion budget was reached before the goal
	// test was satisfied.
	ErrBudgetExhausted = errors.New("expansion budget exhausted before reaching goal")

	// ErrNoPath means the open set emptied without satisfying the goal test; no
	// feasible path exists under the configured control set and bounds.
	ErrNoPath = errors.New("open set exhausted without reaching goal")

	// ErrGoalUnconstrained means the goal waypoint's mask constrains nothing, so
	// every state would trivially match it.
	ErrGoalUnconstrained = errors.New("goal waypoint constrains no derivatives")
)
