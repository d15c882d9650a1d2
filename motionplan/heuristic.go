package motionplan

// heuristic returns an admissible lower bound on the remaining cost from a state to
// the goal, ignoring obstacles: the minimum time to cover the largest per-axis
// position gap at the velocity bound, priced at the time weight. Control effort is
// bounded below by zero, so the estimate never overshoots the true cost and the
// search stays epsilon-suboptimal-bounded.
func heuristic(from, goal Waypoint, cfg PlannerConfig) float64 {
	if !goal.Mask.Has(UsePos) {
		return 0
	}
	return cfg.W * chebyshev(from.Pos.Sub(goal.Pos)) / cfg.VMax
}
