package domain

// Strategy selects the objective function the solver optimizes.
type Strategy string

const (
	// StrategyMaximizeCoverage prefers filling as many required slots as
	// possible.
	StrategyMaximizeCoverage Strategy = "maximize_coverage"
	// StrategyMinimizeGaps penalizes idle hours between a person's
	// consecutive assignments.
	StrategyMinimizeGaps Strategy = "minimize_gaps"
	// StrategyBalanceWorkload penalizes deviation from the mean assigned
	// hours per person.
	StrategyBalanceWorkload Strategy = "balance_workload"
)

// Strategies lists the supported strategy names.
func Strategies() []Strategy {
	return []Strategy{StrategyMaximizeCoverage, StrategyMinimizeGaps, StrategyBalanceWorkload}
}

// Valid reports whether s names a supported strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyMaximizeCoverage, StrategyMinimizeGaps, StrategyBalanceWorkload:
		return true
	default:
		return false
	}
}
