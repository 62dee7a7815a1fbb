package cpsat

import (
	"context"
	"time"
)

// Status is the outcome of a solve.
type Status int

const (
	// StatusUnknown means the budget ran out before any solution was found.
	StatusUnknown Status = iota
	// StatusOptimal means the search space was exhausted and the best
	// solution is proven optimal.
	StatusOptimal
	// StatusFeasible means a solution was found but the budget ran out
	// before optimality was proven.
	StatusFeasible
	// StatusInfeasible means the search space was exhausted without finding
	// any solution.
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// DefaultTimeLimit bounds a solve when the caller sets no budget.
const DefaultTimeLimit = 30 * time.Second

// deadlineCheckInterval is how many search nodes pass between clock reads.
const deadlineCheckInterval = 256

// Solver runs branch-and-bound over a model's boolean variables.
type Solver struct {
	// TimeLimit is the wall-clock budget for one solve. A caller context
	// with an earlier deadline wins.
	TimeLimit time.Duration
}

// NewSolver returns a solver with the default time limit.
func NewSolver() *Solver {
	return &Solver{TimeLimit: DefaultTimeLimit}
}

// Solution holds the result of a solve. Values are only meaningful when
// Feasible reports true.
type Solution struct {
	status    Status
	objective int
	bools     []bool
	ints      []int
}

// Status returns the solve outcome.
func (s *Solution) Status() Status { return s.status }

// Feasible reports whether the solution carries a usable assignment.
func (s *Solution) Feasible() bool {
	return s.status == StatusOptimal || s.status == StatusFeasible
}

// ObjectiveValue returns the objective of the best assignment found.
func (s *Solution) ObjectiveValue() int { return s.objective }

// BoolValue returns the assigned value of a boolean variable.
func (s *Solution) BoolValue(v BoolVar) bool { return s.bools[v] }

// Value returns the value of a derived integer variable.
func (s *Solution) Value(v IntVar) int { return s.ints[v] }

type searchState struct {
	model    *Model
	deadline time.Time

	assignment []int8 // -1 unknown, 0 false, 1 true
	trueCount  []int
	openCount  []int
	varCons    [][]int

	intOptimistic int // static optimistic contribution of int objective terms

	best    []bool
	bestObj int
	nodes   int
	aborted bool
}

// Solve searches for the assignment maximizing the model objective.
//
// Variables are branched in creation order, false before true, so the
// first feasible assignment sets as few variables as satisfiability allows
// and results are reproducible for a fixed model construction order. When
// the model has no objective the first feasible assignment is returned as
// optimal.
func (s *Solver) Solve(ctx context.Context, m *Model) *Solution {
	limit := s.TimeLimit
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	deadline := time.Now().Add(limit)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	n := m.NumBools()
	st := &searchState{
		model:      m,
		deadline:   deadline,
		assignment: make([]int8, n),
		trueCount:  make([]int, len(m.constraints)),
		openCount:  make([]int, len(m.constraints)),
		varCons:    make([][]int, n),
	}
	for i := range st.assignment {
		st.assignment[i] = -1
	}
	for ci, c := range m.constraints {
		st.openCount[ci] = len(c.vars)
		for _, v := range c.vars {
			st.varCons[v] = append(st.varCons[v], ci)
		}
	}
	for _, term := range m.objInt {
		data := m.intVars[term.v]
		if term.coeff > 0 {
			st.intOptimistic += term.coeff * data.hi
		} else {
			st.intOptimistic += term.coeff * data.lo
		}
	}

	// Root feasibility: a constraint that cannot be met by any assignment.
	for _, c := range m.constraints {
		if c.lb > len(c.vars) || c.ub < 0 {
			return &Solution{status: StatusInfeasible}
		}
	}

	st.search(0)

	ints := make([]int, len(m.intVars))
	switch {
	case st.best != nil:
		m.evaluate(st.best, ints)
		status := StatusOptimal
		if st.aborted {
			status = StatusFeasible
		}
		return &Solution{status: status, objective: st.bestObj, bools: st.best, ints: ints}
	case st.aborted:
		return &Solution{status: StatusUnknown}
	default:
		return &Solution{status: StatusInfeasible}
	}
}

// search returns true when the search should stop entirely.
func (st *searchState) search(index int) bool {
	st.nodes++
	if st.nodes%deadlineCheckInterval == 0 && time.Now().After(st.deadline) {
		st.aborted = true
		return true
	}

	m := st.model
	if index == m.NumBools() {
		bools := make([]bool, len(st.assignment))
		for i, v := range st.assignment {
			bools[i] = v == 1
		}
		ints := make([]int, len(m.intVars))
		m.evaluate(bools, ints)
		obj := m.objectiveValue(bools, ints)
		if st.best == nil || obj > st.bestObj {
			st.best = bools
			st.bestObj = obj
		}
		// Without an objective any feasible assignment is final.
		return !m.HasObjective()
	}

	if st.best != nil && m.HasObjective() && st.bound() <= st.bestObj {
		return false
	}

	for _, value := range [2]int8{0, 1} {
		if !st.assign(BoolVar(index), value) {
			st.unassign(BoolVar(index), value)
			continue
		}
		if st.search(index + 1) {
			return true
		}
		st.unassign(BoolVar(index), value)
	}
	return false
}

// assign fixes a variable and reports whether all touched constraints stay
// satisfiable.
func (st *searchState) assign(v BoolVar, value int8) bool {
	st.assignment[v] = value
	ok := true
	for _, ci := range st.varCons[v] {
		st.openCount[ci]--
		if value == 1 {
			st.trueCount[ci]++
		}
		c := st.model.constraints[ci]
		if st.trueCount[ci] > c.ub || st.trueCount[ci]+st.openCount[ci] < c.lb {
			ok = false
		}
	}
	return ok
}

func (st *searchState) unassign(v BoolVar, value int8) {
	st.assignment[v] = -1
	for _, ci := range st.varCons[v] {
		st.openCount[ci]++
		if value == 1 {
			st.trueCount[ci]--
		}
	}
}

// bound computes an optimistic objective value for the current partial
// assignment: fixed boolean terms contribute their actual value, open
// boolean terms their best case, and integer terms their domain optimum.
func (st *searchState) bound() int {
	total := st.intOptimistic
	for _, term := range st.model.objBool {
		switch st.assignment[term.v] {
		case 1:
			total += term.coeff
		case -1:
			if term.coeff > 0 {
				total += term.coeff
			}
		}
	}
	return total
}
