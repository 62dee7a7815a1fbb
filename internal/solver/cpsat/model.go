// Package cpsat implements a small constraint-programming model and solver
// for boolean assignment problems with linear objectives. It is shaped
// after the CP-SAT modelling vocabulary: boolean decision variables, linear
// constraints, derived integer variables (max, conditional constants, sums,
// integer division, absolute differences) and a maximization objective.
//
// The solver enumerates boolean assignments with branch-and-bound under a
// wall-clock budget. Derived integer variables are functionally determined
// by the booleans and are evaluated in model insertion order, so callers
// must define a variable before referencing it in a later definition.
package cpsat

import "fmt"

// BoolVar identifies a boolean decision variable.
type BoolVar int

// IntVar identifies a derived integer variable.
type IntVar int

// Model accumulates variables, constraints and the objective.
type Model struct {
	boolNames []string
	intVars   []intVarData

	constraints []linearConstraint
	defs        []definition

	objBool []objTerm[BoolVar]
	objInt  []objTerm[IntVar]
}

type intVarData struct {
	name   string
	lo, hi int
}

// linearConstraint bounds the number of true literals:
// lb <= sum(vars) <= ub.
type linearConstraint struct {
	vars   []BoolVar
	lb, ub int
}

type defKind int

const (
	defMax defKind = iota
	defConstIfAllTrue
	defSum
	defDiv
	defAbsDiff
)

// definition functionally determines an int variable from booleans or from
// previously defined int variables.
type definition struct {
	kind   defKind
	target IntVar

	bools []BoolVar // defMax, defConstIfAllTrue conditions
	ints  []IntVar  // defSum operands, defDiv numerator, defAbsDiff operands
	value int       // defConstIfAllTrue constant, defDiv denominator
}

type objTerm[V ~int] struct {
	v     V
	coeff int
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar adds a boolean decision variable.
func (m *Model) NewBoolVar(name string) BoolVar {
	m.boolNames = append(m.boolNames, name)
	return BoolVar(len(m.boolNames) - 1)
}

// NewIntVar adds a derived integer variable with an inclusive domain.
func (m *Model) NewIntVar(lo, hi int, name string) IntVar {
	m.intVars = append(m.intVars, intVarData{name: name, lo: lo, hi: hi})
	return IntVar(len(m.intVars) - 1)
}

// AddLinearConstraint requires lb <= sum(vars) <= ub.
func (m *Model) AddLinearConstraint(vars []BoolVar, lb, ub int) {
	m.constraints = append(m.constraints, linearConstraint{
		vars: append([]BoolVar(nil), vars...),
		lb:   lb,
		ub:   ub,
	})
}

// AddAtLeast requires at least n of vars to be true.
func (m *Model) AddAtLeast(vars []BoolVar, n int) {
	m.AddLinearConstraint(vars, n, len(vars))
}

// AddAtMost requires at most n of vars to be true.
func (m *Model) AddAtMost(vars []BoolVar, n int) {
	m.AddLinearConstraint(vars, 0, n)
}

// AddBoolFixed pins a boolean variable to a value.
func (m *Model) AddBoolFixed(v BoolVar, value bool) {
	if value {
		m.AddLinearConstraint([]BoolVar{v}, 1, 1)
	} else {
		m.AddLinearConstraint([]BoolVar{v}, 0, 0)
	}
}

// AddMaxEquality defines target as the maximum of the given booleans.
func (m *Model) AddMaxEquality(target IntVar, vars []BoolVar) {
	m.defs = append(m.defs, definition{
		kind:   defMax,
		target: target,
		bools:  append([]BoolVar(nil), vars...),
	})
}

// AddConstantIfAllTrue defines target as value when every condition is
// true, and 0 otherwise. This mirrors the pair of enforced equalities
// "target == value iff all conditions hold".
func (m *Model) AddConstantIfAllTrue(target IntVar, value int, conditions ...BoolVar) {
	m.defs = append(m.defs, definition{
		kind:   defConstIfAllTrue,
		target: target,
		bools:  append([]BoolVar(nil), conditions...),
		value:  value,
	})
}

// AddSumEquality defines target as the sum of previously defined int vars.
func (m *Model) AddSumEquality(target IntVar, vars []IntVar) {
	m.defs = append(m.defs, definition{
		kind:   defSum,
		target: target,
		ints:   append([]IntVar(nil), vars...),
	})
}

// AddDivisionEquality defines target as numerator / denominator using
// truncated integer division. The denominator must be non-zero.
func (m *Model) AddDivisionEquality(target IntVar, numerator IntVar, denominator int) {
	if denominator == 0 {
		panic("cpsat: zero denominator in division equality")
	}
	m.defs = append(m.defs, definition{
		kind:   defDiv,
		target: target,
		ints:   []IntVar{numerator},
		value:  denominator,
	})
}

// AddAbsDiffEquality defines target as |a - b|.
func (m *Model) AddAbsDiffEquality(target IntVar, a, b IntVar) {
	m.defs = append(m.defs, definition{
		kind:   defAbsDiff,
		target: target,
		ints:   []IntVar{a, b},
	})
}

// AddObjectiveBool adds coeff * v to the maximization objective.
func (m *Model) AddObjectiveBool(v BoolVar, coeff int) {
	m.objBool = append(m.objBool, objTerm[BoolVar]{v: v, coeff: coeff})
}

// AddObjectiveInt adds coeff * v to the maximization objective.
func (m *Model) AddObjectiveInt(v IntVar, coeff int) {
	m.objInt = append(m.objInt, objTerm[IntVar]{v: v, coeff: coeff})
}

// HasObjective reports whether any objective term was added.
func (m *Model) HasObjective() bool {
	return len(m.objBool) > 0 || len(m.objInt) > 0
}

// NumBools returns the number of boolean decision variables.
func (m *Model) NumBools() int { return len(m.boolNames) }

// BoolName returns a variable's name, for diagnostics.
func (m *Model) BoolName(v BoolVar) string {
	if int(v) < 0 || int(v) >= len(m.boolNames) {
		return fmt.Sprintf("bool_%d", int(v))
	}
	return m.boolNames[v]
}

// evaluate computes all derived int variables for a complete boolean
// assignment, in definition order.
func (m *Model) evaluate(bools []bool, ints []int) {
	for i := range m.intVars {
		ints[i] = m.intVars[i].lo
	}
	for _, def := range m.defs {
		switch def.kind {
		case defMax:
			value := 0
			for _, b := range def.bools {
				if bools[b] {
					value = 1
					break
				}
			}
			ints[def.target] = value
		case defConstIfAllTrue:
			value := def.value
			for _, b := range def.bools {
				if !bools[b] {
					value = 0
					break
				}
			}
			ints[def.target] = value
		case defSum:
			total := 0
			for _, v := range def.ints {
				total += ints[v]
			}
			ints[def.target] = total
		case defDiv:
			ints[def.target] = ints[def.ints[0]] / def.value
		case defAbsDiff:
			diff := ints[def.ints[0]] - ints[def.ints[1]]
			if diff < 0 {
				diff = -diff
			}
			ints[def.target] = diff
		}
	}
}

// objectiveValue computes the objective for a complete assignment.
func (m *Model) objectiveValue(bools []bool, ints []int) int {
	total := 0
	for _, term := range m.objBool {
		if bools[term.v] {
			total += term.coeff
		}
	}
	for _, term := range m.objInt {
		total += term.coeff * ints[term.v]
	}
	return total
}
