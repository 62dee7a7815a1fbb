package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dimun/agendalo/internal/scheduling/domain"
	"github.com/dimun/agendalo/internal/solver/cpsat"
	"github.com/google/uuid"
)

// Scheduler turns hour rules into concrete assignments for a set of weeks.
type Scheduler interface {
	Optimize(
		ctx context.Context,
		availability []domain.AvailabilityRule,
		business []domain.BusinessRule,
		weeks []int,
		year int,
		strategy domain.Strategy,
	) ([]domain.Assignment, error)
}

// CPScheduler builds a boolean constraint model over (person, slot) pairs
// and drives the cpsat solver with a bounded time budget.
type CPScheduler struct {
	timeLimit time.Duration
	logger    *slog.Logger
}

// NewCPScheduler creates a scheduler with the given solve budget. A zero
// budget falls back to the solver default.
func NewCPScheduler(timeLimit time.Duration, logger *slog.Logger) *CPScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CPScheduler{timeLimit: timeLimit, logger: logger}
}

// Optimize expands the rules over the weeks' dates, assembles the model and
// extracts the best assignment found within the budget. An infeasible model
// or an exhausted budget without a solution yields an empty assignment
// list, never an error.
func (s *CPScheduler) Optimize(
	ctx context.Context,
	availability []domain.AvailabilityRule,
	business []domain.BusinessRule,
	weeks []int,
	year int,
	strategy domain.Strategy,
) ([]domain.Assignment, error) {
	if len(availability) == 0 || len(business) == 0 {
		return nil, nil
	}

	dates := domain.DatesForWeeks(weeks, year)
	required := domain.ExpandBusinessRules(business, dates)
	available := domain.ExpandAvailabilityRules(availability, dates)
	if len(required) == 0 || len(available) == 0 {
		return nil, nil
	}

	persons := personIDs(availability)
	model, vars := s.buildModel(required, available, persons, strategy)

	solver := cpsat.NewSolver()
	if s.timeLimit > 0 {
		solver.TimeLimit = s.timeLimit
	}
	solution := solver.Solve(ctx, model)

	s.logger.Debug("solver finished",
		"status", solution.Status().String(),
		"persons", len(persons),
		"slots", len(required),
		"strategy", string(strategy),
	)

	if !solution.Feasible() {
		return nil, nil
	}

	roleID := business[0].RoleID
	var assignments []domain.Assignment
	for pi, personID := range persons {
		for si, slot := range required {
			if solution.BoolValue(vars.at(pi, si)) {
				assignments = append(assignments, domain.Assignment{
					PersonID: personID,
					Date:     slot.Date,
					Start:    slot.Start,
					End:      slot.End,
					RoleID:   roleID,
				})
			}
		}
	}
	return assignments, nil
}

// assignmentVars indexes the boolean variable grid by person and slot
// position.
type assignmentVars struct {
	slots int
}

func (v assignmentVars) at(person, slot int) cpsat.BoolVar {
	return cpsat.BoolVar(person*v.slots + slot)
}

func (s *CPScheduler) buildModel(
	required []domain.Slot,
	available domain.AvailabilitySet,
	persons []uuid.UUID,
	strategy domain.Strategy,
) (*cpsat.Model, assignmentVars) {
	model := cpsat.NewModel()
	vars := assignmentVars{slots: len(required)}

	// Decision variables, in (person, slot) order so re-runs branch
	// identically.
	for _, personID := range persons {
		for _, slot := range required {
			name := fmt.Sprintf("assign_%s_%s_%s_%s",
				personID, slot.Date.Format(domain.DateLayout), slot.Start, slot.End)
			model.NewBoolVar(name)
		}
	}

	// Every required slot needs at least one person.
	for si := range required {
		slotVars := make([]cpsat.BoolVar, len(persons))
		for pi := range persons {
			slotVars[pi] = vars.at(pi, si)
		}
		model.AddAtLeast(slotVars, 1)
	}

	// Nobody works outside a containing availability window.
	for pi, personID := range persons {
		for si, slot := range required {
			if !available.Covers(personID, slot) {
				model.AddBoolFixed(vars.at(pi, si), false)
			}
		}
	}

	// No person takes two overlapping slots.
	for pi := range persons {
		for si := 0; si < len(required); si++ {
			for sj := si + 1; sj < len(required); sj++ {
				if required[si].Overlaps(required[sj]) {
					model.AddAtMost([]cpsat.BoolVar{vars.at(pi, si), vars.at(pi, sj)}, 1)
				}
			}
		}
	}

	switch strategy {
	case domain.StrategyMaximizeCoverage:
		s.addCoverageObjective(model, vars, required, persons)
	case domain.StrategyMinimizeGaps:
		s.addGapObjective(model, vars, required, persons)
	case domain.StrategyBalanceWorkload:
		s.addBalanceObjective(model, vars, required, persons)
	default:
		// Unknown strategies solve for any feasible assignment.
		s.logger.Warn("unknown optimization strategy, solving without objective", "strategy", string(strategy))
	}

	return model, vars
}

// addCoverageObjective scores one point per covered slot via a
// max-equality over the slot's assignment variables. Coverage is already a
// hard constraint; the term keeps the formulation meaningful if coverage is
// ever relaxed to soft.
func (s *CPScheduler) addCoverageObjective(
	model *cpsat.Model,
	vars assignmentVars,
	required []domain.Slot,
	persons []uuid.UUID,
) {
	for si, slot := range required {
		slotVars := make([]cpsat.BoolVar, len(persons))
		for pi := range persons {
			slotVars[pi] = vars.at(pi, si)
		}
		covered := model.NewIntVar(0, 1, fmt.Sprintf("covered_%s_%s_%s",
			slot.Date.Format(domain.DateLayout), slot.Start, slot.End))
		model.AddMaxEquality(covered, slotVars)
		model.AddObjectiveInt(covered, 1)
	}
}

// addGapObjective penalizes the idle hours between a person's consecutive
// assigned slots. A gap counts only when both adjacent slots go to the same
// person; the hours are wall-clock, so a day boundary contributes 24.
func (s *CPScheduler) addGapObjective(
	model *cpsat.Model,
	vars assignmentVars,
	required []domain.Slot,
	persons []uuid.UUID,
) {
	var gapVars []cpsat.IntVar
	for pi, personID := range persons {
		for si := 0; si+1 < len(required); si++ {
			gap := required[si].GapHours(required[si+1])
			hi := gap
			if hi < 0 {
				// Overlapping neighbours are mutually excluded by the hard
				// constraints, so this gap can never materialize.
				hi = 0
			}
			gapVar := model.NewIntVar(0, hi, fmt.Sprintf("gap_%s_%d", personID, si))
			model.AddConstantIfAllTrue(gapVar, gap, vars.at(pi, si), vars.at(pi, si+1))
			gapVars = append(gapVars, gapVar)
		}
	}
	if len(gapVars) == 0 {
		return
	}
	penalty := model.NewIntVar(0, 1_000_000, "gap_penalty")
	model.AddSumEquality(penalty, gapVars)
	model.AddObjectiveInt(penalty, -1)
}

// addBalanceObjective penalizes each person's absolute deviation from the
// mean assigned hours. The mean uses truncated integer division to keep the
// model linear.
func (s *CPScheduler) addBalanceObjective(
	model *cpsat.Model,
	vars assignmentVars,
	required []domain.Slot,
	persons []uuid.UUID,
) {
	if len(persons) <= 1 {
		return
	}

	maxHours := 0
	for _, slot := range required {
		maxHours += slot.DurationHours()
	}

	totals := make([]cpsat.IntVar, 0, len(persons))
	for pi, personID := range persons {
		hourVars := make([]cpsat.IntVar, 0, len(required))
		for si, slot := range required {
			duration := slot.DurationHours()
			hourVar := model.NewIntVar(0, duration, fmt.Sprintf("hours_%s_%d", personID, si))
			model.AddConstantIfAllTrue(hourVar, duration, vars.at(pi, si))
			hourVars = append(hourVars, hourVar)
		}
		total := model.NewIntVar(0, maxHours, fmt.Sprintf("total_%s", personID))
		model.AddSumEquality(total, hourVars)
		totals = append(totals, total)
	}

	sum := model.NewIntVar(0, maxHours*len(persons), "total_sum")
	model.AddSumEquality(sum, totals)
	mean := model.NewIntVar(0, maxHours, "mean_hours")
	model.AddDivisionEquality(mean, sum, len(persons))

	diffs := make([]cpsat.IntVar, 0, len(totals))
	for i, total := range totals {
		diff := model.NewIntVar(0, maxHours, fmt.Sprintf("diff_%d", i))
		model.AddAbsDiffEquality(diff, total, mean)
		diffs = append(diffs, diff)
	}
	penalty := model.NewIntVar(0, 1_000_000, "variance_penalty")
	model.AddSumEquality(penalty, diffs)
	model.AddObjectiveInt(penalty, -1)
}

// personIDs returns the distinct persons holding availability rules, sorted
// by id string for reproducible variable order.
func personIDs(rules []domain.AvailabilityRule) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(rules))
	var ids []uuid.UUID
	for _, rule := range rules {
		if _, ok := seen[rule.PersonID]; ok {
			continue
		}
		seen[rule.PersonID] = struct{}{}
		ids = append(ids, rule.PersonID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
