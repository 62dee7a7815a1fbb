package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimun/agendalo/internal/scheduling/domain"
)

func testScheduler(t *testing.T) *CPScheduler {
	t.Helper()
	return NewCPScheduler(5*time.Second, slog.New(slog.DiscardHandler))
}

func weekday(w domain.Weekday) *domain.Weekday { return &w }

func tod(hour int) domain.TimeOfDay { return domain.NewTimeOfDay(hour, 0, 0) }

func recurringAvailability(personID, roleID uuid.UUID, day domain.Weekday, start, end int) domain.AvailabilityRule {
	return domain.AvailabilityRule{
		HourRule: domain.HourRule{
			ID:          uuid.New(),
			DayOfWeek:   weekday(day),
			StartTime:   tod(start),
			EndTime:     tod(end),
			IsRecurring: true,
		},
		PersonID: personID,
		RoleID:   roleID,
	}
}

func recurringBusiness(roleID uuid.UUID, day domain.Weekday, start, end int) domain.BusinessRule {
	return domain.BusinessRule{
		HourRule: domain.HourRule{
			ID:          uuid.New(),
			DayOfWeek:   weekday(day),
			StartTime:   tod(start),
			EndTime:     tod(end),
			IsRecurring: true,
		},
		RoleID: roleID,
	}
}

func TestOptimizeAssignsSingleAvailablePerson(t *testing.T) {
	roleID := uuid.New()
	personID := uuid.New()

	assignments, err := testScheduler(t).Optimize(
		context.Background(),
		[]domain.AvailabilityRule{recurringAvailability(personID, roleID, domain.Monday, 9, 17)},
		[]domain.BusinessRule{recurringBusiness(roleID, domain.Monday, 9, 17)},
		[]int{1}, 2024,
		domain.StrategyMaximizeCoverage,
	)

	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, personID, assignments[0].PersonID)
	assert.Equal(t, domain.DateOf(2024, time.January, 1), assignments[0].Date)
	assert.Equal(t, tod(9), assignments[0].Start)
	assert.Equal(t, tod(17), assignments[0].End)
	assert.Equal(t, roleID, assignments[0].RoleID)
}

func TestOptimizeInfeasibleReturnsNoAssignments(t *testing.T) {
	roleID := uuid.New()
	personID := uuid.New()

	// The only person works Tuesdays while coverage is needed on Monday, so
	// the model is infeasible and no assignment comes back.
	assignments, err := testScheduler(t).Optimize(
		context.Background(),
		[]domain.AvailabilityRule{recurringAvailability(personID, roleID, domain.Tuesday, 9, 17)},
		[]domain.BusinessRule{recurringBusiness(roleID, domain.Monday, 9, 17)},
		[]int{1}, 2024,
		domain.StrategyMaximizeCoverage,
	)

	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestOptimizePicksOnePersonWhenStaffIsRedundant(t *testing.T) {
	roleID := uuid.New()
	p1 := uuid.New()
	p2 := uuid.New()

	run := func() []domain.Assignment {
		assignments, err := testScheduler(t).Optimize(
			context.Background(),
			[]domain.AvailabilityRule{
				recurringAvailability(p1, roleID, domain.Monday, 9, 17),
				recurringAvailability(p2, roleID, domain.Monday, 9, 17),
			},
			[]domain.BusinessRule{recurringBusiness(roleID, domain.Monday, 9, 17)},
			[]int{1}, 2024,
			domain.StrategyMaximizeCoverage,
		)
		require.NoError(t, err)
		return assignments
	}

	first := run()
	require.Len(t, first, 1)
	assert.Contains(t, []uuid.UUID{p1, p2}, first[0].PersonID)

	// Re-runs pick the same person.
	second := run()
	require.Len(t, second, 1)
	assert.Equal(t, first[0].PersonID, second[0].PersonID)
}

func TestOptimizeMinimizeGapsAssignsAdjacentSlots(t *testing.T) {
	roleID := uuid.New()
	personID := uuid.New()

	assignments, err := testScheduler(t).Optimize(
		context.Background(),
		[]domain.AvailabilityRule{
			recurringAvailability(personID, roleID, domain.Monday, 9, 12),
			recurringAvailability(personID, roleID, domain.Monday, 13, 17),
		},
		[]domain.BusinessRule{
			recurringBusiness(roleID, domain.Monday, 9, 12),
			recurringBusiness(roleID, domain.Monday, 13, 17),
		},
		[]int{1}, 2024,
		domain.StrategyMinimizeGaps,
	)

	require.NoError(t, err)
	require.Len(t, assignments, 2)
	for _, a := range assignments {
		assert.Equal(t, personID, a.PersonID)
		assert.Equal(t, domain.DateOf(2024, time.January, 1), a.Date)
	}
	// The lunch break between the two slots is the only idle hour.
	assert.Equal(t, 1, assignments[0].Slot().GapHours(assignments[1].Slot()))
}

func TestOptimizeBalanceWorkloadSpreadsDaysEvenly(t *testing.T) {
	roleID := uuid.New()
	people := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	days := []domain.Weekday{domain.Monday, domain.Tuesday, domain.Wednesday}

	var availability []domain.AvailabilityRule
	var business []domain.BusinessRule
	for _, day := range days {
		business = append(business, recurringBusiness(roleID, day, 9, 17))
		for _, p := range people {
			availability = append(availability, recurringAvailability(p, roleID, day, 9, 17))
		}
	}

	assignments, err := testScheduler(t).Optimize(
		context.Background(), availability, business,
		[]int{1}, 2024,
		domain.StrategyBalanceWorkload,
	)

	require.NoError(t, err)
	require.Len(t, assignments, 3)

	hoursByPerson := make(map[uuid.UUID]int)
	datesSeen := make(map[time.Time]struct{})
	for _, a := range assignments {
		hoursByPerson[a.PersonID] += a.Slot().DurationHours()
		datesSeen[a.Date] = struct{}{}
	}
	assert.Len(t, datesSeen, 3)
	require.Len(t, hoursByPerson, 3)
	for person, hours := range hoursByPerson {
		assert.Equal(t, 8, hours, "person %s", person)
	}
}

func TestOptimizeOverlappingSlotsNeverDoubleBookPerson(t *testing.T) {
	roleID := uuid.New()
	personID := uuid.New()

	// Both required slots overlap and only one person exists, so covering
	// both is impossible. Nobody may be double-booked, so nothing at all is
	// assigned rather than a conflicting pair.
	assignments, err := testScheduler(t).Optimize(
		context.Background(),
		[]domain.AvailabilityRule{recurringAvailability(personID, roleID, domain.Monday, 9, 17)},
		[]domain.BusinessRule{
			recurringBusiness(roleID, domain.Monday, 9, 12),
			recurringBusiness(roleID, domain.Monday, 10, 13),
		},
		[]int{1}, 2024,
		domain.StrategyMaximizeCoverage,
	)

	require.NoError(t, err)
	for i := range assignments {
		for j := i + 1; j < len(assignments); j++ {
			assert.False(t, assignments[i].Slot().Overlaps(assignments[j].Slot()))
		}
	}
	assert.LessOrEqual(t, len(assignments), 1)
}

func TestOptimizeUnknownStrategySolvesFeasibly(t *testing.T) {
	roleID := uuid.New()
	personID := uuid.New()

	assignments, err := testScheduler(t).Optimize(
		context.Background(),
		[]domain.AvailabilityRule{recurringAvailability(personID, roleID, domain.Monday, 9, 17)},
		[]domain.BusinessRule{recurringBusiness(roleID, domain.Monday, 9, 17)},
		[]int{1}, 2024,
		domain.Strategy("made_up"),
	)

	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, personID, assignments[0].PersonID)
}

func TestOptimizeWithoutRulesReturnsNothing(t *testing.T) {
	roleID := uuid.New()

	assignments, err := testScheduler(t).Optimize(
		context.Background(), nil, []domain.BusinessRule{recurringBusiness(roleID, domain.Monday, 9, 17)},
		[]int{1}, 2024, domain.StrategyMaximizeCoverage,
	)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	assignments, err = testScheduler(t).Optimize(
		context.Background(),
		[]domain.AvailabilityRule{recurringAvailability(uuid.New(), roleID, domain.Monday, 9, 17)},
		nil, []int{1}, 2024, domain.StrategyMaximizeCoverage,
	)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}
