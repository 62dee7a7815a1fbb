package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotOn(day int, startHour, endHour int) Slot {
	return Slot{
		Date:  DateOf(2024, time.January, day),
		Start: NewTimeOfDay(startHour, 0, 0),
		End:   NewTimeOfDay(endHour, 0, 0),
	}
}

func TestSlotOverlaps(t *testing.T) {
	assert.True(t, slotOn(1, 9, 12).Overlaps(slotOn(1, 11, 14)))
	assert.True(t, slotOn(1, 9, 17).Overlaps(slotOn(1, 10, 11)))

	// Touching slots do not overlap.
	assert.False(t, slotOn(1, 9, 12).Overlaps(slotOn(1, 12, 15)))

	// Different dates never overlap.
	assert.False(t, slotOn(1, 9, 12).Overlaps(slotOn(2, 9, 12)))
}

func TestSlotDurationHours(t *testing.T) {
	assert.Equal(t, 8, slotOn(1, 9, 17).DurationHours())

	half := Slot{Date: DateOf(2024, time.January, 1), Start: NewTimeOfDay(9, 0, 0), End: NewTimeOfDay(9, 30, 0)}
	assert.Equal(t, 0, half.DurationHours())
}

func TestSlotLess(t *testing.T) {
	assert.True(t, slotOn(1, 9, 12).Less(slotOn(2, 8, 9)))
	assert.True(t, slotOn(1, 9, 12).Less(slotOn(1, 10, 11)))
	assert.True(t, slotOn(1, 9, 12).Less(slotOn(1, 9, 13)))
	assert.False(t, slotOn(1, 9, 12).Less(slotOn(1, 9, 12)))
}

func TestSlotGapHours(t *testing.T) {
	// Same day: 12:00 end to 13:00 start is one hour.
	assert.Equal(t, 1, slotOn(1, 9, 12).GapHours(slotOn(1, 13, 17)))
	assert.Equal(t, 0, slotOn(1, 9, 12).GapHours(slotOn(1, 12, 17)))

	// Across days: Monday 17:00 to Tuesday 09:00 is sixteen hours.
	assert.Equal(t, 16, slotOn(1, 9, 17).GapHours(slotOn(2, 9, 17)))
}

func TestExpandBusinessRulesSortedAndDeduplicated(t *testing.T) {
	roleID := uuid.New()
	week := DatesForWeeks([]int{1}, 2024)

	monday := weekdayPtr(Monday)
	tuesday := weekdayPtr(Tuesday)
	nine := NewTimeOfDay(9, 0, 0)
	five := NewTimeOfDay(17, 0, 0)

	rules := []BusinessRule{
		{HourRule: HourRule{ID: uuid.New(), DayOfWeek: tuesday, StartTime: nine, EndTime: five, IsRecurring: true}, RoleID: roleID},
		{HourRule: HourRule{ID: uuid.New(), DayOfWeek: monday, StartTime: nine, EndTime: five, IsRecurring: true}, RoleID: roleID},
		// Duplicate of the Monday window from a second rule.
		{HourRule: HourRule{ID: uuid.New(), DayOfWeek: monday, StartTime: nine, EndTime: five, IsRecurring: true}, RoleID: roleID},
	}

	slots := ExpandBusinessRules(rules, week)
	require.Len(t, slots, 2)
	assert.Equal(t, DateOf(2024, time.January, 1), slots[0].Date)
	assert.Equal(t, DateOf(2024, time.January, 2), slots[1].Date)

	// Rule order does not change the canonical result.
	reversed := []BusinessRule{rules[2], rules[1], rules[0]}
	assert.Equal(t, slots, ExpandBusinessRules(reversed, week))
}

func TestAvailabilitySetCovers(t *testing.T) {
	personID := uuid.New()
	roleID := uuid.New()
	week := DatesForWeeks([]int{1}, 2024)

	rules := []AvailabilityRule{{
		HourRule: HourRule{
			ID:          uuid.New(),
			DayOfWeek:   weekdayPtr(Monday),
			StartTime:   NewTimeOfDay(8, 0, 0),
			EndTime:     NewTimeOfDay(18, 0, 0),
			IsRecurring: true,
		},
		PersonID: personID,
		RoleID:   roleID,
	}}
	set := ExpandAvailabilityRules(rules, week)

	// Containment: the required slot must fit inside an availability window.
	assert.True(t, set.Covers(personID, slotOn(1, 9, 17)))
	assert.True(t, set.Covers(personID, slotOn(1, 8, 18)))
	assert.False(t, set.Covers(personID, slotOn(1, 7, 12)))
	assert.False(t, set.Covers(personID, slotOn(1, 9, 19)))

	// Wrong date or wrong person never covers.
	assert.False(t, set.Covers(personID, slotOn(2, 9, 17)))
	assert.False(t, set.Covers(uuid.New(), slotOn(1, 9, 17)))
}
