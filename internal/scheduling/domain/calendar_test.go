package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStartReferenceWeek(t *testing.T) {
	// 2024-01-01 is a Monday, so week 1 starts on Jan 1 itself.
	assert.Equal(t, DateOf(2024, time.January, 1), WeekStart(1, 2024))
	assert.Equal(t, DateOf(2024, time.January, 8), WeekStart(2, 2024))
}

func TestWeekStartNeverRollsIntoPreviousYear(t *testing.T) {
	// 2023-01-01 is a Sunday; the Monday on or before it lies in 2022, so
	// week 1 advances to the first Monday inside the year.
	start := WeekStart(1, 2023)
	assert.Equal(t, DateOf(2023, time.January, 2), start)
	assert.Equal(t, Monday, WeekdayOf(start))

	for year := 2020; year <= 2030; year++ {
		start := WeekStart(1, year)
		assert.Equal(t, year, start.Year(), "week 1 of %d", year)
		assert.Equal(t, Monday, WeekdayOf(start), "week 1 of %d", year)
	}
}

func TestDatesForWeeksSortedUnion(t *testing.T) {
	dates := DatesForWeeks([]int{2, 1}, 2024)

	require.Len(t, dates, 14)
	assert.Equal(t, DateOf(2024, time.January, 1), dates[0])
	assert.Equal(t, DateOf(2024, time.January, 14), dates[13])
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i-1].Before(dates[i]), "dates must be strictly increasing")
	}
}

func TestDatesForWeeksDeduplicates(t *testing.T) {
	dates := DatesForWeeks([]int{1, 1}, 2024)
	assert.Len(t, dates, 7)
}

func TestDatesForWeeksEmpty(t *testing.T) {
	assert.Empty(t, DatesForWeeks(nil, 2024))
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(time.February, 2024)
	assert.Equal(t, DateOf(2024, time.February, 1), start)
	assert.Equal(t, DateOf(2024, time.February, 29), end)

	start, end = MonthRange(time.December, 2023)
	assert.Equal(t, DateOf(2023, time.December, 1), start)
	assert.Equal(t, DateOf(2023, time.December, 31), end)
}

func TestDateRangeInclusive(t *testing.T) {
	dates := DateRange(DateOf(2024, time.January, 1), DateOf(2024, time.January, 3))
	require.Len(t, dates, 3)
	assert.Equal(t, DateOf(2024, time.January, 3), dates[2])

	assert.Len(t, DateRange(DateOf(2024, time.January, 1), DateOf(2024, time.January, 1)), 1)
	assert.Empty(t, DateRange(DateOf(2024, time.January, 2), DateOf(2024, time.January, 1)))
}
