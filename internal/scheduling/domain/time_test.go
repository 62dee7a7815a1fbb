package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30:15")
	require.NoError(t, err)
	assert.Equal(t, 9, tod.Hour())
	assert.Equal(t, 30, tod.Minute())
	assert.Equal(t, 15, tod.Second())
	assert.Equal(t, "09:30:15", tod.String())

	// HH:MM without seconds is accepted.
	short, err := ParseTimeOfDay("14:00")
	require.NoError(t, err)
	assert.Equal(t, "14:00:00", short.String())

	_, err = ParseTimeOfDay("not a time")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("25:00:00")
	assert.Error(t, err)
}

func TestTimeOfDayOrdering(t *testing.T) {
	a := NewTimeOfDay(9, 0, 0)
	b := NewTimeOfDay(17, 0, 0)
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}

func TestTimeOfDayJSON(t *testing.T) {
	tod := NewTimeOfDay(8, 15, 0)
	data, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.Equal(t, `"08:15:00"`, string(data))

	var back TimeOfDay
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tod, back)
}

func TestWeekdayOf(t *testing.T) {
	assert.Equal(t, Monday, WeekdayOf(DateOf(2024, time.January, 1)))
	assert.Equal(t, Sunday, WeekdayOf(DateOf(2024, time.January, 7)))
	assert.Equal(t, Friday, WeekdayOf(DateOf(2024, time.January, 5)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, DateOf(2024, time.March, 15), d)

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestNormalizeDate(t *testing.T) {
	loc := time.FixedZone("x", 3*3600)
	noisy := time.Date(2024, time.March, 15, 22, 45, 12, 99, loc)
	assert.Equal(t, DateOf(2024, time.March, 15), NormalizeDate(noisy))
}
