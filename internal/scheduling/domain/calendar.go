package domain

import (
	"sort"
	"time"
)

// WeekStart returns the Monday that opens the given nominal week of a year.
//
// The convention is pragmatic rather than strict ISO-8601: take the Monday
// on or before January 1st; if that Monday still belongs to the previous
// year, advance one week. Week 1 then starts at that first Monday, and each
// following week is seven days later. For 2024, WeekStart(1, 2024) is
// 2024-01-01 (a Monday).
func WeekStart(week, year int) time.Time {
	jan1 := DateOf(year, time.January, 1)
	firstMonday := jan1.AddDate(0, 0, -int(WeekdayOf(jan1)))
	if firstMonday.Year() < year {
		firstMonday = firstMonday.AddDate(0, 0, 7)
	}
	return firstMonday.AddDate(0, 0, (week-1)*7)
}

// DatesForWeeks expands week numbers into the union of their seven-day
// spans, sorted and deduplicated.
func DatesForWeeks(weeks []int, year int) []time.Time {
	seen := make(map[time.Time]struct{}, len(weeks)*7)
	dates := make([]time.Time, 0, len(weeks)*7)
	for _, week := range weeks {
		start := WeekStart(week, year)
		for offset := 0; offset < 7; offset++ {
			d := start.AddDate(0, 0, offset)
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// MonthRange returns the first and last day of a month.
func MonthRange(month time.Month, year int) (time.Time, time.Time) {
	start := DateOf(year, month, 1)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// DateRange returns every day from start through end inclusive.
func DateRange(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
