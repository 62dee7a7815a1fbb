package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidWeekday   = errors.New("day of week must be between 0 (Monday) and 6 (Sunday)")
)

// RuleMode is the tagged form of an hour rule's applicability. The flat
// column layout (optional fields plus a recurring flag) is kept for storage
// compatibility; Mode derives exactly one variant from it.
type RuleMode interface {
	isRuleMode()
}

// SpecificDateMode applies the rule on a single calendar date.
type SpecificDateMode struct {
	Date time.Time
}

// RecurringWeekdayMode applies the rule on every matching weekday, gated by
// an optional date window.
type RecurringWeekdayMode struct {
	Day   Weekday
	From  *time.Time
	Until *time.Time
}

// DatedRangeMode applies the rule on every date within a window, regardless
// of weekday.
type DatedRangeMode struct {
	From  time.Time
	Until time.Time
}

func (SpecificDateMode) isRuleMode()     {}
func (RecurringWeekdayMode) isRuleMode() {}
func (DatedRangeMode) isRuleMode()       {}

// HourRule is the shared shape of availability and business-hour rules: a
// daily time range plus one of three applicability modes.
type HourRule struct {
	ID           uuid.UUID
	DayOfWeek    *Weekday
	StartTime    TimeOfDay
	EndTime      TimeOfDay
	StartDate    *time.Time
	EndDate      *time.Time
	IsRecurring  bool
	SpecificDate *time.Time
}

// Validate checks the time range and weekday bounds.
func (r HourRule) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return ErrInvalidTimeRange
	}
	if r.DayOfWeek != nil && !r.DayOfWeek.Valid() {
		return ErrInvalidWeekday
	}
	return nil
}

// Mode resolves the applicability variant. Precedence: a specific date
// dominates; then recurring-by-weekday; then a dated range. Rules matching
// no variant return nil and never expand.
func (r HourRule) Mode() RuleMode {
	switch {
	case r.SpecificDate != nil:
		return SpecificDateMode{Date: NormalizeDate(*r.SpecificDate)}
	case r.IsRecurring && r.DayOfWeek != nil:
		return RecurringWeekdayMode{Day: *r.DayOfWeek, From: r.StartDate, Until: r.EndDate}
	case r.StartDate != nil && r.EndDate != nil:
		return DatedRangeMode{From: NormalizeDate(*r.StartDate), Until: NormalizeDate(*r.EndDate)}
	default:
		return nil
	}
}

// AppliesOn reports whether the rule yields an instance on the given date.
func (r HourRule) AppliesOn(d time.Time) bool {
	switch mode := r.Mode().(type) {
	case SpecificDateMode:
		return mode.Date.Equal(d)
	case RecurringWeekdayMode:
		if mode.Day != WeekdayOf(d) {
			return false
		}
		if mode.From != nil && d.Before(NormalizeDate(*mode.From)) {
			return false
		}
		if mode.Until != nil && d.After(NormalizeDate(*mode.Until)) {
			return false
		}
		return true
	case DatedRangeMode:
		return !d.Before(mode.From) && !d.After(mode.Until)
	default:
		return false
	}
}

// Expand yields one concrete slot per date in the window the rule applies
// to. The result order follows the input date order.
func (r HourRule) Expand(dates []time.Time) []Slot {
	var slots []Slot
	for _, d := range dates {
		if r.AppliesOn(d) {
			slots = append(slots, Slot{Date: d, Start: r.StartTime, End: r.EndTime})
		}
	}
	return slots
}

// OverlapsWindow reports whether the rule can produce any instance within
// [start, end]. Recurring weekday rules always overlap; their own window is
// re-checked during expansion.
func (r HourRule) OverlapsWindow(start, end time.Time) bool {
	if r.SpecificDate != nil {
		d := NormalizeDate(*r.SpecificDate)
		return !d.Before(start) && !d.After(end)
	}
	if r.StartDate != nil && r.EndDate != nil {
		return !NormalizeDate(*r.EndDate).Before(start) && !NormalizeDate(*r.StartDate).After(end)
	}
	if r.IsRecurring && r.DayOfWeek != nil {
		return true
	}
	return false
}

// AvailabilityRule is a person's declared working window for a role.
type AvailabilityRule struct {
	HourRule
	PersonID uuid.UUID
	RoleID   uuid.UUID
}

// BusinessRule is a role's required-coverage window.
type BusinessRule struct {
	HourRule
	RoleID uuid.UUID
}
