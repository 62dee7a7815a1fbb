package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Slot is one concrete (date, start, end) instance expanded from an hour
// rule. Dates are normalized to UTC midnight, so Slot is comparable and can
// key maps directly.
type Slot struct {
	Date  time.Time
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps reports whether two slots share any time on the same date.
// Touching slots (one ends exactly when the other starts) do not overlap.
func (s Slot) Overlaps(other Slot) bool {
	if !s.Date.Equal(other.Date) {
		return false
	}
	return !(s.End <= other.Start || other.End <= s.Start)
}

// DurationHours is the slot length in whole hours, truncated.
func (s Slot) DurationHours() int {
	return int(s.End-s.Start) / 3600
}

// Less orders slots by date, then start time, then end time.
func (s Slot) Less(other Slot) bool {
	if !s.Date.Equal(other.Date) {
		return s.Date.Before(other.Date)
	}
	if s.Start != other.Start {
		return s.Start < other.Start
	}
	return s.End < other.End
}

// GapHours is the wall-clock distance in whole hours from the end of s to
// the start of next, truncated toward zero.
func (s Slot) GapHours(next Slot) int {
	seconds := int(next.Date.Sub(s.Date).Seconds()) + int(next.Start) - int(s.End)
	return seconds / 3600
}

// ExpandBusinessRules expands business rules over a date window into the
// canonical required-slot list: sorted by (date, start, end) and
// deduplicated, so the result is independent of rule insertion order.
func ExpandBusinessRules(rules []BusinessRule, dates []time.Time) []Slot {
	seen := make(map[Slot]struct{})
	var slots []Slot
	for _, rule := range rules {
		for _, slot := range rule.Expand(dates) {
			if _, ok := seen[slot]; ok {
				continue
			}
			seen[slot] = struct{}{}
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Less(slots[j]) })
	return slots
}

// AvailabilitySet holds expanded availability instances keyed by person and
// slot.
type AvailabilitySet map[PersonSlot]struct{}

// PersonSlot identifies one availability instance.
type PersonSlot struct {
	PersonID uuid.UUID
	Slot     Slot
}

// ExpandAvailabilityRules expands availability rules over a date window.
func ExpandAvailabilityRules(rules []AvailabilityRule, dates []time.Time) AvailabilitySet {
	set := make(AvailabilitySet)
	for _, rule := range rules {
		for _, slot := range rule.Expand(dates) {
			set[PersonSlot{PersonID: rule.PersonID, Slot: slot}] = struct{}{}
		}
	}
	return set
}

// Covers reports whether the person has an availability instance on the
// slot's date whose time range contains the slot.
func (a AvailabilitySet) Covers(personID uuid.UUID, slot Slot) bool {
	for ps := range a {
		if ps.PersonID != personID || !ps.Slot.Date.Equal(slot.Date) {
			continue
		}
		if ps.Slot.Start <= slot.Start && slot.End <= ps.Slot.End {
			return true
		}
	}
	return false
}
