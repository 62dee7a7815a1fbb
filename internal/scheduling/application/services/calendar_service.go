package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dimun/agendalo/internal/scheduling/domain"
	"github.com/google/uuid"
)

// CalendarEntry is one availability instance annotated with the person and
// role it belongs to, for the read-only calendar views.
type CalendarEntry struct {
	Date       time.Time
	PersonID   uuid.UUID
	PersonName string
	RoleID     uuid.UUID
	RoleName   string
	Start      domain.TimeOfDay
	End        domain.TimeOfDay
}

// CalendarService renders availability rules as week and month views.
type CalendarService struct {
	availability domain.AvailabilityRepository
	people       domain.PersonRepository
	roles        domain.RoleRepository
}

// NewCalendarService creates a calendar view service.
func NewCalendarService(
	availability domain.AvailabilityRepository,
	people domain.PersonRepository,
	roles domain.RoleRepository,
) *CalendarService {
	return &CalendarService{availability: availability, people: people, roles: roles}
}

// Week returns the entries for the seven days of a nominal week.
func (s *CalendarService) Week(ctx context.Context, week, year int) ([]CalendarEntry, error) {
	start := domain.WeekStart(week, year)
	return s.entriesBetween(ctx, start, start.AddDate(0, 0, 6))
}

// Month returns the entries for a calendar month.
func (s *CalendarService) Month(ctx context.Context, month time.Month, year int) ([]CalendarEntry, error) {
	start, end := domain.MonthRange(month, year)
	return s.entriesBetween(ctx, start, end)
}

func (s *CalendarService) entriesBetween(ctx context.Context, start, end time.Time) ([]CalendarEntry, error) {
	rules, err := s.availability.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load availability hours: %w", err)
	}

	people := make(map[uuid.UUID]*domain.Person)
	roles := make(map[uuid.UUID]*domain.Role)

	var entries []CalendarEntry
	for _, d := range domain.DateRange(start, end) {
		for _, rule := range rules {
			if !rule.AppliesOn(d) {
				continue
			}

			person, ok := people[rule.PersonID]
			if !ok {
				person, err = s.people.FindByID(ctx, rule.PersonID)
				if err != nil {
					return nil, fmt.Errorf("look up person: %w", err)
				}
				people[rule.PersonID] = person
			}
			role, ok := roles[rule.RoleID]
			if !ok {
				role, err = s.roles.FindByID(ctx, rule.RoleID)
				if err != nil {
					return nil, fmt.Errorf("look up role: %w", err)
				}
				roles[rule.RoleID] = role
			}
			if person == nil || role == nil {
				continue
			}

			entries = append(entries, CalendarEntry{
				Date:       d,
				PersonID:   person.ID,
				PersonName: person.Name,
				RoleID:     role.ID,
				RoleName:   role.Name,
				Start:      rule.StartTime,
				End:        rule.EndTime,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].Start < entries[j].Start
	})
	return entries, nil
}
