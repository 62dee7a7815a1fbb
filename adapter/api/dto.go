package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/dimun/agendalo/internal/scheduling/application/services"
	"github.com/dimun/agendalo/internal/scheduling/domain"
)

type generateAgendaRequest struct {
	RoleID               uuid.UUID `json:"role_id"`
	Weeks                []int     `json:"weeks"`
	Year                 int       `json:"year"`
	OptimizationStrategy string    `json:"optimization_strategy"`
}

type agendaResponse struct {
	ID        uuid.UUID          `json:"id"`
	RoleID    uuid.UUID          `json:"role_id"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Entries   []entryResponse    `json:"entries"`
	Coverage  []coverageResponse `json:"coverage"`
}

type entryResponse struct {
	ID        uuid.UUID        `json:"id"`
	AgendaID  uuid.UUID        `json:"agenda_id"`
	PersonID  uuid.UUID        `json:"person_id"`
	Date      string           `json:"date"`
	StartTime domain.TimeOfDay `json:"start_time"`
	EndTime   domain.TimeOfDay `json:"end_time"`
	RoleID    uuid.UUID        `json:"role_id"`
}

type coverageResponse struct {
	ID                  uuid.UUID        `json:"id"`
	AgendaID            uuid.UUID        `json:"agenda_id"`
	Date                string           `json:"date"`
	StartTime           domain.TimeOfDay `json:"start_time"`
	EndTime             domain.TimeOfDay `json:"end_time"`
	RoleID              uuid.UUID        `json:"role_id"`
	IsCovered           bool             `json:"is_covered"`
	RequiredPersonCount int              `json:"required_person_count"`
}

func toAgendaResponse(details *services.AgendaDetails) agendaResponse {
	resp := agendaResponse{
		ID:        details.Agenda.ID,
		RoleID:    details.Agenda.RoleID,
		Status:    string(details.Agenda.Status),
		CreatedAt: details.Agenda.CreatedAt,
		UpdatedAt: details.Agenda.UpdatedAt,
		Entries:   make([]entryResponse, 0, len(details.Entries)),
		Coverage:  make([]coverageResponse, 0, len(details.Coverage)),
	}
	for _, e := range details.Entries {
		resp.Entries = append(resp.Entries, entryResponse{
			ID:        e.ID,
			AgendaID:  e.AgendaID,
			PersonID:  e.PersonID,
			Date:      e.Date.Format(domain.DateLayout),
			StartTime: e.Start,
			EndTime:   e.End,
			RoleID:    e.RoleID,
		})
	}
	for _, c := range details.Coverage {
		resp.Coverage = append(resp.Coverage, coverageResponse{
			ID:                  c.ID,
			AgendaID:            c.AgendaID,
			Date:                c.Date.Format(domain.DateLayout),
			StartTime:           c.Start,
			EndTime:             c.End,
			RoleID:              c.RoleID,
			IsCovered:           c.IsCovered,
			RequiredPersonCount: c.RequiredPersonCount,
		})
	}
	return resp
}

type personRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type personResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func toPersonResponse(p domain.Person) personResponse {
	return personResponse{ID: p.ID, Name: p.Name, Email: p.Email}
}

type roleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type roleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

func toRoleResponse(r domain.Role) roleResponse {
	return roleResponse{ID: r.ID, Name: r.Name, Description: r.Description}
}

// hourRuleRequest is the shared body for availability and business hours.
// Dates use YYYY-MM-DD, times HH:MM:SS.
type hourRuleRequest struct {
	RoleID       uuid.UUID `json:"role_id"`
	DayOfWeek    *int      `json:"day_of_week"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	StartDate    *string   `json:"start_date"`
	EndDate      *string   `json:"end_date"`
	IsRecurring  bool      `json:"is_recurring"`
	SpecificDate *string   `json:"specific_date"`
}

func (r hourRuleRequest) toHourRule() (domain.HourRule, error) {
	rule := domain.HourRule{
		ID:          uuid.New(),
		IsRecurring: r.IsRecurring,
	}

	var err error
	if rule.StartTime, err = domain.ParseTimeOfDay(r.StartTime); err != nil {
		return domain.HourRule{}, err
	}
	if rule.EndTime, err = domain.ParseTimeOfDay(r.EndTime); err != nil {
		return domain.HourRule{}, err
	}
	if r.DayOfWeek != nil {
		day := domain.Weekday(*r.DayOfWeek)
		rule.DayOfWeek = &day
	}
	if rule.StartDate, err = parseOptionalDate(r.StartDate); err != nil {
		return domain.HourRule{}, err
	}
	if rule.EndDate, err = parseOptionalDate(r.EndDate); err != nil {
		return domain.HourRule{}, err
	}
	if rule.SpecificDate, err = parseOptionalDate(r.SpecificDate); err != nil {
		return domain.HourRule{}, err
	}

	if err := rule.Validate(); err != nil {
		return domain.HourRule{}, err
	}
	return rule, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type availabilityResponse struct {
	ID           uuid.UUID        `json:"id"`
	PersonID     uuid.UUID        `json:"person_id"`
	RoleID       uuid.UUID        `json:"role_id"`
	DayOfWeek    *int             `json:"day_of_week"`
	StartTime    domain.TimeOfDay `json:"start_time"`
	EndTime      domain.TimeOfDay `json:"end_time"`
	StartDate    *string          `json:"start_date"`
	EndDate      *string          `json:"end_date"`
	IsRecurring  bool             `json:"is_recurring"`
	SpecificDate *string          `json:"specific_date"`
}

func toAvailabilityResponse(rule domain.AvailabilityRule) availabilityResponse {
	return availabilityResponse{
		ID:           rule.ID,
		PersonID:     rule.PersonID,
		RoleID:       rule.RoleID,
		DayOfWeek:    weekdayToInt(rule.DayOfWeek),
		StartTime:    rule.StartTime,
		EndTime:      rule.EndTime,
		StartDate:    formatOptionalDate(rule.StartDate),
		EndDate:      formatOptionalDate(rule.EndDate),
		IsRecurring:  rule.IsRecurring,
		SpecificDate: formatOptionalDate(rule.SpecificDate),
	}
}

type businessHoursResponse struct {
	ID           uuid.UUID        `json:"id"`
	RoleID       uuid.UUID        `json:"role_id"`
	DayOfWeek    *int             `json:"day_of_week"`
	StartTime    domain.TimeOfDay `json:"start_time"`
	EndTime      domain.TimeOfDay `json:"end_time"`
	StartDate    *string          `json:"start_date"`
	EndDate      *string          `json:"end_date"`
	IsRecurring  bool             `json:"is_recurring"`
	SpecificDate *string          `json:"specific_date"`
}

func toBusinessHoursResponse(rule domain.BusinessRule) businessHoursResponse {
	return businessHoursResponse{
		ID:           rule.ID,
		RoleID:       rule.RoleID,
		DayOfWeek:    weekdayToInt(rule.DayOfWeek),
		StartTime:    rule.StartTime,
		EndTime:      rule.EndTime,
		StartDate:    formatOptionalDate(rule.StartDate),
		EndDate:      formatOptionalDate(rule.EndDate),
		IsRecurring:  rule.IsRecurring,
		SpecificDate: formatOptionalDate(rule.SpecificDate),
	}
}

type calendarEntryResponse struct {
	Date       string           `json:"date"`
	PersonID   uuid.UUID        `json:"person_id"`
	PersonName string           `json:"person_name"`
	RoleID     uuid.UUID        `json:"role_id"`
	RoleName   string           `json:"role_name"`
	StartTime  domain.TimeOfDay `json:"start_time"`
	EndTime    domain.TimeOfDay `json:"end_time"`
}

func toCalendarResponse(entries []services.CalendarEntry) []calendarEntryResponse {
	out := make([]calendarEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, calendarEntryResponse{
			Date:       e.Date.Format(domain.DateLayout),
			PersonID:   e.PersonID,
			PersonName: e.PersonName,
			RoleID:     e.RoleID,
			RoleName:   e.RoleName,
			StartTime:  e.Start,
			EndTime:    e.End,
		})
	}
	return out
}

func weekdayToInt(w *domain.Weekday) *int {
	if w == nil {
		return nil
	}
	v := int(*w)
	return &v
}

func formatOptionalDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format(domain.DateLayout)
	return &s
}
