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

type stubRoles struct {
	roles map[uuid.UUID]domain.Role
}

func (s *stubRoles) Create(_ context.Context, role domain.Role) error {
	s.roles[role.ID] = role
	return nil
}

func (s *stubRoles) FindByID(_ context.Context, id uuid.UUID) (*domain.Role, error) {
	if role, ok := s.roles[id]; ok {
		return &role, nil
	}
	return nil, nil
}

func (s *stubRoles) FindAll(context.Context) ([]domain.Role, error) {
	var out []domain.Role
	for _, role := range s.roles {
		out = append(out, role)
	}
	return out, nil
}

type stubAvailability struct {
	rules []domain.AvailabilityRule
}

func (s *stubAvailability) Create(_ context.Context, rule domain.AvailabilityRule) error {
	s.rules = append(s.rules, rule)
	return nil
}

func (s *stubAvailability) FindByPerson(_ context.Context, personID uuid.UUID) ([]domain.AvailabilityRule, error) {
	var out []domain.AvailabilityRule
	for _, r := range s.rules {
		if r.PersonID == personID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubAvailability) FindByRole(_ context.Context, roleID uuid.UUID) ([]domain.AvailabilityRule, error) {
	var out []domain.AvailabilityRule
	for _, r := range s.rules {
		if r.RoleID == roleID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubAvailability) FindByDateRange(_ context.Context, start, end time.Time) ([]domain.AvailabilityRule, error) {
	var out []domain.AvailabilityRule
	for _, r := range s.rules {
		if r.OverlapsWindow(start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubAvailability) Delete(context.Context, uuid.UUID) (bool, error) { return false, nil }

type stubBusiness struct {
	rules []domain.BusinessRule
}

func (s *stubBusiness) Create(_ context.Context, rule domain.BusinessRule) error {
	s.rules = append(s.rules, rule)
	return nil
}

func (s *stubBusiness) FindByID(context.Context, uuid.UUID) (*domain.BusinessRule, error) {
	return nil, nil
}

func (s *stubBusiness) FindByRole(_ context.Context, roleID uuid.UUID) ([]domain.BusinessRule, error) {
	var out []domain.BusinessRule
	for _, r := range s.rules {
		if r.RoleID == roleID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubBusiness) FindAll(context.Context) ([]domain.BusinessRule, error) {
	return s.rules, nil
}

func (s *stubBusiness) Delete(context.Context, uuid.UUID) (bool, error) { return false, nil }

type stubAgendas struct {
	agendas  map[uuid.UUID]domain.Agenda
	entries  []domain.AgendaEntry
	coverage []domain.AgendaCoverage
}

func newStubAgendas() *stubAgendas {
	return &stubAgendas{agendas: make(map[uuid.UUID]domain.Agenda)}
}

func (s *stubAgendas) Create(_ context.Context, agenda domain.Agenda) error {
	s.agendas[agenda.ID] = agenda
	return nil
}

func (s *stubAgendas) FindByID(_ context.Context, id uuid.UUID) (*domain.Agenda, error) {
	if agenda, ok := s.agendas[id]; ok {
		return &agenda, nil
	}
	return nil, nil
}

func (s *stubAgendas) FindByRole(_ context.Context, roleID uuid.UUID) ([]domain.Agenda, error) {
	var out []domain.Agenda
	for _, a := range s.agendas {
		if a.RoleID == roleID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAgendas) FindByRoleAndStatus(ctx context.Context, roleID uuid.UUID, status domain.AgendaStatus) ([]domain.Agenda, error) {
	all, _ := s.FindByRole(ctx, roleID)
	var out []domain.Agenda
	for _, a := range all {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAgendas) UpdateStatus(_ context.Context, id uuid.UUID, status domain.AgendaStatus) (bool, error) {
	agenda, ok := s.agendas[id]
	if !ok {
		return false, nil
	}
	agenda.Status = status
	s.agendas[id] = agenda
	return true, nil
}

func (s *stubAgendas) CreateEntry(_ context.Context, entry domain.AgendaEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubAgendas) FindEntriesByAgenda(_ context.Context, agendaID uuid.UUID) ([]domain.AgendaEntry, error) {
	var out []domain.AgendaEntry
	for _, e := range s.entries {
		if e.AgendaID == agendaID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubAgendas) CreateCoverage(_ context.Context, coverage domain.AgendaCoverage) error {
	s.coverage = append(s.coverage, coverage)
	return nil
}

func (s *stubAgendas) FindCoverageByAgenda(_ context.Context, agendaID uuid.UUID) ([]domain.AgendaCoverage, error) {
	var out []domain.AgendaCoverage
	for _, c := range s.coverage {
		if c.AgendaID == agendaID {
			out = append(out, c)
		}
	}
	return out, nil
}

type serviceFixture struct {
	service      *AgendaService
	roles        *stubRoles
	availability *stubAvailability
	business     *stubBusiness
	agendas      *stubAgendas
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		roles:        &stubRoles{roles: make(map[uuid.UUID]domain.Role)},
		availability: &stubAvailability{},
		business:     &stubBusiness{},
		agendas:      newStubAgendas(),
	}
	logger := slog.New(slog.DiscardHandler)
	f.service = NewAgendaService(
		f.agendas, f.availability, f.business, f.roles,
		NewCPScheduler(5*time.Second, logger), logger,
	)
	return f
}

func (f *serviceFixture) seedRole(t *testing.T, name string) uuid.UUID {
	t.Helper()
	role := domain.Role{ID: uuid.New(), Name: name}
	require.NoError(t, f.roles.Create(context.Background(), role))
	return role.ID
}

func TestGenerateDraftUnknownRole(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.GenerateDraft(context.Background(), uuid.New(), []int{1}, 2024, domain.StrategyMaximizeCoverage)

	assert.ErrorIs(t, err, domain.ErrRoleNotFound)
	assert.Empty(t, f.agendas.agendas)
}

func TestGenerateDraftWithoutRules(t *testing.T) {
	f := newServiceFixture(t)
	roleID := f.seedRole(t, "Nurse")

	_, err := f.service.GenerateDraft(context.Background(), roleID, []int{1}, 2024, domain.StrategyMaximizeCoverage)

	assert.ErrorIs(t, err, domain.ErrNoScheduleData)
	assert.Empty(t, f.agendas.agendas)
}

func TestGenerateDraftWithoutWeeks(t *testing.T) {
	f := newServiceFixture(t)
	roleID := f.seedRole(t, "Nurse")

	_, err := f.service.GenerateDraft(context.Background(), roleID, nil, 2024, domain.StrategyMaximizeCoverage)

	assert.ErrorIs(t, err, domain.ErrNoScheduleData)
}

func TestGenerateDraftPersistsEntriesAndCoverage(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	roleID := f.seedRole(t, "Nurse")
	personID := uuid.New()

	require.NoError(t, f.availability.Create(ctx, recurringAvailability(personID, roleID, domain.Monday, 9, 17)))
	require.NoError(t, f.business.Create(ctx, recurringBusiness(roleID, domain.Monday, 9, 17)))

	details, err := f.service.GenerateDraft(ctx, roleID, []int{1}, 2024, domain.StrategyMaximizeCoverage)

	require.NoError(t, err)
	assert.Equal(t, domain.AgendaStatusDraft, details.Agenda.Status)
	assert.Equal(t, roleID, details.Agenda.RoleID)

	require.Len(t, details.Entries, 1)
	entry := details.Entries[0]
	assert.Equal(t, details.Agenda.ID, entry.AgendaID)
	assert.Equal(t, personID, entry.PersonID)
	assert.Equal(t, domain.DateOf(2024, time.January, 1), entry.Date)

	require.Len(t, details.Coverage, 1)
	cov := details.Coverage[0]
	assert.Equal(t, details.Agenda.ID, cov.AgendaID)
	assert.True(t, cov.IsCovered)
	assert.Equal(t, 1, cov.RequiredPersonCount)

	// Everything landed in storage, not just the response.
	stored, err := f.service.GetAgenda(ctx, details.Agenda.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Entries, 1)
	assert.Len(t, stored.Coverage, 1)
}

func TestGenerateDraftInfeasibleStillRecordsCoverage(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	roleID := f.seedRole(t, "Nurse")
	personID := uuid.New()

	// Availability on the wrong weekday: the solve is infeasible but the
	// agenda and its uncovered slots are still written.
	require.NoError(t, f.availability.Create(ctx, recurringAvailability(personID, roleID, domain.Tuesday, 9, 17)))
	require.NoError(t, f.business.Create(ctx, recurringBusiness(roleID, domain.Monday, 9, 17)))

	details, err := f.service.GenerateDraft(ctx, roleID, []int{1}, 2024, domain.StrategyMaximizeCoverage)

	require.NoError(t, err)
	assert.Empty(t, details.Entries)
	require.Len(t, details.Coverage, 1)
	assert.False(t, details.Coverage[0].IsCovered)
	assert.Equal(t, details.Agenda.ID, details.Coverage[0].AgendaID)
}

func TestGenerateDraftSpecificDateBusinessRule(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	roleID := f.seedRole(t, "Nurse")
	personID := uuid.New()

	specific := domain.DateOf(2024, time.January, 1)
	require.NoError(t, f.business.Create(ctx, domain.BusinessRule{
		HourRule: domain.HourRule{
			ID:           uuid.New(),
			SpecificDate: &specific,
			StartTime:    tod(9),
			EndTime:      tod(17),
		},
		RoleID: roleID,
	}))
	// An availability rule exists but never matches the required date.
	require.NoError(t, f.availability.Create(ctx, recurringAvailability(personID, roleID, domain.Sunday, 9, 17)))

	details, err := f.service.GenerateDraft(ctx, roleID, []int{1}, 2024, domain.StrategyMaximizeCoverage)

	require.NoError(t, err)
	assert.Empty(t, details.Entries)
	require.Len(t, details.Coverage, 1)
	assert.Equal(t, specific, details.Coverage[0].Date)
	assert.False(t, details.Coverage[0].IsCovered)
}

func TestGenerateDraftCoverageMatchesExpandedSlots(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	roleID := f.seedRole(t, "Nurse")
	personID := uuid.New()

	// Two identical business rules collapse to one required slot per day,
	// so coverage rows stay 1-to-1 with distinct slots.
	require.NoError(t, f.business.Create(ctx, recurringBusiness(roleID, domain.Monday, 9, 17)))
	require.NoError(t, f.business.Create(ctx, recurringBusiness(roleID, domain.Monday, 9, 17)))
	require.NoError(t, f.business.Create(ctx, recurringBusiness(roleID, domain.Tuesday, 9, 17)))
	require.NoError(t, f.availability.Create(ctx, recurringAvailability(personID, roleID, domain.Monday, 9, 17)))
	require.NoError(t, f.availability.Create(ctx, recurringAvailability(personID, roleID, domain.Tuesday, 9, 17)))

	details, err := f.service.GenerateDraft(ctx, roleID, []int{1}, 2024, domain.StrategyMaximizeCoverage)

	require.NoError(t, err)
	require.Len(t, details.Coverage, 2)
	assert.True(t, details.Coverage[0].Date.Before(details.Coverage[1].Date))
	for _, cov := range details.Coverage {
		assert.True(t, cov.IsCovered)
		assert.Equal(t, details.Agenda.ID, cov.AgendaID)
	}
}

func TestGenerateDraftIgnoresRulesOutsideWindow(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	roleID := f.seedRole(t, "Nurse")
	personID := uuid.New()

	// Only rules pinned to dates outside the requested weeks exist, so the
	// window filter leaves nothing to schedule.
	farDate := domain.DateOf(2024, time.June, 3)
	require.NoError(t, f.business.Create(ctx, domain.BusinessRule{
		HourRule: domain.HourRule{ID: uuid.New(), SpecificDate: &farDate, StartTime: tod(9), EndTime: tod(17)},
		RoleID:   roleID,
	}))
	require.NoError(t, f.availability.Create(ctx, domain.AvailabilityRule{
		HourRule: domain.HourRule{ID: uuid.New(), SpecificDate: &farDate, StartTime: tod(9), EndTime: tod(17)},
		PersonID: personID,
		RoleID:   roleID,
	}))

	_, err := f.service.GenerateDraft(ctx, roleID, []int{1}, 2024, domain.StrategyMaximizeCoverage)

	assert.ErrorIs(t, err, domain.ErrNoScheduleData)
}

func TestGetAgendaNotFound(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.GetAgenda(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrAgendaNotFound)
}

func TestListAgendasFiltersByStatus(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	roleID := f.seedRole(t, "Nurse")
	personID := uuid.New()

	require.NoError(t, f.availability.Create(ctx, recurringAvailability(personID, roleID, domain.Monday, 9, 17)))
	require.NoError(t, f.business.Create(ctx, recurringBusiness(roleID, domain.Monday, 9, 17)))

	first, err := f.service.GenerateDraft(ctx, roleID, []int{1}, 2024, domain.StrategyMaximizeCoverage)
	require.NoError(t, err)
	_, err = f.service.GenerateDraft(ctx, roleID, []int{2}, 2024, domain.StrategyMaximizeCoverage)
	require.NoError(t, err)

	all, err := f.service.ListAgendas(ctx, roleID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	ok, err := f.agendas.UpdateStatus(ctx, first.Agenda.ID, domain.AgendaStatus("published"))
	require.NoError(t, err)
	require.True(t, ok)

	drafts, err := f.service.ListAgendas(ctx, roleID, domain.AgendaStatusDraft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.NotEqual(t, first.Agenda.ID, drafts[0].Agenda.ID)
}
