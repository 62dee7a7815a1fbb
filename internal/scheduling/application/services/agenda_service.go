package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dimun/agendalo/internal/scheduling/domain"
	"github.com/google/uuid"
)

// AgendaDetails bundles an agenda with its entries and coverage rows.
type AgendaDetails struct {
	Agenda   domain.Agenda
	Entries  []domain.AgendaEntry
	Coverage []domain.AgendaCoverage
}

// AgendaService generates draft agendas and reads them back.
type AgendaService struct {
	agendas      domain.AgendaRepository
	availability domain.AvailabilityRepository
	business     domain.BusinessHoursRepository
	roles        domain.RoleRepository
	scheduler    Scheduler
	logger       *slog.Logger
}

// NewAgendaService wires the generation pipeline.
func NewAgendaService(
	agendas domain.AgendaRepository,
	availability domain.AvailabilityRepository,
	business domain.BusinessHoursRepository,
	roles domain.RoleRepository,
	scheduler Scheduler,
	logger *slog.Logger,
) *AgendaService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AgendaService{
		agendas:      agendas,
		availability: availability,
		business:     business,
		roles:        roles,
		scheduler:    scheduler,
		logger:       logger,
	}
}

// GenerateDraft runs one full generation: expand rules, solve, persist the
// agenda with its entries and coverage rows.
//
// It returns domain.ErrRoleNotFound for unknown roles and
// domain.ErrNoScheduleData when no availability or business rule overlaps
// the requested weeks. An infeasible or timed-out solve still produces an
// agenda, with no entries and all coverage rows marked uncovered.
func (s *AgendaService) GenerateDraft(
	ctx context.Context,
	roleID uuid.UUID,
	weeks []int,
	year int,
	strategy domain.Strategy,
) (*AgendaDetails, error) {
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("look up role: %w", err)
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}

	dates := domain.DatesForWeeks(weeks, year)
	if len(dates) == 0 {
		return nil, domain.ErrNoScheduleData
	}
	windowStart := dates[0]
	windowEnd := dates[len(dates)-1]

	availability, err := s.availability.FindByRole(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("load availability hours: %w", err)
	}
	availability = filterAvailability(availability, windowStart, windowEnd)

	business, err := s.business.FindByRole(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("load business service hours: %w", err)
	}
	business = filterBusiness(business, windowStart, windowEnd)

	if len(availability) == 0 || len(business) == 0 {
		return nil, domain.ErrNoScheduleData
	}

	assignments, err := s.scheduler.Optimize(ctx, availability, business, weeks, year, strategy)
	if err != nil {
		return nil, fmt.Errorf("optimize assignments: %w", err)
	}

	agenda := domain.NewDraftAgenda(roleID)
	if err := s.agendas.Create(ctx, agenda); err != nil {
		return nil, fmt.Errorf("create agenda: %w", err)
	}

	entries := make([]domain.AgendaEntry, 0, len(assignments))
	for _, assignment := range assignments {
		entry := domain.AgendaEntry{
			ID:       uuid.New(),
			AgendaID: agenda.ID,
			PersonID: assignment.PersonID,
			Date:     assignment.Date,
			Start:    assignment.Start,
			End:      assignment.End,
			RoleID:   assignment.RoleID,
		}
		if err := s.agendas.CreateEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("create agenda entry: %w", err)
		}
		entries = append(entries, entry)
	}

	coverage, err := s.persistCoverage(ctx, agenda, business, assignments, dates)
	if err != nil {
		return nil, err
	}

	s.logger.Info("generated draft agenda",
		"agenda_id", agenda.ID,
		"role_id", roleID,
		"entries", len(entries),
		"coverage_rows", len(coverage),
		"strategy", string(strategy),
	)

	return &AgendaDetails{Agenda: agenda, Entries: entries, Coverage: coverage}, nil
}

// persistCoverage writes one coverage row per expanded business slot. Every
// row references the agenda that was just created; a slot counts as covered
// only when an assignment matches its exact date and time range.
func (s *AgendaService) persistCoverage(
	ctx context.Context,
	agenda domain.Agenda,
	business []domain.BusinessRule,
	assignments []domain.Assignment,
	dates []time.Time,
) ([]domain.AgendaCoverage, error) {
	assigned := make(map[domain.Slot]struct{}, len(assignments))
	for _, a := range assignments {
		assigned[a.Slot()] = struct{}{}
	}

	required := domain.ExpandBusinessRules(business, dates)
	coverage := make([]domain.AgendaCoverage, 0, len(required))
	for _, slot := range required {
		_, covered := assigned[slot]
		row := domain.AgendaCoverage{
			ID:                  uuid.New(),
			AgendaID:            agenda.ID,
			Date:                slot.Date,
			Start:               slot.Start,
			End:                 slot.End,
			RoleID:              agenda.RoleID,
			IsCovered:           covered,
			RequiredPersonCount: 1,
		}
		if err := s.agendas.CreateCoverage(ctx, row); err != nil {
			return nil, fmt.Errorf("create agenda coverage: %w", err)
		}
		coverage = append(coverage, row)
	}
	return coverage, nil
}

// GetAgenda loads an agenda with its entries and coverage.
func (s *AgendaService) GetAgenda(ctx context.Context, id uuid.UUID) (*AgendaDetails, error) {
	agenda, err := s.agendas.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up agenda: %w", err)
	}
	if agenda == nil {
		return nil, domain.ErrAgendaNotFound
	}
	return s.loadDetails(ctx, *agenda)
}

// ListAgendas returns the agendas of a role, optionally filtered by status.
func (s *AgendaService) ListAgendas(ctx context.Context, roleID uuid.UUID, status domain.AgendaStatus) ([]AgendaDetails, error) {
	var (
		agendas []domain.Agenda
		err     error
	)
	if status != "" {
		agendas, err = s.agendas.FindByRoleAndStatus(ctx, roleID, status)
	} else {
		agendas, err = s.agendas.FindByRole(ctx, roleID)
	}
	if err != nil {
		return nil, fmt.Errorf("list agendas: %w", err)
	}

	details := make([]AgendaDetails, 0, len(agendas))
	for _, agenda := range agendas {
		d, err := s.loadDetails(ctx, agenda)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

func (s *AgendaService) loadDetails(ctx context.Context, agenda domain.Agenda) (*AgendaDetails, error) {
	entries, err := s.agendas.FindEntriesByAgenda(ctx, agenda.ID)
	if err != nil {
		return nil, fmt.Errorf("load agenda entries: %w", err)
	}
	coverage, err := s.agendas.FindCoverageByAgenda(ctx, agenda.ID)
	if err != nil {
		return nil, fmt.Errorf("load agenda coverage: %w", err)
	}
	return &AgendaDetails{Agenda: agenda, Entries: entries, Coverage: coverage}, nil
}

func filterAvailability(rules []domain.AvailabilityRule, start, end time.Time) []domain.AvailabilityRule {
	filtered := rules[:0:0]
	for _, rule := range rules {
		if rule.OverlapsWindow(start, end) {
			filtered = append(filtered, rule)
		}
	}
	return filtered
}

func filterBusiness(rules []domain.BusinessRule, start, end time.Time) []domain.BusinessRule {
	filtered := rules[:0:0]
	for _, rule := range rules {
		if rule.OverlapsWindow(start, end) {
			filtered = append(filtered, rule)
		}
	}
	return filtered
}
