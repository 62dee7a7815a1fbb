package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PersonRepository defines persistence for people.
type PersonRepository interface {
	Create(ctx context.Context, person Person) error
	FindByID(ctx context.Context, id uuid.UUID) (*Person, error)
	FindAll(ctx context.Context) ([]Person, error)
	Update(ctx context.Context, person Person) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// RoleRepository defines persistence for roles.
type RoleRepository interface {
	Create(ctx context.Context, role Role) error
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)
	FindAll(ctx context.Context) ([]Role, error)
}

// AvailabilityRepository defines persistence for availability rules.
type AvailabilityRepository interface {
	Create(ctx context.Context, rule AvailabilityRule) error
	FindByPerson(ctx context.Context, personID uuid.UUID) ([]AvailabilityRule, error)
	FindByRole(ctx context.Context, roleID uuid.UUID) ([]AvailabilityRule, error)
	// FindByDateRange returns every rule that can yield an instance within
	// [start, end], including all recurring weekday rules.
	FindByDateRange(ctx context.Context, start, end time.Time) ([]AvailabilityRule, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// BusinessHoursRepository defines persistence for business-hour rules.
type BusinessHoursRepository interface {
	Create(ctx context.Context, rule BusinessRule) error
	FindByID(ctx context.Context, id uuid.UUID) (*BusinessRule, error)
	FindByRole(ctx context.Context, roleID uuid.UUID) ([]BusinessRule, error)
	FindAll(ctx context.Context) ([]BusinessRule, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// AgendaRepository defines persistence for agendas and their entries and
// coverage rows.
type AgendaRepository interface {
	Create(ctx context.Context, agenda Agenda) error
	FindByID(ctx context.Context, id uuid.UUID) (*Agenda, error)
	FindByRole(ctx context.Context, roleID uuid.UUID) ([]Agenda, error)
	FindByRoleAndStatus(ctx context.Context, roleID uuid.UUID, status AgendaStatus) ([]Agenda, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status AgendaStatus) (bool, error)

	CreateEntry(ctx context.Context, entry AgendaEntry) error
	FindEntriesByAgenda(ctx context.Context, agendaID uuid.UUID) ([]AgendaEntry, error)

	CreateCoverage(ctx context.Context, coverage AgendaCoverage) error
	FindCoverageByAgenda(ctx context.Context, agendaID uuid.UUID) ([]AgendaCoverage, error)
}
