package domain

import (
	"time"

	"github.com/google/uuid"
)

// AgendaStatus is the lifecycle state of a generated agenda.
type AgendaStatus string

const (
	// AgendaStatusDraft is the only status the generator produces.
	AgendaStatusDraft AgendaStatus = "draft"
)

// Agenda is the result object of one generation run: a draft schedule for a
// role over a set of weeks. The generator never mutates an agenda after
// creating it.
type Agenda struct {
	ID        uuid.UUID
	RoleID    uuid.UUID
	Status    AgendaStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDraftAgenda creates a draft agenda for a role.
func NewDraftAgenda(roleID uuid.UUID) Agenda {
	now := time.Now().UTC()
	return Agenda{
		ID:        uuid.New(),
		RoleID:    roleID,
		Status:    AgendaStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AgendaEntry mirrors one assignment: a person working one required slot.
type AgendaEntry struct {
	ID       uuid.UUID
	AgendaID uuid.UUID
	PersonID uuid.UUID
	Date     time.Time
	Start    TimeOfDay
	End      TimeOfDay
	RoleID   uuid.UUID
}

// AgendaCoverage is the bookkeeping record for one required slot: whether
// the generated agenda filled it.
type AgendaCoverage struct {
	ID                  uuid.UUID
	AgendaID            uuid.UUID
	Date                time.Time
	Start               TimeOfDay
	End                 TimeOfDay
	RoleID              uuid.UUID
	IsCovered           bool
	RequiredPersonCount int
}

// Assignment is one (person, slot) pair extracted from a solver solution.
type Assignment struct {
	PersonID uuid.UUID
	Date     time.Time
	Start    TimeOfDay
	End      TimeOfDay
	RoleID   uuid.UUID
}

// Slot returns the assignment's slot key.
func (a Assignment) Slot() Slot {
	return Slot{Date: a.Date, Start: a.Start, End: a.End}
}
