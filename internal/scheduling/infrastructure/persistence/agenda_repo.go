package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/dimun/agendalo/internal/scheduling/domain"
	"github.com/dimun/agendalo/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// AgendaRepository stores agendas with their entries and coverage rows.
type AgendaRepository struct {
	store
}

// NewAgendaRepository creates an agenda repository on the given connection.
func NewAgendaRepository(db database.Connection) *AgendaRepository {
	return &AgendaRepository{store{db: db}}
}

func (r *AgendaRepository) Create(ctx context.Context, agenda domain.Agenda) error {
	_, err := r.db.Exec(ctx,
		r.rebind(`INSERT INTO agendas (id, role_id, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`),
		agenda.ID.String(), agenda.RoleID.String(), string(agenda.Status),
		agenda.CreatedAt.UTC().Format(time.RFC3339), agenda.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert agenda: %w", err)
	}
	return nil
}

func (r *AgendaRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Agenda, error) {
	row := r.db.QueryRow(ctx,
		r.rebind(`SELECT id, role_id, status, created_at, updated_at FROM agendas WHERE id = ?`),
		id.String(),
	)
	agenda, err := scanAgenda(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select agenda: %w", err)
	}
	return &agenda, nil
}

func (r *AgendaRepository) FindByRole(ctx context.Context, roleID uuid.UUID) ([]domain.Agenda, error) {
	return r.find(ctx,
		`SELECT id, role_id, status, created_at, updated_at FROM agendas WHERE role_id = ? ORDER BY created_at DESC`,
		roleID.String(),
	)
}

func (r *AgendaRepository) FindByRoleAndStatus(ctx context.Context, roleID uuid.UUID, status domain.AgendaStatus) ([]domain.Agenda, error) {
	return r.find(ctx,
		`SELECT id, role_id, status, created_at, updated_at FROM agendas WHERE role_id = ? AND status = ? ORDER BY created_at DESC`,
		roleID.String(), string(status),
	)
}

func (r *AgendaRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AgendaStatus) (bool, error) {
	res, err := r.db.Exec(ctx,
		r.rebind(`UPDATE agendas SET status = ?, updated_at = ? WHERE id = ?`),
		string(status), time.Now().UTC().Format(time.RFC3339), id.String(),
	)
	if err != nil {
		return false, fmt.Errorf("update agenda status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *AgendaRepository) CreateEntry(ctx context.Context, entry domain.AgendaEntry) error {
	_, err := r.db.Exec(ctx,
		r.rebind(`INSERT INTO agenda_entries
			(id, agenda_id, person_id, date, start_time, end_time, role_id)
			VALUES (?, ?, ?, ?, ?, ?, ?)`),
		entry.ID.String(), entry.AgendaID.String(), entry.PersonID.String(),
		entry.Date.Format(domain.DateLayout), entry.Start.String(), entry.End.String(),
		entry.RoleID.String(),
	)
	if err != nil {
		return fmt.Errorf("insert agenda entry: %w", err)
	}
	return nil
}

func (r *AgendaRepository) FindEntriesByAgenda(ctx context.Context, agendaID uuid.UUID) ([]domain.AgendaEntry, error) {
	rows, err := r.db.Query(ctx,
		r.rebind(`SELECT id, agenda_id, person_id, date, start_time, end_time, role_id
			FROM agenda_entries WHERE agenda_id = ? ORDER BY date, start_time, person_id`),
		agendaID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("select agenda entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AgendaEntry
	for rows.Next() {
		var (
			entry                              domain.AgendaEntry
			id, aid, pid, date, start, end, rid string
		)
		if err := rows.Scan(&id, &aid, &pid, &date, &start, &end, &rid); err != nil {
			return nil, err
		}
		if entry.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse entry id: %w", err)
		}
		if entry.AgendaID, err = uuid.Parse(aid); err != nil {
			return nil, fmt.Errorf("parse agenda id: %w", err)
		}
		if entry.PersonID, err = uuid.Parse(pid); err != nil {
			return nil, fmt.Errorf("parse person id: %w", err)
		}
		if entry.RoleID, err = uuid.Parse(rid); err != nil {
			return nil, fmt.Errorf("parse role id: %w", err)
		}
		if entry.Date, err = domain.ParseDate(date); err != nil {
			return nil, fmt.Errorf("parse entry date: %w", err)
		}
		if entry.Start, err = domain.ParseTimeOfDay(start); err != nil {
			return nil, fmt.Errorf("parse entry start: %w", err)
		}
		if entry.End, err = domain.ParseTimeOfDay(end); err != nil {
			return nil, fmt.Errorf("parse entry end: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *AgendaRepository) CreateCoverage(ctx context.Context, coverage domain.AgendaCoverage) error {
	_, err := r.db.Exec(ctx,
		r.rebind(`INSERT INTO agenda_coverage
			(id, agenda_id, date, start_time, end_time, role_id, is_covered, required_person_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		coverage.ID.String(), coverage.AgendaID.String(),
		coverage.Date.Format(domain.DateLayout), coverage.Start.String(), coverage.End.String(),
		coverage.RoleID.String(), coverage.IsCovered, coverage.RequiredPersonCount,
	)
	if err != nil {
		return fmt.Errorf("insert agenda coverage: %w", err)
	}
	return nil
}

func (r *AgendaRepository) FindCoverageByAgenda(ctx context.Context, agendaID uuid.UUID) ([]domain.AgendaCoverage, error) {
	rows, err := r.db.Query(ctx,
		r.rebind(`SELECT id, agenda_id, date, start_time, end_time, role_id, is_covered, required_person_count
			FROM agenda_coverage WHERE agenda_id = ? ORDER BY date, start_time`),
		agendaID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("select agenda coverage: %w", err)
	}
	defer rows.Close()

	var coverage []domain.AgendaCoverage
	for rows.Next() {
		var (
			row                            domain.AgendaCoverage
			id, aid, date, start, end, rid string
		)
		if err := rows.Scan(&id, &aid, &date, &start, &end, &rid, &row.IsCovered, &row.RequiredPersonCount); err != nil {
			return nil, err
		}
		if row.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse coverage id: %w", err)
		}
		if row.AgendaID, err = uuid.Parse(aid); err != nil {
			return nil, fmt.Errorf("parse agenda id: %w", err)
		}
		if row.RoleID, err = uuid.Parse(rid); err != nil {
			return nil, fmt.Errorf("parse role id: %w", err)
		}
		if row.Date, err = domain.ParseDate(date); err != nil {
			return nil, fmt.Errorf("parse coverage date: %w", err)
		}
		if row.Start, err = domain.ParseTimeOfDay(start); err != nil {
			return nil, fmt.Errorf("parse coverage start: %w", err)
		}
		if row.End, err = domain.ParseTimeOfDay(end); err != nil {
			return nil, fmt.Errorf("parse coverage end: %w", err)
		}
		coverage = append(coverage, row)
	}
	return coverage, rows.Err()
}

func (r *AgendaRepository) find(ctx context.Context, query string, args ...any) ([]domain.Agenda, error) {
	rows, err := r.db.Query(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("select agendas: %w", err)
	}
	defer rows.Close()

	var agendas []domain.Agenda
	for rows.Next() {
		agenda, err := scanAgenda(rows)
		if err != nil {
			return nil, err
		}
		agendas = append(agendas, agenda)
	}
	return agendas, rows.Err()
}

func scanAgenda(row database.Row) (domain.Agenda, error) {
	var (
		agenda               domain.Agenda
		id, rid, status      string
		createdAt, updatedAt string
	)
	if err := row.Scan(&id, &rid, &status, &createdAt, &updatedAt); err != nil {
		return domain.Agenda{}, err
	}

	var err error
	if agenda.ID, err = uuid.Parse(id); err != nil {
		return domain.Agenda{}, fmt.Errorf("parse agenda id: %w", err)
	}
	if agenda.RoleID, err = uuid.Parse(rid); err != nil {
		return domain.Agenda{}, fmt.Errorf("parse role id: %w", err)
	}
	agenda.Status = domain.AgendaStatus(status)
	if agenda.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return domain.Agenda{}, fmt.Errorf("parse created_at: %w", err)
	}
	if agenda.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return domain.Agenda{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return agenda, nil
}
