package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dimun/agendalo/internal/scheduling/domain"
	"github.com/dimun/agendalo/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// AvailabilityRepository stores per-person availability rules.
type AvailabilityRepository struct {
	store
}

// NewAvailabilityRepository creates an availability repository on the given
// connection.
func NewAvailabilityRepository(db database.Connection) *AvailabilityRepository {
	return &AvailabilityRepository{store{db: db}}
}

const availabilityColumns = `id, person_id, role_id, day_of_week, start_time, end_time,
	start_date, end_date, is_recurring, specific_date`

func (r *AvailabilityRepository) Create(ctx context.Context, rule domain.AvailabilityRule) error {
	_, err := r.db.Exec(ctx,
		r.rebind(`INSERT INTO availability_hours
			(id, person_id, role_id, day_of_week, start_time, end_time, start_date, end_date, is_recurring, specific_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		rule.ID.String(), rule.PersonID.String(), rule.RoleID.String(),
		nullWeekday(rule.DayOfWeek), rule.StartTime.String(), rule.EndTime.String(),
		nullDate(rule.StartDate), nullDate(rule.EndDate),
		rule.IsRecurring, nullDate(rule.SpecificDate),
	)
	if err != nil {
		return fmt.Errorf("insert availability rule: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) FindByPerson(ctx context.Context, personID uuid.UUID) ([]domain.AvailabilityRule, error) {
	return r.find(ctx,
		`SELECT `+availabilityColumns+` FROM availability_hours WHERE person_id = ? ORDER BY id`,
		personID.String(),
	)
}

func (r *AvailabilityRepository) FindByRole(ctx context.Context, roleID uuid.UUID) ([]domain.AvailabilityRule, error) {
	return r.find(ctx,
		`SELECT `+availabilityColumns+` FROM availability_hours WHERE role_id = ? ORDER BY id`,
		roleID.String(),
	)
}

// FindByDateRange returns every rule that can yield an instance within the
// window. ISO dates compare lexically, so the filtering stays in SQL.
func (r *AvailabilityRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]domain.AvailabilityRule, error) {
	return r.find(ctx,
		`SELECT `+availabilityColumns+` FROM availability_hours
			WHERE (specific_date IS NOT NULL AND specific_date >= ? AND specific_date <= ?)
			OR (specific_date IS NULL AND is_recurring)
			OR (specific_date IS NULL AND NOT is_recurring
				AND (start_date IS NULL OR start_date <= ?)
				AND (end_date IS NULL OR end_date >= ?))
			ORDER BY id`,
		start.Format(domain.DateLayout), end.Format(domain.DateLayout),
		end.Format(domain.DateLayout), start.Format(domain.DateLayout),
	)
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.Exec(ctx,
		r.rebind(`DELETE FROM availability_hours WHERE id = ?`),
		id.String(),
	)
	if err != nil {
		return false, fmt.Errorf("delete availability rule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *AvailabilityRepository) find(ctx context.Context, query string, args ...any) ([]domain.AvailabilityRule, error) {
	rows, err := r.db.Query(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("select availability rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.AvailabilityRule
	for rows.Next() {
		rule, err := scanAvailabilityRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func scanAvailabilityRule(row database.Row) (domain.AvailabilityRule, error) {
	var (
		id, personID, roleID string
		dayOfWeek            sql.NullInt64
		startTime, endTime   string
		startDate, endDate   sql.NullString
		isRecurring          bool
		specificDate         sql.NullString
	)
	if err := row.Scan(&id, &personID, &roleID, &dayOfWeek, &startTime, &endTime,
		&startDate, &endDate, &isRecurring, &specificDate); err != nil {
		return domain.AvailabilityRule{}, err
	}

	base, err := hydrateHourRule(id, dayOfWeek, startTime, endTime, startDate, endDate, isRecurring, specificDate)
	if err != nil {
		return domain.AvailabilityRule{}, err
	}
	pid, err := uuid.Parse(personID)
	if err != nil {
		return domain.AvailabilityRule{}, fmt.Errorf("parse person id: %w", err)
	}
	rid, err := uuid.Parse(roleID)
	if err != nil {
		return domain.AvailabilityRule{}, fmt.Errorf("parse role id: %w", err)
	}
	return domain.AvailabilityRule{HourRule: base, PersonID: pid, RoleID: rid}, nil
}

// BusinessHoursRepository stores per-role required service hours.
type BusinessHoursRepository struct {
	store
}

// NewBusinessHoursRepository creates a business-hours repository on the
// given connection.
func NewBusinessHoursRepository(db database.Connection) *BusinessHoursRepository {
	return &BusinessHoursRepository{store{db: db}}
}

const businessColumns = `id, role_id, day_of_week, start_time, end_time,
	start_date, end_date, is_recurring, specific_date`

func (r *BusinessHoursRepository) Create(ctx context.Context, rule domain.BusinessRule) error {
	_, err := r.db.Exec(ctx,
		r.rebind(`INSERT INTO business_service_hours
			(id, role_id, day_of_week, start_time, end_time, start_date, end_date, is_recurring, specific_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		rule.ID.String(), rule.RoleID.String(),
		nullWeekday(rule.DayOfWeek), rule.StartTime.String(), rule.EndTime.String(),
		nullDate(rule.StartDate), nullDate(rule.EndDate),
		rule.IsRecurring, nullDate(rule.SpecificDate),
	)
	if err != nil {
		return fmt.Errorf("insert business rule: %w", err)
	}
	return nil
}

func (r *BusinessHoursRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.BusinessRule, error) {
	row := r.db.QueryRow(ctx,
		r.rebind(`SELECT `+businessColumns+` FROM business_service_hours WHERE id = ?`),
		id.String(),
	)
	rule, err := scanBusinessRule(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select business rule: %w", err)
	}
	return &rule, nil
}

func (r *BusinessHoursRepository) FindByRole(ctx context.Context, roleID uuid.UUID) ([]domain.BusinessRule, error) {
	return r.find(ctx,
		`SELECT `+businessColumns+` FROM business_service_hours WHERE role_id = ? ORDER BY id`,
		roleID.String(),
	)
}

func (r *BusinessHoursRepository) FindAll(ctx context.Context) ([]domain.BusinessRule, error) {
	return r.find(ctx, `SELECT `+businessColumns+` FROM business_service_hours ORDER BY id`)
}

func (r *BusinessHoursRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.Exec(ctx,
		r.rebind(`DELETE FROM business_service_hours WHERE id = ?`),
		id.String(),
	)
	if err != nil {
		return false, fmt.Errorf("delete business rule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *BusinessHoursRepository) find(ctx context.Context, query string, args ...any) ([]domain.BusinessRule, error) {
	rows, err := r.db.Query(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("select business rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.BusinessRule
	for rows.Next() {
		rule, err := scanBusinessRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func scanBusinessRule(row database.Row) (domain.BusinessRule, error) {
	var (
		id, roleID         string
		dayOfWeek          sql.NullInt64
		startTime, endTime string
		startDate, endDate sql.NullString
		isRecurring        bool
		specificDate       sql.NullString
	)
	if err := row.Scan(&id, &roleID, &dayOfWeek, &startTime, &endTime,
		&startDate, &endDate, &isRecurring, &specificDate); err != nil {
		return domain.BusinessRule{}, err
	}

	base, err := hydrateHourRule(id, dayOfWeek, startTime, endTime, startDate, endDate, isRecurring, specificDate)
	if err != nil {
		return domain.BusinessRule{}, err
	}
	rid, err := uuid.Parse(roleID)
	if err != nil {
		return domain.BusinessRule{}, fmt.Errorf("parse role id: %w", err)
	}
	return domain.BusinessRule{HourRule: base, RoleID: rid}, nil
}

func hydrateHourRule(
	id string,
	dayOfWeek sql.NullInt64,
	startTime, endTime string,
	startDate, endDate sql.NullString,
	isRecurring bool,
	specificDate sql.NullString,
) (domain.HourRule, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return domain.HourRule{}, fmt.Errorf("parse rule id: %w", err)
	}
	start, err := domain.ParseTimeOfDay(startTime)
	if err != nil {
		return domain.HourRule{}, fmt.Errorf("parse start time: %w", err)
	}
	end, err := domain.ParseTimeOfDay(endTime)
	if err != nil {
		return domain.HourRule{}, fmt.Errorf("parse end time: %w", err)
	}
	sd, err := dateFromNull(startDate)
	if err != nil {
		return domain.HourRule{}, fmt.Errorf("parse start date: %w", err)
	}
	ed, err := dateFromNull(endDate)
	if err != nil {
		return domain.HourRule{}, fmt.Errorf("parse end date: %w", err)
	}
	spec, err := dateFromNull(specificDate)
	if err != nil {
		return domain.HourRule{}, fmt.Errorf("parse specific date: %w", err)
	}
	return domain.HourRule{
		ID:           parsedID,
		DayOfWeek:    weekdayFromNull(dayOfWeek),
		StartTime:    start,
		EndTime:      end,
		StartDate:    sd,
		EndDate:      ed,
		IsRecurring:  isRecurring,
		SpecificDate: spec,
	}, nil
}
