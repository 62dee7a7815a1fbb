package persistence

import (
	"context"
	"fmt"

	"github.com/dimun/agendalo/internal/scheduling/domain"
	"github.com/dimun/agendalo/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// PersonRepository stores people.
type PersonRepository struct {
	store
}

// NewPersonRepository creates a person repository on the given connection.
func NewPersonRepository(db database.Connection) *PersonRepository {
	return &PersonRepository{store{db: db}}
}

func (r *PersonRepository) Create(ctx context.Context, person domain.Person) error {
	_, err := r.db.Exec(ctx,
		r.rebind(`INSERT INTO people (id, name, email) VALUES (?, ?, ?)`),
		person.ID.String(), person.Name, person.Email,
	)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (r *PersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	row := r.db.QueryRow(ctx,
		r.rebind(`SELECT id, name, email FROM people WHERE id = ?`),
		id.String(),
	)
	person, err := scanPerson(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select person: %w", err)
	}
	return &person, nil
}

func (r *PersonRepository) FindAll(ctx context.Context) ([]domain.Person, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email FROM people ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select people: %w", err)
	}
	defer rows.Close()

	var people []domain.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}
	return people, rows.Err()
}

func (r *PersonRepository) Update(ctx context.Context, person domain.Person) error {
	res, err := r.db.Exec(ctx,
		r.rebind(`UPDATE people SET name = ?, email = ? WHERE id = ?`),
		person.Name, person.Email, person.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrPersonNotFound
	}
	return nil
}

func (r *PersonRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.Exec(ctx,
		r.rebind(`DELETE FROM people WHERE id = ?`),
		id.String(),
	)
	if err != nil {
		return false, fmt.Errorf("delete person: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanPerson(row database.Row) (domain.Person, error) {
	var (
		person domain.Person
		id     string
	)
	if err := row.Scan(&id, &person.Name, &person.Email); err != nil {
		return domain.Person{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.Person{}, fmt.Errorf("parse person id: %w", err)
	}
	person.ID = parsed
	return person, nil
}
