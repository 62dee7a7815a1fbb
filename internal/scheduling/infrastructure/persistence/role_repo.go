package persistence

import (
	"context"
	"fmt"

	"github.com/dimun/agendalo/internal/scheduling/domain"
	"github.com/dimun/agendalo/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// RoleRepository stores roles.
type RoleRepository struct {
	store
}

// NewRoleRepository creates a role repository on the given connection.
func NewRoleRepository(db database.Connection) *RoleRepository {
	return &RoleRepository{store{db: db}}
}

func (r *RoleRepository) Create(ctx context.Context, role domain.Role) error {
	_, err := r.db.Exec(ctx,
		r.rebind(`INSERT INTO roles (id, name, description) VALUES (?, ?, ?)`),
		role.ID.String(), role.Name, role.Description,
	)
	if err != nil {
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	row := r.db.QueryRow(ctx,
		r.rebind(`SELECT id, name, description FROM roles WHERE id = ?`),
		id.String(),
	)
	role, err := scanRole(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select role: %w", err)
	}
	return &role, nil
}

func (r *RoleRepository) FindAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func scanRole(row database.Row) (domain.Role, error) {
	var (
		role domain.Role
		id   string
	)
	if err := row.Scan(&id, &role.Name, &role.Description); err != nil {
		return domain.Role{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.Role{}, fmt.Errorf("parse role id: %w", err)
	}
	role.ID = parsed
	return role, nil
}
