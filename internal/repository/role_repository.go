package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smitedu/institute-backend/internal/model"
)

var (
	ErrDuplicateRoleName = errors.New("role with this name already exists")
	ErrRoleInUse         = errors.New("role is still assigned to users")
)

// RoleRepository handles role data access.
type RoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates a new RoleRepository.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// List retrieves all roles ordered by name.
func (r *RoleRepository) List(ctx context.Context) ([]model.Role, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetByID retrieves a role by ID.
func (r *RoleRepository) GetByID(ctx context.Context, id int) (*model.Role, error) {
	role := &model.Role{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM roles WHERE id = $1`, id,
	).Scan(&role.ID, &role.Name, &role.CreatedAt)
	if err != nil {
		return nil, err
	}
	return role, nil
}

// GetByName retrieves a role by its unique name.
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*model.Role, error) {
	role := &model.Role{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM roles WHERE name = $1`, name,
	).Scan(&role.ID, &role.Name, &role.CreatedAt)
	if err != nil {
		return nil, err
	}
	return role, nil
}

// Create inserts a new role.
func (r *RoleRepository) Create(ctx context.Context, role *model.Role) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO roles (name) VALUES ($1) RETURNING id, created_at`,
		role.Name,
	).Scan(&role.ID, &role.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateRoleName
		}
		return err
	}
	return nil
}

// Update renames a role.
func (r *RoleRepository) Update(ctx context.Context, role *model.Role) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE roles SET name = $1 WHERE id = $2`, role.Name, role.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateRoleName
		}
		return err
	}
	return nil
}

// Delete removes a role by ID. Fails while users still reference it.
func (r *RoleRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrRoleInUse
		}
		return err
	}
	return nil
}
