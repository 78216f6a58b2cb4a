package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
)

type RoleRepository interface {
	Get(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	Upsert(ctx context.Context, role domain.Role) (*domain.Role, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) Get(ctx context.Context, name string) (*domain.Role, error) {
	const q = `SELECT role, permissions, COALESCE(description, '') FROM roles WHERE role = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var role domain.Role
	if err := r.pool.QueryRow(ctx, q, name).Scan(&role.Name, &role.Permissions, &role.Description); err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]domain.Role, error) {
	const q = `SELECT role, permissions, COALESCE(description, '') FROM roles ORDER BY role`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.Name, &role.Permissions, &role.Description); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *roleRepository) Upsert(ctx context.Context, role domain.Role) (*domain.Role, error) {
	const q = `
		INSERT INTO roles (role, permissions, description)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (role) DO UPDATE SET permissions = EXCLUDED.permissions, description = EXCLUDED.description
		RETURNING role, permissions, COALESCE(description, '')`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if role.Permissions == nil {
		role.Permissions = []string{}
	}
	var out domain.Role
	if err := r.pool.QueryRow(ctx, q, role.Name, role.Permissions, role.Description).Scan(&out.Name, &out.Permissions, &out.Description); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}
