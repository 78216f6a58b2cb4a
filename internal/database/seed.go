package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/pkg/auth"
)

type SeedOptions struct {
	AdminName     string
	AdminUsername string
	// AdminPasswordHash is stored as given; callers hash it first.
	AdminPasswordHash string
}

// DefaultRoles are created when missing. Existing roles keep their permissions.
var DefaultRoles = []domain.Role{
	{Name: domain.RoleAdmin, Permissions: []string{auth.PermAll}, Description: "Full access"},
	{Name: domain.RoleGuard, Permissions: []string{auth.PermScanCreate}, Description: "Patrol officer"},
}

// Seed is idempotent: every insert is skipped when the row already exists.
func Seed(ctx context.Context, pool *pgxpool.Pool, opt SeedOptions) error {
	for _, r := range DefaultRoles {
		if _, err := pool.Exec(ctx, `
INSERT INTO roles (role, permissions, description)
VALUES ($1, $2, $3)
ON CONFLICT (role) DO NOTHING`, r.Name, r.Permissions, r.Description); err != nil {
			return fmt.Errorf("seed role %s: %w", r.Name, err)
		}
	}

	def := domain.DefaultSchedule()
	if _, err := pool.Exec(ctx, `
INSERT INTO coverage_schedule (singleton, start_hour, interval_hours)
VALUES (TRUE, $1, $2)
ON CONFLICT (singleton) DO NOTHING`, def.StartHour, def.IntervalHours); err != nil {
		return fmt.Errorf("seed coverage schedule: %w", err)
	}

	if opt.AdminUsername == "" || opt.AdminPasswordHash == "" {
		return nil
	}
	name := opt.AdminName
	if name == "" {
		name = "Administrator"
	}
	if _, err := pool.Exec(ctx, `
INSERT INTO users (user_id, name, username, password_hash, role, is_active)
VALUES ($1, $2, $3, $4, $5, TRUE)
ON CONFLICT (username) DO NOTHING`, uuid.New(), name, opt.AdminUsername, opt.AdminPasswordHash, domain.RoleAdmin); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
