package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/internal/repository"
	"github.com/diagnosis/patrol-checkpoints/pkg/auth"
	"github.com/diagnosis/patrol-checkpoints/pkg/logger"
)

type RoleService interface {
	List(ctx context.Context) ([]domain.Role, error)
	Upsert(ctx context.Context, name string, in *domain.RoleInput) (*domain.Role, error)
}

type roleService struct {
	repo repository.RoleRepository
}

func NewRoleService(repo repository.RoleRepository) RoleService {
	return &roleService{repo: repo}
}

func (s *roleService) List(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (s *roleService) Upsert(ctx context.Context, name string, in *domain.RoleInput) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	in.Normalize()
	if err := in.Validate(name); err != nil {
		return nil, err
	}
	// Admin always retains role.write.
	if name == domain.RoleAdmin && !auth.HasPermission(in.Permissions, auth.PermRoleWrite) {
		v := &domain.ValidationError{}
		v.Add("permissions", "the Admin role must keep role.write")
		return nil, v
	}

	role, err := s.repo.Upsert(ctx, domain.Role{Name: name, Permissions: in.Permissions, Description: in.Description})
	if err != nil {
		return nil, fmt.Errorf("failed to save role: %w", err)
	}
	logger.InfoContext(ctx, "Role saved", "role", role.Name, "permissions", role.Permissions)
	return role, nil
}

type ScheduleService interface {
	Get(ctx context.Context) (domain.CoverageSchedule, error)
	Update(ctx context.Context, in *domain.ScheduleInput) (domain.CoverageSchedule, error)
}

type scheduleService struct {
	repo repository.ScheduleRepository
}

func NewScheduleService(repo repository.ScheduleRepository) ScheduleService {
	return &scheduleService{repo: repo}
}

func (s *scheduleService) Get(ctx context.Context) (domain.CoverageSchedule, error) {
	return s.repo.Get(ctx)
}

func (s *scheduleService) Update(ctx context.Context, in *domain.ScheduleInput) (domain.CoverageSchedule, error) {
	if err := in.Validate(); err != nil {
		return domain.CoverageSchedule{}, err
	}
	saved, err := s.repo.Save(ctx, domain.CoverageSchedule{StartHour: *in.StartHour, IntervalHours: *in.IntervalHours})
	if err != nil {
		return domain.CoverageSchedule{}, fmt.Errorf("failed to save schedule: %w", err)
	}
	logger.InfoContext(ctx, "Coverage schedule updated", "start_hour", saved.StartHour, "interval_hours", saved.IntervalHours)
	return saved, nil
}
