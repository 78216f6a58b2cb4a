package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/internal/repository"
	"github.com/diagnosis/patrol-checkpoints/internal/security"
	"github.com/diagnosis/patrol-checkpoints/pkg/logger"
)

type UserService interface {
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, req *domain.UpdateUserRequest) (*domain.User, error)
	// Delete refuses to remove the acting user.
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	hasher   security.Hasher
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, hasher security.Hasher) UserService {
	return &userService{userRepo: userRepo, roleRepo: roleRepo, hasher: hasher}
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *userService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireRole(ctx, req.Role); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	user, err := s.userRepo.Create(ctx, &domain.User{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		Phone:        req.Phone,
		Active:       active,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.InfoContext(ctx, "User created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateUserRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil && *req.Role != user.Role {
		if err := s.requireRole(ctx, *req.Role); err != nil {
			return nil, err
		}
		user.Role = *req.Role
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return fmt.Errorf("%w: cannot delete your own account", domain.ErrForbidden)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	logger.InfoContext(ctx, "User deleted", "deleted_user_id", id)
	return nil
}

func (s *userService) requireRole(ctx context.Context, role string) error {
	_, err := s.roleRepo.Get(ctx, role)
	if errors.Is(err, domain.ErrNotFound) {
		v := &domain.ValidationError{}
		v.Add("role", fmt.Sprintf("unknown role %q", role))
		return v
	}
	return err
}
