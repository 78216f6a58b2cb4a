package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/internal/repository"
	"github.com/diagnosis/patrol-checkpoints/internal/security"
	"github.com/diagnosis/patrol-checkpoints/pkg/auth"
	"github.com/diagnosis/patrol-checkpoints/pkg/config"
	"github.com/diagnosis/patrol-checkpoints/pkg/logger"
)

type AuthService interface {
	Login(ctx context.Context, req *domain.LoginRequest, clientIP string) (*domain.LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*domain.UserInfo, error)
}

type authService struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	rateLimiter repository.RateLimitRepository
	hasher      security.Hasher
	issuer      *auth.Issuer
	config      config.AuthConfig
	now         func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	rateLimiter repository.RateLimitRepository,
	hasher security.Hasher,
	issuer *auth.Issuer,
	cfg config.AuthConfig,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		rateLimiter: rateLimiter,
		hasher:      hasher,
		issuer:      issuer,
		config:      cfg,
		now:         time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest, clientIP string) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// keyed on the account so rotating source addresses cannot reset the budget
	limitKey := "login:" + req.Username
	if s.config.LoginRateLimit > 0 {
		allowed, err := s.rateLimiter.CheckRateLimit(ctx, limitKey, s.config.LoginRateLimit, s.config.LoginWindow)
		if err != nil {
			logger.WarnContext(ctx, "Login rate limit check failed", "error", err)
		} else if !allowed {
			logger.WarnContext(ctx, "Login throttled", "username", req.Username, "client_ip", clientIP)
			return nil, domain.ErrRateLimited
		}
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	// inactive accounts are indistinguishable from unknown ones
	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}

	ok, needsRehash, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		logger.ErrorContext(ctx, "Password verification failed", "error", err, "user_id", user.ID)
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if needsRehash {
		if hash, err := s.hasher.Hash(req.Password); err == nil {
			if err := s.userRepo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
				logger.WarnContext(ctx, "Failed to upgrade password hash", "error", err, "user_id", user.ID)
			}
		}
	}

	perms, err := s.permissionsFor(ctx, user.Role)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.NewAccessToken(user.ID.String(), user.Username, user.Role, perms)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	now := s.now().UTC()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		logger.WarnContext(ctx, "Failed to record last login", "error", err, "user_id", user.ID)
	} else {
		user.LastLoginAt = &now
	}
	if err := s.rateLimiter.Reset(ctx, limitKey); err != nil {
		logger.DebugContext(ctx, "Failed to reset login rate limit", "error", err)
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID, "role", user.Role)

	return &domain.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.issuer.TTL().Seconds()),
		User:      user.ToUserInfo(perms),
	}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*domain.UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.Active {
		return nil, domain.ErrInactive
	}
	perms, err := s.permissionsFor(ctx, user.Role)
	if err != nil {
		return nil, err
	}
	return user.ToUserInfo(perms), nil
}

// permissionsFor treats a missing role as one with no permissions.
func (s *authService) permissionsFor(ctx context.Context, role string) ([]string, error) {
	r, err := s.roleRepo.Get(ctx, role)
	if errors.Is(err, domain.ErrNotFound) {
		logger.WarnContext(ctx, "User role has no definition", "role", role)
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load role: %w", err)
	}
	return r.Permissions, nil
}
