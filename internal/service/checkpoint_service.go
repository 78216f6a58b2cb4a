package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/internal/repository"
	"github.com/diagnosis/patrol-checkpoints/pkg/logger"
)

type CheckpointService interface {
	List(ctx context.Context) ([]domain.Checkpoint, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Checkpoint, error)
	Create(ctx context.Context, in *domain.CheckpointInput) (*domain.Checkpoint, error)
	Update(ctx context.Context, id uuid.UUID, in *domain.CheckpointInput) (*domain.Checkpoint, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type checkpointService struct {
	repo repository.CheckpointRepository
}

func NewCheckpointService(repo repository.CheckpointRepository) CheckpointService {
	return &checkpointService{repo: repo}
}

func (s *checkpointService) List(ctx context.Context) ([]domain.Checkpoint, error) {
	cps, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	return cps, nil
}

func (s *checkpointService) Get(ctx context.Context, id uuid.UUID) (*domain.Checkpoint, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *checkpointService) Create(ctx context.Context, in *domain.CheckpointInput) (*domain.Checkpoint, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	cp := in.Apply(domain.Checkpoint{Active: true})
	created, err := s.repo.Create(ctx, &cp)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkpoint: %w", err)
	}
	logger.InfoContext(ctx, "Checkpoint created", "checkpoint_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *checkpointService) Update(ctx context.Context, id uuid.UUID, in *domain.CheckpointInput) (*domain.Checkpoint, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := in.Apply(*existing)
	updated, err := s.repo.Update(ctx, &cp)
	if err != nil {
		return nil, fmt.Errorf("failed to update checkpoint: %w", err)
	}
	return updated, nil
}

func (s *checkpointService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}
	logger.InfoContext(ctx, "Checkpoint deleted", "checkpoint_id", id)
	return nil
}
