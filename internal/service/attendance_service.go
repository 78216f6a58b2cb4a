package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/internal/repository"
	"github.com/diagnosis/patrol-checkpoints/pkg/logger"
)

type AttendanceService interface {
	ListRecent(ctx context.Context, limit, offset int) ([]domain.AttendanceRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type attendanceService struct {
	repo repository.AttendanceRepository
}

func NewAttendanceService(repo repository.AttendanceRepository) AttendanceService {
	return &attendanceService{repo: repo}
}

func (s *attendanceService) ListRecent(ctx context.Context, limit, offset int) ([]domain.AttendanceRecord, error) {
	recs, err := s.repo.ListRecent(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return recs, nil
}

func (s *attendanceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	logger.InfoContext(ctx, "Attendance record deleted", "record_id", id)
	return nil
}
