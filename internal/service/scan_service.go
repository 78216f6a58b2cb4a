package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/internal/geofence"
	"github.com/diagnosis/patrol-checkpoints/internal/repository"
	"github.com/diagnosis/patrol-checkpoints/pkg/events"
	"github.com/diagnosis/patrol-checkpoints/pkg/logger"
)

type ScanService interface {
	// Scan records a scan by userID. A rejected scan is still persisted; the returned
	// error then wraps domain.ErrGeofenceRejected and the response carries the details.
	Scan(ctx context.Context, userID uuid.UUID, req *domain.ScanRequest) (*domain.ScanResponse, error)
}

type scanService struct {
	checkpointRepo repository.CheckpointRepository
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRepository
	publisher      events.Publisher
	now            func() time.Time
}

func NewScanService(
	checkpointRepo repository.CheckpointRepository,
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRepository,
	publisher events.Publisher,
) ScanService {
	return &scanService{
		checkpointRepo: checkpointRepo,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		publisher:      publisher,
		now:            time.Now,
	}
}

func (s *scanService) Scan(ctx context.Context, userID uuid.UUID, req *domain.ScanRequest) (*domain.ScanResponse, error) {
	req.Token = strings.TrimSpace(req.Token)
	req.Notes = strings.TrimSpace(req.Notes)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cp, err := s.checkpointRepo.GetActiveByToken(ctx, req.Token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrCheckpointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve checkpoint: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInactive
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.Active {
		return nil, domain.ErrInactive
	}

	lat, lng := *req.Latitude, *req.Longitude
	res := geofence.Evaluate(lat, lng, *cp)

	rec := &domain.AttendanceRecord{
		Timestamp:    s.now().UTC(),
		UserID:       user.ID,
		Username:     user.Username,
		CheckpointID: cp.ID,
		Token:        cp.Token,
		ScanLat:      lat,
		ScanLng:      lng,
		Result:       domain.ResultOK,
		Notes:        req.Notes,
	}
	if res.LocationChecked {
		d := res.DistanceMeters
		rec.DistanceMeters = &d
	}
	if !res.Accepted {
		rec.Result = domain.ResultRejected
		if rec.Notes == "" {
			rec.Notes = res.Reason
		}
	}

	saved, err := s.attendanceRepo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to record scan: %w", err)
	}

	s.publish(ctx, saved, cp.Name)

	resp := &domain.ScanResponse{
		Record:         saved,
		CheckpointName: cp.Name,
		Accepted:       res.Accepted,
		LocationCheck:  res.LocationChecked,
		DistanceMeters: res.DistanceMeters,
		RadiusMeters:   res.RadiusMeters,
		Reason:         res.Reason,
	}

	logger.InfoContext(ctx, "Scan recorded",
		"record_id", saved.ID,
		"checkpoint_id", cp.ID,
		"result", saved.Result,
		"distance_m", res.DistanceMeters,
	)

	if !res.Accepted {
		return resp, fmt.Errorf("%w: %s", domain.ErrGeofenceRejected, res.Reason)
	}
	return resp, nil
}

func (s *scanService) publish(ctx context.Context, rec *domain.AttendanceRecord, checkpointName string) {
	subject := events.ScanAccepted
	if !rec.Accepted() {
		subject = events.ScanRejected
	}
	evt := events.ScanEvent{
		RecordID:       rec.ID.String(),
		CheckpointID:   rec.CheckpointID.String(),
		CheckpointName: checkpointName,
		UserID:         rec.UserID.String(),
		Username:       rec.Username,
		DistanceMeters: rec.DistanceMeters,
		Accepted:       rec.Accepted(),
		ScannedAt:      rec.Timestamp,
	}
	if err := s.publisher.Publish(ctx, subject, evt); err != nil {
		logger.WarnContext(ctx, "Failed to publish scan event", "error", err, "subject", subject)
	}
}
