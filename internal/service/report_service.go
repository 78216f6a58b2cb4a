package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/internal/report"
	"github.com/diagnosis/patrol-checkpoints/internal/repository"
)

type MonthlyReport struct {
	Period string              `json:"period"`
	Rows   []report.MonthlyRow `json:"rows"`
}

type MatrixReport struct {
	Period   string                  `json:"period"`
	Days     []int                   `json:"days"`
	Slots    []string                `json:"slots"`
	Schedule domain.CoverageSchedule `json:"schedule"`
	Policy   report.MatchPolicy      `json:"match_policy"`
	Cells    []report.MatrixCell     `json:"cells"`
}

type ReportService interface {
	Monthly(ctx context.Context, month, year string) (*MonthlyReport, error)
	Matrix(ctx context.Context, month, year string) (*MatrixReport, error)
}

type reportService struct {
	checkpointRepo repository.CheckpointRepository
	attendanceRepo repository.AttendanceRepository
	scheduleRepo   repository.ScheduleRepository
	opts           report.Options
}

func NewReportService(
	checkpointRepo repository.CheckpointRepository,
	attendanceRepo repository.AttendanceRepository,
	scheduleRepo repository.ScheduleRepository,
	loc *time.Location,
	policy report.MatchPolicy,
) ReportService {
	return &reportService{
		checkpointRepo: checkpointRepo,
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		opts:           report.Options{Location: loc, Policy: policy},
	}
}

type reportInputs struct {
	schedule    domain.CoverageSchedule
	checkpoints []domain.Checkpoint
	records     []domain.AttendanceRecord
}

func (s *reportService) load(ctx context.Context, p report.Period, withSchedule bool) (*reportInputs, error) {
	from, to := p.Range(s.opts.Location)
	in := &reportInputs{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cps, err := s.checkpointRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to load checkpoints: %w", err)
		}
		in.checkpoints = cps
		return nil
	})
	g.Go(func() error {
		recs, err := s.attendanceRepo.ListBetween(gctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		in.records = recs
		return nil
	})
	if withSchedule {
		g.Go(func() error {
			sched, err := s.scheduleRepo.Get(gctx)
			if err != nil {
				return fmt.Errorf("failed to load schedule: %w", err)
			}
			in.schedule = sched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *reportService) Monthly(ctx context.Context, month, year string) (*MonthlyReport, error) {
	p, err := report.ParsePeriod(month, year)
	if err != nil {
		return nil, err
	}
	in, err := s.load(ctx, p, false)
	if err != nil {
		return nil, err
	}
	return &MonthlyReport{
		Period: p.String(),
		Rows:   report.MonthlyList(p, in.checkpoints, in.records, s.opts.Location),
	}, nil
}

func (s *reportService) Matrix(ctx context.Context, month, year string) (*MatrixReport, error) {
	p, err := report.ParsePeriod(month, year)
	if err != nil {
		return nil, err
	}
	in, err := s.load(ctx, p, true)
	if err != nil {
		return nil, err
	}

	slots := report.Slots(in.schedule)
	labels := make([]string, len(slots))
	for i, sl := range slots {
		labels[i] = sl.Label()
	}

	return &MatrixReport{
		Period:   p.String(),
		Days:     p.Days(),
		Slots:    labels,
		Schedule: in.schedule,
		Policy:   s.opts.Policy,
		Cells:    report.BuildMatrix(p, in.schedule, in.checkpoints, in.records, s.opts),
	}, nil
}
