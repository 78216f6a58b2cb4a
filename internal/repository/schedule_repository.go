package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
)

type ScheduleRepository interface {
	// Get returns the default schedule when the row has not been created yet.
	Get(ctx context.Context) (domain.CoverageSchedule, error)
	Save(ctx context.Context, s domain.CoverageSchedule) (domain.CoverageSchedule, error)
}

type scheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) ScheduleRepository {
	return &scheduleRepository{pool: pool}
}

func (r *scheduleRepository) Get(ctx context.Context) (domain.CoverageSchedule, error) {
	const q = `SELECT start_hour, interval_hours, updated_at FROM coverage_schedule WHERE singleton`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s domain.CoverageSchedule
	err := r.pool.QueryRow(ctx, q).Scan(&s.StartHour, &s.IntervalHours, &s.UpdatedAt)
	if err != nil {
		if err = translate(err); err == domain.ErrNotFound {
			return domain.DefaultSchedule(), nil
		}
		return domain.CoverageSchedule{}, err
	}
	return s, nil
}

func (r *scheduleRepository) Save(ctx context.Context, s domain.CoverageSchedule) (domain.CoverageSchedule, error) {
	const q = `
		INSERT INTO coverage_schedule (singleton, start_hour, interval_hours, updated_at)
		VALUES (TRUE, $1, $2, now())
		ON CONFLICT (singleton) DO UPDATE SET start_hour = EXCLUDED.start_hour, interval_hours = EXCLUDED.interval_hours, updated_at = now()
		RETURNING start_hour, interval_hours, updated_at`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var out domain.CoverageSchedule
	if err := r.pool.QueryRow(ctx, q, s.StartHour, s.IntervalHours).Scan(&out.StartHour, &out.IntervalHours, &out.UpdatedAt); err != nil {
		return domain.CoverageSchedule{}, translate(err)
	}
	return out, nil
}
