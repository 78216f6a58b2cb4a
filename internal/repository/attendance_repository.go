package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
)

type AttendanceRepository interface {
	// Create persists one scan outcome in a single statement.
	Create(ctx context.Context, rec *domain.AttendanceRecord) (*domain.AttendanceRecord, error)
	// ListBetween returns records with from <= scanned_at < to, oldest first.
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.AttendanceRecord, error)
	ListRecent(ctx context.Context, limit, offset int) ([]domain.AttendanceRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type attendanceRepository struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

const attendanceCols = `record_id, scanned_at, user_id, username, checkpoint_id, token, scan_lat, scan_lng, distance_meters, result, COALESCE(notes, '')`

func scanAttendance(row pgx.Row) (*domain.AttendanceRecord, error) {
	var a domain.AttendanceRecord
	err := row.Scan(&a.ID, &a.Timestamp, &a.UserID, &a.Username, &a.CheckpointID, &a.Token, &a.ScanLat, &a.ScanLng, &a.DistanceMeters, &a.Result, &a.Notes)
	if err != nil {
		return nil, translate(err)
	}
	a.Timestamp = a.Timestamp.UTC()
	return &a, nil
}

func (r *attendanceRepository) Create(ctx context.Context, rec *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	const q = `
		INSERT INTO attendance_records (record_id, scanned_at, user_id, username, checkpoint_id, token, scan_lat, scan_lng, distance_meters, result, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''))
		RETURNING ` + attendanceCols

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return scanAttendance(r.pool.QueryRow(ctx, q,
		rec.ID, rec.Timestamp, rec.UserID, rec.Username, rec.CheckpointID, rec.Token,
		rec.ScanLat, rec.ScanLng, rec.DistanceMeters, rec.Result, rec.Notes,
	))
}

func (r *attendanceRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.AttendanceRecord, error) {
	const q = `
		SELECT ` + attendanceCols + `
		FROM attendance_records
		WHERE scanned_at >= $1 AND scanned_at < $2
		ORDER BY scanned_at ASC`

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.collect(r.pool.Query(ctx, q, from, to))
}

func (r *attendanceRepository) ListRecent(ctx context.Context, limit, offset int) ([]domain.AttendanceRecord, error) {
	limit, offset = clampPage(limit, offset)
	const q = `
		SELECT ` + attendanceCols + `
		FROM attendance_records
		ORDER BY scanned_at DESC
		LIMIT $1 OFFSET $2`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return r.collect(r.pool.Query(ctx, q, limit, offset))
}

func (r *attendanceRepository) collect(rows pgx.Rows, err error) ([]domain.AttendanceRecord, error) {
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := []domain.AttendanceRecord{}
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *attendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM attendance_records WHERE record_id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *attendanceRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM attendance_records WHERE scanned_at < $1`

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, cutoff)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}
