package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
)

type CheckpointRepository interface {
	Create(ctx context.Context, cp *domain.Checkpoint) (*domain.Checkpoint, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Checkpoint, error)
	// GetActiveByToken only returns active checkpoints.
	GetActiveByToken(ctx context.Context, token string) (*domain.Checkpoint, error)
	Update(ctx context.Context, cp *domain.Checkpoint) (*domain.Checkpoint, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Checkpoint, error)
}

type checkpointRepository struct {
	pool *pgxpool.Pool
}

func NewCheckpointRepository(pool *pgxpool.Pool) CheckpointRepository {
	return &checkpointRepository{pool: pool}
}

const checkpointCols = `checkpoint_id, name, token, latitude, longitude, radius_meters, is_active, created_at, updated_at`

func scanCheckpoint(row pgx.Row) (*domain.Checkpoint, error) {
	var c domain.Checkpoint
	err := row.Scan(&c.ID, &c.Name, &c.Token, &c.Latitude, &c.Longitude, &c.RadiusMeters, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *checkpointRepository) Create(ctx context.Context, cp *domain.Checkpoint) (*domain.Checkpoint, error) {
	const q = `
		INSERT INTO checkpoints (checkpoint_id, name, token, latitude, longitude, radius_meters, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + checkpointCols

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	return scanCheckpoint(r.pool.QueryRow(ctx, q, cp.ID, cp.Name, cp.Token, cp.Latitude, cp.Longitude, cp.RadiusMeters, cp.Active))
}

func (r *checkpointRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Checkpoint, error) {
	const q = `SELECT ` + checkpointCols + ` FROM checkpoints WHERE checkpoint_id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanCheckpoint(r.pool.QueryRow(ctx, q, id))
}

func (r *checkpointRepository) GetActiveByToken(ctx context.Context, token string) (*domain.Checkpoint, error) {
	const q = `SELECT ` + checkpointCols + ` FROM checkpoints WHERE token = $1 AND is_active`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanCheckpoint(r.pool.QueryRow(ctx, q, token))
}

func (r *checkpointRepository) Update(ctx context.Context, cp *domain.Checkpoint) (*domain.Checkpoint, error) {
	const q = `
		UPDATE checkpoints
		SET name = $2, token = $3, latitude = $4, longitude = $5, radius_meters = $6, is_active = $7, updated_at = now()
		WHERE checkpoint_id = $1
		RETURNING ` + checkpointCols

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanCheckpoint(r.pool.QueryRow(ctx, q, cp.ID, cp.Name, cp.Token, cp.Latitude, cp.Longitude, cp.RadiusMeters, cp.Active))
}

func (r *checkpointRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM checkpoints WHERE checkpoint_id = $1`
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

func (r *checkpointRepository) List(ctx context.Context) ([]domain.Checkpoint, error) {
	const q = `SELECT ` + checkpointCols + ` FROM checkpoints ORDER BY name ASC`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := []domain.Checkpoint{}
	for rows.Next() {
		cp, err := scanCheckpoint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *cp)
	}
	return out, rows.Err()
}
