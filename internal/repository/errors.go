package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
)

const queryTimeout = 3 * time.Second

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver errors onto domain sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			v := &domain.ValidationError{}
			v.Add(fkField(pgErr.ConstraintName), "references a record that does not exist or is still in use")
			return v
		}
	}
	return err
}

func fkField(constraint string) string {
	switch constraint {
	case "users_role_fkey":
		return "role"
	case "attendance_records_checkpoint_id_fkey":
		return "checkpoint"
	case "attendance_records_user_id_fkey":
		return "user"
	}
	return "reference"
}
