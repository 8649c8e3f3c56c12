package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// DB is the part of *pgxpool.Pool the repositories use
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Postgres error codes for constraint violations
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// classify turns constraint violations into invalid-input errors and wraps
// everything else
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch pgErr.Code {
	case codeNotNullViolation:
		return domain.InvalidInput(op, "missing required field", map[string]string{
			columnOr(pgErr.ColumnName, "unknown"): "required",
		})
	case codeForeignKeyViolation:
		return domain.InvalidInput(op, "unknown category", map[string]string{
			"category": "does not exist",
		})
	case codeCheckViolation:
		return domain.InvalidInput(op, "value out of range", map[string]string{
			columnOr(pgErr.ColumnName, pgErr.ConstraintName): "out of range",
		})
	}
	return fmt.Errorf("%s: %w", op, err)
}

func columnOr(column, fallback string) string {
	if column != "" {
		return column
	}
	return fallback
}
