package errors

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps token storage errors to AppError instances.
// It handles:
// - sql.ErrNoRows / pgx.ErrNoRows → NotFound
// - undefined table → Internal with a hint to create the schema
// - connection failures → Internal
// - Context timeouts/cancellations → Timeout/Canceled
//
// If the error is not a recognized database error, it returns the original error.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: "Token not found",
			Cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	return err
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch {
	case pgErr.Code == pgerrcode.UndefinedTable:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "Token table is missing. Run the schema setup before starting the dashboard.",
			Cause:   pgErr,
		}
	case pgerrcode.IsConnectionException(pgErr.Code):
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "Lost connection to the token database.",
			Cause:   pgErr,
		}
	case pgErr.Code == pgerrcode.StringDataRightTruncationDataException:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "Profile identifier is too long.",
			Field:   "profile",
			Cause:   pgErr,
		}
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred. Please try again.",
			Cause:   pgErr,
		}
	}
}
