package errors

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps database errors from the Postgres session store to
// AppError instances:
//   - pgx.ErrNoRows → NotFound
//   - context deadline/cancel → Timeout/Canceled
//   - invalid text/JSON representation → StorageCorrupt (recovered by the
//     session layer as the logged-out state)
//   - anything else from Postgres → Internal
//
// If the error is not a recognized database error, it returns the original error.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Code: ErrCodeTimeout, Message: "database request timed out", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{Code: ErrCodeCanceled, Message: "database request was canceled", Cause: err}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{Code: ErrCodeNotFound, Message: "record not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.InvalidTextRepresentation, pgerrcode.DatatypeMismatch:
			// A session row whose JSON payload no longer decodes.
			return StorageCorrupt(pgErr)
		default:
			return &AppError{Code: ErrCodeInternal, Message: "database error", Cause: pgErr}
		}
	}

	return err
}
