package sqlrepo

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"lightbnb/internal/domain"
)

// classify tags driver errors with a domain sentinel. The driver error stays
// in the chain for logging.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %w", domain.ErrConflict, err)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %w", domain.ErrInvalidReference, err)
		case "23502", "23514", "22001": // not_null, check, string_data_right_truncation
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062: // ER_DUP_ENTRY
			return fmt.Errorf("%w: %w", domain.ErrConflict, err)
		case 1451, 1452: // ER_ROW_IS_REFERENCED_2, ER_NO_REFERENCED_ROW_2
			return fmt.Errorf("%w: %w", domain.ErrInvalidReference, err)
		case 1048, 1406, 3819: // ER_BAD_NULL_ERROR, ER_DATA_TOO_LONG, ER_CHECK_CONSTRAINT_VIOLATED
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
	}
	return err
}

// outcome is the metrics label for a classified error.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidReference), errors.Is(err, domain.ErrInvalidInput):
		return "rejected"
	default:
		return "error"
	}
}
