package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"articles-api/internal/repository"
)

// sqlStateCodes maps the SQLSTATE values the store reports for rejected
// requests onto repository error codes. Anything not listed stays unclassified.
var sqlStateCodes = map[string]repository.ErrorCode{
	"23505": repository.CodeUniqueViolation,
	"23503": repository.CodeForeignKeyViolation,
	"23502": repository.CodeNotNullViolation,
	"22001": repository.CodeValueTooLong,
	"22003": repository.CodeValueOutOfRange,
}

// translateError turns a driver error into a *repository.StoreError when the
// server reported a known SQLSTATE, and wraps it with op otherwise.
func translateError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if code, ok := sqlStateCodes[pgErr.Code]; ok {
			return &repository.StoreError{
				Code:       code,
				Message:    storeMessage(pgErr),
				Constraint: pgErr.ConstraintName,
				Err:        err,
			}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// storeMessage keeps the server's wording: the primary message, then the
// detail line when present.
func storeMessage(pgErr *pgconn.PgError) string {
	if pgErr.Detail == "" {
		return pgErr.Message
	}
	return pgErr.Message + "\n" + pgErr.Detail
}
