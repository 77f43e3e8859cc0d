package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUniqueViolation is the typed signal for a rejected write caused by
// a unique constraint. The constraint in the store is authoritative;
// callers that retry (e.g. short-link assignment) key off this error
// rather than pre-querying.
var ErrUniqueViolation = errors.New("unique constraint violation")

// ErrNotFound reports a mutation that matched no rows. Row lookups
// surface pgx.ErrNoRows instead.
var ErrNotFound = errors.New("no rows affected")

const pgUniqueViolationCode = "23505"

func wrapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
		return fmt.Errorf("constraint %q: %w", pgErr.ConstraintName, ErrUniqueViolation)
	}
	return err
}
