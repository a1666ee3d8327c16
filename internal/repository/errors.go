package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Uniqueness violations surfaced by the store. The store's constraint is the
// final arbiter for races that slip past service-level pre-checks.
var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
)

const uniqueViolationCode = "23505"

// mapUniqueViolation translates a Postgres unique violation into the matching
// sentinel, identified by constraint name. Other errors pass through.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return ErrDuplicateEmail
	case strings.Contains(pgErr.ConstraintName, "username"):
		return ErrDuplicateUsername
	}
	return err
}
