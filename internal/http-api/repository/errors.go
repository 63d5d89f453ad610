package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateReview is returned when the (title, author) unique index
	// rejects an insert. The service pre-checks the same rule, so this only
	// fires when two requests race.
	ErrDuplicateReview = errors.New("review already exists for this title and author")
)

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a Postgres unique-constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
