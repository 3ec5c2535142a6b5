package repository

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"strings"
)

const pgUniqueViolation = "23505"

// emailKey is the normalised form stored next to every email column so
// lookups stay case-insensitive with a plain equality index.
func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
