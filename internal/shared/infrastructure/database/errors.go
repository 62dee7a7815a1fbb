package database

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNoRows is returned by QueryRow scans that match nothing.
var ErrNoRows = sql.ErrNoRows

// IsNoRows reports whether err means the query matched no rows, whichever
// driver produced it.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
