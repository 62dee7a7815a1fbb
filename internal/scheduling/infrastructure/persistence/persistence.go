// Package persistence implements the scheduling repositories on the shared
// database layer. The same SQL runs on SQLite and Postgres; queries are
// written with ? placeholders and rebound for Postgres.
package persistence

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/dimun/agendalo/internal/scheduling/domain"
	"github.com/dimun/agendalo/internal/shared/infrastructure/database"
)

type store struct {
	db database.Connection
}

func (s store) rebind(query string) string {
	if s.db.Driver() != database.DriverPostgres {
		return query
	}
	return rebindPostgres(query)
}

func rebindPostgres(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func nullDate(d *time.Time) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Format(domain.DateLayout), Valid: true}
}

func dateFromNull(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	d, err := domain.ParseDate(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nullWeekday(w *domain.Weekday) sql.NullInt64 {
	if w == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*w), Valid: true}
}

func weekdayFromNull(n sql.NullInt64) *domain.Weekday {
	if !n.Valid {
		return nil
	}
	w := domain.Weekday(n.Int64)
	return &w
}
