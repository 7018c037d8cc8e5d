package persistence

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func nullString(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	return pgtype.Text{String: s, Valid: s != ""}
}

// isoDate converts a YYYY-MM-DD string to a nullable date column value.
func isoDate(s string) (pgtype.Date, error) {
	if s == "" {
		return pgtype.Date{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return pgtype.Date{}, err
	}
	return pgtype.Date{Time: t, Valid: true}, nil
}
