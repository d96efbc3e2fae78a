// Package isodate provides a calendar date type that serializes as ISO-8601
// (YYYY-MM-DD) in JSON and maps onto the PostgreSQL DATE type through pgx.
package isodate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Layout is the ISO-8601 calendar date layout.
const Layout = "2006-01-02"

// Date is a calendar date without time of day or zone.
type Date struct {
	time.Time
}

// New returns the date for the given year, month and day.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Of truncates t to its calendar date.
func Of(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Today returns the current date in UTC.
func Today() Date {
	return Of(time.Now().UTC())
}

// Parse accepts YYYY-MM-DD or a full RFC 3339 timestamp.
func Parse(s string) (Date, error) {
	if t, err := time.Parse(Layout, s); err == nil {
		return Of(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Of(t), nil
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return Of(d.Time.AddDate(0, 0, n))
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time.Format(Layout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ScanDate implements pgtype.DateScanner.
func (d *Date) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		*d = Date{}
		return nil
	}
	if v.InfinityModifier != pgtype.Finite {
		return fmt.Errorf("cannot scan infinite date")
	}
	*d = Of(v.Time)
	return nil
}

// DateValue implements pgtype.DateValuer.
func (d Date) DateValue() (pgtype.Date, error) {
	if d.IsZero() {
		return pgtype.Date{}, nil
	}
	return pgtype.Date{Time: d.Time, Valid: true}, nil
}
