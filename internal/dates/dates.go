// Package dates converts loosely typed date filter boundaries into the
// "YYYY-MM-DD HH:mm:ss" form the SalesDrive API expects.
package dates

import (
	"regexp"
	"time"

	"salesdrive/internal/apierr"
)

// DefaultTime is the time of day appended to a bare calendar date
type DefaultTime string

const (
	StartOfDay DefaultTime = "00:00:00"
	EndOfDay   DefaultTime = "23:59:59"
)

// Layout is the canonical wire layout
const Layout = "2006-01-02 15:04:05"

const (
	minEpochYear = 2000
	maxEpochYear = 2100
)

var (
	calendarDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	canonical    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)
)

// Normalize formats v for a date range filter.
//
// Accepted kinds:
//   - time.Time, *time.Time: calendar fields in time.Local
//   - string "YYYY-MM-DD": def is appended
//   - any other string: returned unchanged
//   - int, int64: Unix milliseconds, read in time.Local; the year must fall in 2000-2100
func Normalize(v any, def DefaultTime) (string, error) {
	switch d := v.(type) {
	case time.Time:
		return d.In(time.Local).Format(Layout), nil
	case *time.Time:
		if d == nil {
			return "", apierr.InvalidArgument("nil *time.Time date")
		}
		return d.In(time.Local).Format(Layout), nil
	case string:
		if calendarDate.MatchString(d) {
			return d + " " + string(def), nil
		}
		return d, nil
	case int:
		return fromEpochMillis(int64(d))
	case int64:
		return fromEpochMillis(d)
	default:
		return "", apierr.InvalidArgument("unsupported date value %v (%T)", v, v)
	}
}

// IsCanonical reports whether s already has the "YYYY-MM-DD HH:mm:ss" shape
func IsCanonical(s string) bool {
	return canonical.MatchString(s)
}

func fromEpochMillis(ms int64) (string, error) {
	t := time.UnixMilli(ms).In(time.Local)
	if y := t.Year(); y < minEpochYear || y > maxEpochYear {
		return "", apierr.InvalidArgument(
			"timestamp %d resolves to %s, outside years %d-%d; pass milliseconds, a string or a time.Time",
			ms, t.UTC().Format(time.RFC3339), minEpochYear, maxEpochYear)
	}
	return t.Format(Layout), nil
}
