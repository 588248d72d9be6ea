package core

import (
	"fmt"
	"strconv"
	"time"
)

// MonthKey buckets transactions by calendar month as a "YYYY-MM" string.
type MonthKey string

// MonthKeyOf reduces an ISO date string to its month bucket by prefix
// truncation. This is deliberately a string operation, not calendar
// parsing: dates are stored as YYYY-MM-DD strings and every well-formed
// date belongs to exactly one bucket. Shorter inputs are returned as-is
// and simply match no bucket.
func MonthKeyOf(date string) MonthKey {
	if len(date) < 7 {
		return MonthKey(date)
	}
	return MonthKey(date[:7])
}

// MonthKeyAt derives the month key for a point in time. Used to anchor
// "current month" views on an injected clock.
func MonthKeyAt(t time.Time) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month())))
}

// ValidMonthKey reports whether k is a well-formed "YYYY-MM" key.
func ValidMonthKey(k MonthKey) bool {
	_, _, ok := splitMonthKey(k)
	return ok
}

// AddMonths walks a month key forward (or backward, for negative n)
// through calendar date construction, so year boundaries roll over
// correctly. Invalid keys are returned unchanged.
func AddMonths(k MonthKey, n int) MonthKey {
	year, month, ok := splitMonthKey(k)
	if !ok {
		return k
	}
	d := time.Date(year, time.Month(month+n), 1, 0, 0, 0, 0, time.UTC)
	return MonthKeyAt(d)
}

// PrevMonthKey returns the month before k.
func PrevMonthKey(k MonthKey) MonthKey {
	return AddMonths(k, -1)
}

// NextMonthKey returns the month after k.
func NextMonthKey(k MonthKey) MonthKey {
	return AddMonths(k, 1)
}

func splitMonthKey(k MonthKey) (year, month int, ok bool) {
	if len(k) != 7 || k[4] != '-' {
		return 0, 0, false
	}
	year, err := strconv.Atoi(string(k[:4]))
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(string(k[5:]))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
