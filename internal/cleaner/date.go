package cleaner

import (
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"

	"github.com/ademuri/spotify-eda/internal/table"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate converts a release date cell to a calendar date at midnight UTC.
// Integer years and the ISO layouts above are tried first. Other text goes
// through dateparse, reading slashed dates month first; bare digit strings
// are never taken as timestamps.
func ParseDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return truncateDay(val), true
	case int64:
		if val < 1000 || val > 9999 {
			return time.Time{}, false
		}
		return time.Date(int(val), time.January, 1, 0, 0, 0, 0, time.UTC), true
	case string:
		if table.IsMissing(val) {
			return time.Time{}, false
		}
		s := strings.TrimSpace(val)
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return truncateDay(d), true
			}
		}
		if allDigits(s) {
			return time.Time{}, false
		}
		if d, err := dateparse.ParseIn(s, time.UTC); err == nil {
			return truncateDay(d), true
		}
	}
	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
