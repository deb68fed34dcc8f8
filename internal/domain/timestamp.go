package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TimestampLayout is the layout written for session boundaries: local
// wall-clock time with second precision and no offset.
const TimestampLayout = "2006-01-02T15:04:05"

// parseLayouts are tried in order when reading a stored timestamp.
// Fractional seconds are accepted by the parser without being named here.
var parseLayouts = []string{
	TimestampLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FormatTimestamp renders t as a stored session timestamp in the local
// zone, dropping any sub-second part.
func FormatTimestamp(t time.Time) string {
	return t.In(time.Local).Truncate(time.Second).Format(TimestampLayout)
}

// ParseTimestamp reads a stored timestamp. Values without an offset are
// interpreted in the local zone; RFC 3339 values keep their offset.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTimestamp)
	}
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// RoundMinutes converts d to minutes rounded to two decimal places.
func RoundMinutes(d time.Duration) float64 {
	return round2(d.Seconds() / 60)
}

// MinutesToHours converts minutes to hours rounded to two decimal places.
func MinutesToHours(minutes float64) float64 {
	return round2(minutes / 60)
}

// SumMinutes adds the stored per-session minutes. The stored values are
// already rounded, so the total carries their rounding.
func SumMinutes(sessions []Session) float64 {
	var total float64
	for _, s := range sessions {
		total += s.DurationMinutes
	}
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
